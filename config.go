package folio

import (
	"errors"
	"fmt"
	"time"

	"github.com/labstack/gommon/log"

	"github.com/eringen/folio/typewriter"
)

// SiteConfig holds all configuration for a folio site. Identity fields left
// empty fall back to the site block of the content file.
type SiteConfig struct {
	Name        string `koanf:"name" yaml:"name,omitempty"`               // Site name
	Tagline     string `koanf:"tagline" yaml:"tagline,omitempty"`         // Hero tagline
	URL         string `koanf:"url" yaml:"url"`                           // Canonical URL (default "http://localhost:3000")
	Description string `koanf:"description" yaml:"description,omitempty"` // Meta and RSS description
	Author      string `koanf:"author" yaml:"author,omitempty"`           // Author name for JSON-LD

	Addr         string `koanf:"addr" yaml:"addr"`                   // Listen address (default ":3000")
	DatabasePath string `koanf:"database_path" yaml:"database_path"` // SQLite path (default "data/folio.db")
	StaticDir    string `koanf:"static_dir" yaml:"static_dir"`       // Served under /public (default "public")

	ContentPath      string `koanf:"content_path" yaml:"content_path"`           // YAML content file (default "content.yml")
	ContentOverwrite bool   `koanf:"content_overwrite" yaml:"content_overwrite"` // Content file wins over admin edits on start

	AnalyticsEnabled       bool   `koanf:"analytics_enabled" yaml:"analytics_enabled"`               // First-party collector
	AnalyticsDatabasePath  string `koanf:"analytics_database_path" yaml:"analytics_database_path"`   // default "data/analytics.db"
	AnalyticsRetentionDays int    `koanf:"analytics_retention_days" yaml:"analytics_retention_days"` // default 365
	AnalyticsScriptURL     string `koanf:"analytics_script_url" yaml:"analytics_script_url,omitempty"`
	AnalyticsSiteID        string `koanf:"analytics_site_id" yaml:"analytics_site_id,omitempty"`

	AdminPassword string `koanf:"admin_password" yaml:"-"` // Required: admin login password
	SessionSecret string `koanf:"session_secret" yaml:"-"` // Required: session encryption secret
	CookieSecure  bool   `koanf:"cookie_secure" yaml:"cookie_secure"`

	// HtmxURL is the htmx script the layout loads. Empty picks a bundled or
	// static-dir htmx.min.js when present, else the pinned CDN build.
	HtmxURL string `koanf:"htmx_url" yaml:"htmx_url,omitempty"`

	CacheTTL time.Duration `koanf:"cache_ttl" yaml:"cache_ttl"` // Project cache TTL (default 5m)
	LogLevel string        `koanf:"log_level" yaml:"log_level"` // debug, info, warn, error (default info)

	Typing typewriter.Timing `koanf:"-" yaml:"-"`
}

// HtmxCDN is the pinned htmx build used when the site does not self-host one.
const HtmxCDN = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

const htmxFile = "htmx.min.js"

// DefaultConfig returns a config with every default applied.
func DefaultConfig() SiteConfig {
	var c SiteConfig
	c.setDefaults()
	return c
}

func (c *SiteConfig) setDefaults() {
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/folio.db"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.ContentPath == "" {
		c.ContentPath = "content.yml"
	}
	if c.AnalyticsDatabasePath == "" {
		c.AnalyticsDatabasePath = "data/analytics.db"
	}
	if c.AnalyticsRetentionDays == 0 {
		c.AnalyticsRetentionDays = 365
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = 5 * time.Minute
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Typing == (typewriter.Timing{}) {
		c.Typing = typewriter.DefaultTiming
	}
}

var logLevels = map[string]log.Lvl{
	"debug": log.DEBUG,
	"info":  log.INFO,
	"warn":  log.WARN,
	"error": log.ERROR,
	"off":   log.OFF,
}

// Level maps LogLevel to the echo logger level.
func (c SiteConfig) Level() log.Lvl {
	if l, ok := logLevels[c.LogLevel]; ok {
		return l
	}
	return log.INFO
}

// Validate reports every missing or malformed setting.
func (c SiteConfig) Validate() error {
	var errs []error
	if c.AdminPassword == "" {
		errs = append(errs, errors.New("admin_password is required"))
	}
	if c.SessionSecret == "" {
		errs = append(errs, errors.New("session_secret is required"))
	} else if len(c.SessionSecret) < 32 {
		errs = append(errs, errors.New("session_secret must be at least 32 bytes"))
	}
	if _, ok := logLevels[c.LogLevel]; c.LogLevel != "" && !ok {
		errs = append(errs, fmt.Errorf("invalid log_level %q: must be one of debug, info, warn, error, off", c.LogLevel))
	}
	if c.AnalyticsRetentionDays < 0 {
		errs = append(errs, errors.New("analytics_retention_days must be non-negative"))
	}
	if c.CacheTTL < 0 {
		errs = append(errs, errors.New("cache_ttl must be non-negative"))
	}
	return errors.Join(errs...)
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets.
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.Config.StaticDir = dir
	}
}

// WithClock overrides the time source used for counters and caching.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}
