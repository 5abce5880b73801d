// Package folio is a portfolio website engine built with Go, Echo, and templ.
// It serves a home page with tag filtering, case-study pages with galleries
// and a lightbox, a manifesto page, an admin dashboard, analytics, RSS, and a
// sitemap.
//
// Pages are rendered by templ components supplied through ViewFuncs; the
// views package provides defaults for every one of them.
package folio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/analytics"
	"github.com/eringen/folio/content"
	"github.com/eringen/folio/ratelimit"
	"github.com/eringen/folio/theme"
	"github.com/eringen/folio/views"
)

// ViewFuncs holds the templ components the app renders. Nil fields are
// filled from the views package, so a site overrides only what it needs.
type ViewFuncs struct {
	Home           func(views.HomeData) templ.Component
	HomePartial    func(views.HomeData) templ.Component
	Project        func(views.ProjectData) templ.Component
	TabPanel       func(views.ProjectData) templ.Component // htmx tab click: panel and out-of-band tab bar
	Lightbox       func(views.ProjectData) templ.Component
	Manifesto      func(views.ManifestoData) templ.Component
	AdminLogin     func(p views.Page, showError bool) templ.Component
	AdminDashboard func(views.AdminData) templ.Component
	AdminForm      func(views.AdminFormData) templ.Component
	AdminImages    func(views.AdminImagesData) templ.Component
	NotFound       func(views.Page) templ.Component
	ServerError    func(views.Page) templ.Component
}

// DefaultViews returns the stock components.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Home:           views.Home,
		HomePartial:    views.HomePartial,
		Project:        views.ProjectPage,
		TabPanel:       views.TabSwap,
		Lightbox:       views.LightboxOverlay,
		Manifesto:      views.Manifesto,
		AdminLogin:     views.AdminLogin,
		AdminDashboard: views.AdminDashboard,
		AdminForm:      views.AdminForm,
		AdminImages:    views.AdminImages,
		NotFound:       views.NotFound,
		ServerError:    views.ServerError,
	}
}

func (v *ViewFuncs) fill() {
	d := DefaultViews()
	if v.Home == nil {
		v.Home = d.Home
	}
	if v.HomePartial == nil {
		v.HomePartial = d.HomePartial
	}
	if v.Project == nil {
		v.Project = d.Project
	}
	if v.TabPanel == nil {
		v.TabPanel = d.TabPanel
	}
	if v.Lightbox == nil {
		v.Lightbox = d.Lightbox
	}
	if v.Manifesto == nil {
		v.Manifesto = d.Manifesto
	}
	if v.AdminLogin == nil {
		v.AdminLogin = d.AdminLogin
	}
	if v.AdminDashboard == nil {
		v.AdminDashboard = d.AdminDashboard
	}
	if v.AdminForm == nil {
		v.AdminForm = d.AdminForm
	}
	if v.AdminImages == nil {
		v.AdminImages = d.AdminImages
	}
	if v.NotFound == nil {
		v.NotFound = d.NotFound
	}
	if v.ServerError == nil {
		v.ServerError = d.ServerError
	}
}

// App is the central folio application. It wires together the content
// catalog, store, cache, handlers, middleware, and views.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Store   *Store
	Cache   *ProjectCache
	Views   ViewFuncs
	Catalog *content.Catalog
	Assets  *theme.Resolver

	loginLimiter     *ratelimit.Limiter
	analyticsStore   *analytics.Store
	analyticsHandler *analytics.Handler
	stopCleanup      func()
	customRoutes     []func(*App)
	now              func() time.Time
	htmxSrc          string
	ready            bool
}

// New creates a folio App with the given configuration and views.
func New(cfg SiteConfig, v ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()
	v.fill()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Views:  v,
		now:    time.Now,
	}
	a.Echo.HideBanner = true
	a.Echo.Logger.SetLevel(cfg.Level())

	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Setup loads content, opens the databases, and registers middleware and
// routes. Start calls it; tests call it directly and drive a.Echo.
func (a *App) Setup() error {
	if a.ready {
		return nil
	}
	if err := a.Config.Validate(); err != nil {
		return fmt.Errorf("folio: %w", err)
	}

	cat, err := content.LoadCatalog(a.Config.ContentPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		a.Echo.Logger.Warnf("content file %s not found, starting empty", a.Config.ContentPath)
		cat = &content.Catalog{}
	case err != nil:
		return fmt.Errorf("folio: load content: %w", err)
	}
	a.Catalog = cat

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("folio: init store: %w", err)
	}
	a.Store = store

	n, err := a.Store.ImportProjects(cat.Projects, a.Config.ContentOverwrite)
	if err != nil {
		return fmt.Errorf("folio: import content: %w", err)
	}
	if n > 0 {
		a.Echo.Logger.Infof("imported %d projects from %s", n, a.Config.ContentPath)
	}

	a.Cache = NewProjectCache(a.Store, a.Config.CacheTTL)
	a.Cache.now = a.now
	a.Assets = theme.NewResolver(os.DirFS(a.Config.StaticDir), content.AssetPrefix)
	a.htmxSrc = a.resolveHtmx()
	a.loginLimiter = ratelimit.New(5, time.Minute)

	if a.Config.AnalyticsEnabled {
		as, err := analytics.NewStore(a.Config.AnalyticsDatabasePath)
		if err != nil {
			return fmt.Errorf("folio: init analytics: %w", err)
		}
		a.analyticsStore = as
		if err := analytics.InitSalt(as); err != nil {
			return fmt.Errorf("folio: init analytics salt: %w", err)
		}
		a.stopCleanup = as.StartCleanupScheduler(a.Config.AnalyticsRetentionDays, 24*time.Hour)
	}

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.ready = true
	return nil
}

// resolveHtmx picks the htmx script: the configured URL, a copy embedded
// next to folio.js, a copy in the static dir, or the pinned CDN build.
func (a *App) resolveHtmx() string {
	if a.Config.HtmxURL != "" {
		return a.Config.HtmxURL
	}
	if _, err := fs.Stat(EmbeddedAssets, "embedded/"+htmxFile); err == nil {
		return "/public/" + htmxFile
	}
	if _, err := os.Stat(filepath.Join(a.Config.StaticDir, htmxFile)); err == nil {
		return "/public/" + htmxFile
	}
	return HtmxCDN
}

// Start sets the app up and serves until the server fails.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Serve runs the server until ctx is cancelled, then shuts down gracefully.
func (a *App) Serve(ctx context.Context) error {
	if err := a.Setup(); err != nil {
		return err
	}
	errc := make(chan error, 1)
	go func() {
		if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	a.Echo.Logger.Info("shutting down")
	return a.Echo.Shutdown(shutdownCtx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Framework scripts, then the site's own static files.
	embedded, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := echo.WrapHandler(http.StripPrefix("/public/", http.FileServer(http.FS(embedded))))
	e.GET("/public/folio.js", embeddedHandler)
	if _, err := fs.Stat(embedded, htmxFile); err == nil {
		e.GET("/public/"+htmxFile, embeddedHandler)
	}
	e.Static("/public", a.Config.StaticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/manifesto/", a.handleManifesto)
	e.GET("/projects/:slug/", a.handleProject)
	e.GET("/projects/:slug/gallery/:index/", a.handleLightbox)
	e.POST("/theme/", a.handleThemeToggle)
	e.GET("/api/typewriter/", a.handleTypewriter)

	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.GET("/admin/project/new/", a.handleAdminNew)
	e.GET("/admin/project/:slug/", a.handleAdminProject)
	e.POST("/admin/save/", a.handleAdminSave)
	e.DELETE("/admin/project/:slug/", a.handleAdminDelete)
	e.GET("/admin/images/", a.handleImageList)
	e.POST("/admin/images/upload/", a.handleImageUpload)
	e.DELETE("/admin/images/:filename/", a.handleImageDelete)

	if a.analyticsStore != nil {
		a.analyticsHandler = analytics.NewHandler(a.analyticsStore)
		a.analyticsHandler.RegisterRoutes(e, requireAdmin)
	}
}

// Close stops background work and closes the databases.
func (a *App) Close() error {
	var errs []error
	if a.stopCleanup != nil {
		a.stopCleanup()
	}
	if a.analyticsHandler != nil {
		a.analyticsHandler.Close()
	}
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.Store != nil {
		errs = append(errs, a.Store.Close())
	}
	if a.analyticsStore != nil {
		errs = append(errs, a.analyticsStore.Close())
	}
	return errors.Join(errs...)
}
