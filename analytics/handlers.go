package analytics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/ratelimit"
)

// Handler serves the first-party collector and the admin stats API.
type Handler struct {
	store          *Store
	collectLimiter *ratelimit.Limiter
	now            func() time.Time
}

// NewHandler creates a new analytics handler.
// The collect endpoint is rate-limited to 60 requests per IP per minute.
func NewHandler(store *Store) *Handler {
	return &Handler{
		store:          store,
		collectLimiter: ratelimit.New(60, time.Minute),
		now:            time.Now,
	}
}

// CollectRequest is the beacon sent by folio.js.
type CollectRequest struct {
	Path        string `json:"path"`
	Referrer    string `json:"referrer"`
	ScreenSize  string `json:"screen_size"`
	Theme       string `json:"theme"`
	DurationSec int    `json:"duration_sec"`
}

const (
	maxPathLen       = 2048
	maxReferrerLen   = 2048
	maxScreenSizeLen = 32
	maxThemeLen      = 16
	maxDurationSec   = 86400
)

func (req *CollectRequest) validate() error {
	switch {
	case req.Path == "":
		return fmt.Errorf("path is required")
	case len(req.Path) > maxPathLen:
		return fmt.Errorf("path exceeds maximum length of %d", maxPathLen)
	case len(req.Referrer) > maxReferrerLen:
		return fmt.Errorf("referrer exceeds maximum length of %d", maxReferrerLen)
	case len(req.ScreenSize) > maxScreenSizeLen:
		return fmt.Errorf("screen_size exceeds maximum length of %d", maxScreenSizeLen)
	case len(req.Theme) > maxThemeLen:
		return fmt.Errorf("theme exceeds maximum length of %d", maxThemeLen)
	case req.DurationSec < 0 || req.DurationSec > maxDurationSec:
		return fmt.Errorf("duration_sec out of range")
	}
	return nil
}

// Collect records one beacon.
func (h *Handler) Collect(c echo.Context) error {
	ip := c.RealIP()
	if !h.collectLimiter.Allow(ip) {
		return c.NoContent(http.StatusTooManyRequests)
	}
	if c.Request().Header.Get("DNT") == "1" {
		return c.NoContent(http.StatusNoContent)
	}

	var req CollectRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "Invalid request")
	}
	if err := req.validate(); err != nil {
		return c.String(http.StatusBadRequest, "Invalid request")
	}

	ua := c.Request().UserAgent()
	now := h.now().UTC()

	if IsBot(ua) {
		if err := h.store.SaveBotVisit(&BotVisit{
			BotName:   BotName(ua),
			IPHash:    HashIP(ip),
			UserAgent: ua,
			Path:      req.Path,
			Timestamp: now,
		}); err != nil {
			c.Logger().Errorf("analytics: save bot visit: %v", err)
		}
		return c.NoContent(http.StatusNoContent)
	}

	visitorID := GenerateVisitorID(ip, ua)

	// A beacon with a duration is the unload ping for a view already recorded.
	if req.DurationSec > 0 {
		if err := h.store.UpdateVisitDuration(visitorID, req.Path, req.DurationSec); err != nil {
			c.Logger().Errorf("analytics: update duration: %v", err)
		}
		return c.NoContent(http.StatusNoContent)
	}

	browser, os, device := ParseUserAgent(ua)
	if err := h.store.SaveVisit(&Visit{
		VisitorID:  visitorID,
		SessionID:  sessionID(visitorID, now),
		IPHash:     HashIP(ip),
		Browser:    browser,
		OS:         os,
		Device:     device,
		Path:       req.Path,
		Referrer:   CleanReferrer(req.Referrer),
		ScreenSize: req.ScreenSize,
		Theme:      req.Theme,
		Timestamp:  now,
	}); err != nil {
		c.Logger().Errorf("analytics: save visit: %v", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetStats returns aggregated statistics as JSON for ?days=N (default 30).
func (h *Handler) GetStats(c echo.Context) error {
	days := 30
	if v := c.QueryParam("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 365 {
			return echo.NewHTTPError(http.StatusBadRequest, "days must be between 1 and 365")
		}
		days = n
	}
	to := h.now().UTC().Add(time.Minute)
	from := to.AddDate(0, 0, -days)
	stats, err := h.store.GetStats(from, to)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Close stops the collector's limiter.
func (h *Handler) Close() {
	h.collectLimiter.Stop()
}

// RegisterRoutes mounts the public collector and the guarded admin API.
func (h *Handler) RegisterRoutes(e *echo.Echo, authMiddleware echo.MiddlewareFunc) {
	e.POST("/api/analytics/collect", h.Collect)

	admin := e.Group("/admin/analytics")
	admin.Use(authMiddleware)
	admin.GET("/api/stats", h.GetStats)
}
