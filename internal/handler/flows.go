package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"btc-etf-flows/internal/cache"
	"btc-etf-flows/internal/logger"
	"btc-etf-flows/internal/types"
)

// cacheControl matches the feed's upstream refresh cadence: content is good
// for an hour and may be served stale for another two while revalidating.
const cacheControl = "public, s-maxage=3600, stale-while-revalidate=7200"

// FlowsHandler serves the normalized flow dataset to the dashboard. It is a
// thin wrapper: it trims, aggregates, and labels, but never edits values.
type FlowsHandler struct {
	cache  *cache.ResultCache
	window int
}

func NewFlowsHandler(c *cache.ResultCache, windowDays int) *FlowsHandler {
	return &FlowsHandler{cache: c, window: windowDays}
}

func (h *FlowsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/flows", h.Flows)
	g.GET("/flows/summary", h.Summary)
	g.GET("/funds", h.Funds)
	e.GET("/healthz", h.Health)
}

type flowsResponse struct {
	Data        interface{} `json:"data"`
	Live        bool        `json:"live"`
	Source      string      `json:"source"`
	LastUpdated string      `json:"lastUpdated"`
}

// Flows returns the trailing window of records, optionally bucketed by week
// or month via ?granularity=.
func (h *FlowsHandler) Flows(c echo.Context) error {
	snap := h.cache.Get(c.Request().Context())
	series := snap.Result.Series.Tail(h.window)

	var data interface{}
	switch c.QueryParam("granularity") {
	case "", "daily":
		data = series
	case "weekly":
		data = types.AggregateWeekly(series)
	case "monthly":
		data = types.AggregateMonthly(series)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "granularity must be daily, weekly, or monthly")
	}

	c.Response().Header().Set(echo.HeaderCacheControl, cacheControl)
	return c.JSON(http.StatusOK, flowsResponse{
		Data:        data,
		Live:        snap.Result.Live,
		Source:      snap.Result.SourceLabel,
		LastUpdated: snap.FetchedAt.UTC().Format(time.RFC3339),
	})
}

// Summary returns the headline card figures for the trailing window.
func (h *FlowsHandler) Summary(c echo.Context) error {
	snap := h.cache.Get(c.Request().Context())
	summary := types.Summarize(snap.Result.Series.Tail(h.window))

	c.Response().Header().Set(echo.HeaderCacheControl, cacheControl)
	return c.JSON(http.StatusOK, flowsResponse{
		Data:        summary,
		Live:        snap.Result.Live,
		Source:      snap.Result.SourceLabel,
		LastUpdated: snap.FetchedAt.UTC().Format(time.RFC3339),
	})
}

type fundInfo struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
	Color  string `json:"color"`
}

// Funds exposes the static fund universe so the front end can build legends
// without duplicating reference data.
func (h *FlowsHandler) Funds(c echo.Context) error {
	funds := make([]fundInfo, 0, types.NumFunds)
	for _, f := range types.Funds {
		funds = append(funds, fundInfo{Ticker: f.Ticker, Name: f.Name, Color: f.Color})
	}
	return c.JSON(http.StatusOK, funds)
}

func (h *FlowsHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// RequestLogger logs one line per request through the global logger.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			logger.Info(c.Request().Context(), "HTTP request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
			return err
		}
	}
}
