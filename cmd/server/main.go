package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"btc-etf-flows/internal/cache"
	"btc-etf-flows/internal/fetcher"
	"btc-etf-flows/internal/handler"
	"btc-etf-flows/internal/logger"
	"btc-etf-flows/internal/metrics"
	"btc-etf-flows/internal/parser"
	"btc-etf-flows/internal/pipeline"
	"btc-etf-flows/internal/pipeline/pipelineobs"
	"btc-etf-flows/internal/store"
	"btc-etf-flows/internal/trace"
)

// warmWindow bounds the startup attempt to reach the live source before the
// service settles for synthetic data.
const warmWindow = 2 * time.Minute

func main() {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		log.Fatal(err)
	}
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := store.LoadConfig(configPath)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		os.Exit(1)
	}

	recorder := metrics.New(prometheus.DefaultRegisterer)
	provider := pipelineobs.Wrap(
		pipeline.New(
			fetcher.New(cfg.Source.URL, cfg.FetchTimeout()),
			parser.New(cfg.Source.MinRows),
			cfg.Flows.GeneratorDays,
		),
		recorder,
	)
	resultCache := cache.New(provider, cfg.CacheTTL())

	go resultCache.Warm(ctx, warmWindow)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(handler.RequestLogger())
	e.Server.ReadTimeout = time.Duration(cfg.Server.ReadTimeoutSec) * time.Second
	e.Server.WriteTimeout = time.Duration(cfg.Server.WriteTimeoutSec) * time.Second

	handler.NewFlowsHandler(resultCache, cfg.Flows.WindowDays).RegisterRoutes(e)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	go func() {
		logger.Info(ctx, "Server starting", "addr", cfg.Server.Addr, "source", cfg.Source.URL)
		if err := e.Start(cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorWithErr(ctx, "Server failed", err)
			cancel()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigc:
	case <-ctx.Done():
	}

	logger.Info(ctx, "Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Warn(shutdownCtx, "Server shutdown incomplete", "error", err)
	}
	_ = trace.Shutdown(shutdownCtx)
}
