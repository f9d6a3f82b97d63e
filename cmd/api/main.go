// Package main runs the insights HTTP server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/sync/errgroup"

	"newspulse/internal/app"
	"newspulse/internal/config"
	hhttp "newspulse/internal/handler/http"
	"newspulse/internal/handler/http/insight"
	"newspulse/internal/handler/http/requestid"
	"newspulse/internal/observability/logging"
	"newspulse/internal/observability/tracing"

	_ "newspulse/docs" // swagger docs
)

// @title           Newspulse Insights API
// @version         1.0
// @description     Fetches news articles, tags them with countries and sentiment, and serves the aggregates.
// @BasePath        /

func main() {
	logger := initLogger()

	cfg, err := config.LoadAppConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	shutdownTracing := tracing.Init(cfg.TraceSampleRatio)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Error("failed to shut down tracing", slog.Any("error", err))
		}
	}()

	pipeline, err := app.Build(cfg)
	if err != nil {
		logger.Error("failed to build pipeline", slog.Any("error", err))
		os.Exit(1)
	}

	version := getVersion()
	handler := setupServer(logger, cfg, pipeline, version)

	if err := runServer(logger, cfg, handler, version); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// initLogger initializes the JSON logger and installs it as the default.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// setupServer registers every route and wraps the mux in the middleware chain.
func setupServer(logger *slog.Logger, cfg *config.AppConfig, pipeline *app.Pipeline, version string) http.Handler {
	breakers := make([]hhttp.Breaker, 0, len(pipeline.Breakers))
	for _, b := range pipeline.Breakers {
		breakers = append(breakers, b)
	}

	// Every refresh hits the upstream, so /insights gets a per-client limit.
	limiter := hhttp.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	logger.Info("rate limiting initialized",
		slog.Int("limit", cfg.RateLimitRequests),
		slog.Duration("window", cfg.RateLimitWindow))

	mux := http.NewServeMux()
	insight.Register(mux, pipeline.Service, limiter.Limit, hhttp.Timeout(cfg.RequestTimeout))
	mux.Handle("/health", &hhttp.HealthHandler{Version: version, Breakers: breakers})
	mux.Handle("/ready", &hhttp.ReadyHandler{Breakers: breakers})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Order: Request ID → Tracing → Recovery → Logging → Body Limit → Metrics
	return hhttp.Chain(mux,
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.LimitRequestBody(1<<20),
		hhttp.MetricsMiddleware,
	)
}

// runServer serves until SIGINT or SIGTERM, then shuts down gracefully.
func runServer(logger *slog.Logger, cfg *config.AppConfig, handler http.Handler, version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", cfg.HTTPAddr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		logger.Info("server stopped")
		return nil
	})

	return g.Wait()
}
