package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/ghuser/pricetrack/docs/swagger"
	"github.com/ghuser/pricetrack/pkg/app"
	"github.com/ghuser/pricetrack/pkg/config"
	"github.com/ghuser/pricetrack/pkg/httpx"
	"github.com/ghuser/pricetrack/pkg/logger"
	"github.com/ghuser/pricetrack/pkg/telemetry"
	groceryApi "github.com/ghuser/pricetrack/services/grocery/application/api"
	grocerySvcs "github.com/ghuser/pricetrack/services/grocery/application/services"
)

// @title					PriceTrack API
// @version				1.0
// @description			Track grocery prices per store over time and compare them to find savings.
// @license.name			MIT
// @license.url			https://opensource.org/licenses/MIT
// @host					localhost:8080
// @BasePath				/api
// @schemes				http https
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	// Telemetry: OTel tracing + metrics
	ctx := context.Background()
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	// Crash reporting: Sentry (optional; log and continue on failure)
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	appConfig, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize application", "error", err, "storage_driver", cfg.StorageDriver)
		os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
	}
	defer appConfig.Close() //nolint:errcheck

	svcs, err := grocerySvcs.New(ctx, appConfig)
	if err != nil {
		log.Error("failed to initialize grocery services", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	log.Info("item store ready",
		"storage_driver", cfg.StorageDriver,
		"event_transport", appConfig.EventBus.Transport(),
		"items", len(svcs.Store.Snapshot()),
	)

	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
			RequestsPerMinute:  cfg.RequestsPerMinute,
		},
		httpx.Middlewares{
			Logger:   logger.Middleware(log),
			Recovery: logger.Recovery(log),
			Sentry:   telemetry.SentryMiddleware(),
			Otel:     otelhttp.NewMiddleware(cfg.ServiceName),
		},
	)

	r.Get("/health", httpx.HealthHandler(httpx.HealthChecks{
		StorageDriver: cfg.StorageDriver,
		Storage:       svcs.Storage,
		EventBus:      appConfig.EventBus,
	}))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Route("/api", func(r chi.Router) {
		registerRoutes(r, svcs, cfg.Environment == config.EnvProduction)
	})

	srv := httpx.NewServer(cfg.HTTPAddr, r)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// registerRoutes mounts all service routes under /api.
// Add each new service's route function here.
func registerRoutes(r chi.Router, svcs *grocerySvcs.Services, hideInternal bool) {
	groceryApi.GroceryRoutes(r, svcs, hideInternal)
}
