package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/repcheck/repcheck-api/internal/adapters/http"
	natsadapter "github.com/repcheck/repcheck-api/internal/adapters/nats"
	"github.com/repcheck/repcheck-api/internal/adapters/postgres"
	"github.com/repcheck/repcheck-api/internal/adapters/valkey"
	"github.com/repcheck/repcheck-api/internal/core/ports"
	"github.com/repcheck/repcheck-api/internal/core/usecases"
	"github.com/repcheck/repcheck-api/internal/pkg/config"
	"github.com/repcheck/repcheck-api/internal/pkg/logging"
	"github.com/repcheck/repcheck-api/internal/pkg/metrics"
	"github.com/repcheck/repcheck-api/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("repcheck-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup(logLevel, "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer func() {
				flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer flushCancel()
				_ = shutdown(flushCtx)
			}()
		}
	}

	// Database
	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Cache
	cache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
	} else {
		defer cache.Close()
	}

	// NATS publisher (summary endpoint announces updates)
	var publisher ports.EventPublisher
	pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
	} else {
		publisher = pub
		defer pub.Close()
	}

	// Raw NATS connection for WebSocket relay
	natsConn, err := natsadapter.RawConn(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats ws conn unavailable", "error", err)
	}

	// Cache invalidation on ingestion events
	if cache != nil {
		startCacheInvalidator(ctx, cfg.NATS.URL, cache)
	}

	// Export connection pool gauges
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				metrics.UpdateDBPoolMetrics(db.Pool.Stat())
			}
		}
	}()

	// Repos
	areaRepo := postgres.NewAreaRepo(db)
	personRepo := postgres.NewPersonRepo(db)
	billRepo := postgres.NewBillRepo(db)

	// A failed valkey connect leaves cache nil; services treat a nil
	// CacheService as "no caching".
	var cacheSvc ports.CacheService
	if cache != nil {
		cacheSvc = cache
	}

	// Use cases
	areaSvc := usecases.NewAreaService(areaRepo)
	precinctSvc := usecases.NewPrecinctService(areaRepo, cacheSvc)
	repSvc := usecases.NewRepresentativeService(personRepo, areaRepo, cacheSvc)
	billSvc := usecases.NewBillService(billRepo, repSvc, cacheSvc)

	deps := &http.Dependencies{
		Areas:           areaSvc,
		Precincts:       precinctSvc,
		Representatives: repSvc,
		Bills:           billSvc,
		NATS:            natsConn,
		Publisher:       publisher,
		DB:              db,
		Cache:           cache,
		SummaryKey:      cfg.API.SummaryKey,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "RepCheck API",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173, https://*.repcheck.org",
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-RepCheck-API-Key",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}

// startCacheInvalidator drops cached bills when the ingestion side
// announces a change. ZIP-scoped listing caches are not individually
// addressable from an entity ID, so those rely on their short TTLs.
func startCacheInvalidator(ctx context.Context, natsURL string, cache *valkey.Cache) {
	sub, err := natsadapter.NewSubscriber(natsURL)
	if err != nil {
		slog.Warn("cache invalidator unavailable", "error", err)
		return
	}

	if err := sub.SubscribeBillUpdates(ctx, func(ctx context.Context, billID string) error {
		return cache.Delete(ctx, usecases.BillCacheKey(billID))
	}); err != nil {
		slog.Warn("subscribe bill updates failed", "error", err)
	}
	if err := sub.SubscribePersonUpdates(ctx, func(ctx context.Context, personID string) error {
		slog.Debug("person updated", "person_id", personID)
		return nil
	}); err != nil {
		slog.Warn("subscribe person updates failed", "error", err)
	}
}
