package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/samirrijal/signuis/internal/adapters/http"
	natsadapter "github.com/samirrijal/signuis/internal/adapters/nats"
	"github.com/samirrijal/signuis/internal/adapters/postgres"
	"github.com/samirrijal/signuis/internal/adapters/valkey"
	"github.com/samirrijal/signuis/internal/core/ports"
	"github.com/samirrijal/signuis/internal/core/usecases"
	"github.com/samirrijal/signuis/internal/pkg/config"
	"github.com/samirrijal/signuis/internal/pkg/logging"
	"github.com/samirrijal/signuis/internal/pkg/metrics"
	"github.com/samirrijal/signuis/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("signuis-api")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.Log.Level, cfg.Log.Format, cfg.Telemetry.ServiceName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPEndpoint, cfg.Telemetry.SampleRatio)
		if err != nil {
			logger.Warn("telemetry init failed", "error", err)
		} else {
			defer func() {
				sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer scancel()
				_ = shutdown(sctx)
			}()
		}
	}

	order, err := cfg.Geometry.Order()
	if err != nil {
		fatal(logger, "geometry byte order", err)
	}

	// Database
	db, err := postgres.New(ctx, cfg.Database.DSN(), cfg.Database.MaxConns)
	if err != nil {
		fatal(logger, "database", err)
	}
	defer db.Close()

	deps := &http.Dependencies{
		Geometry: http.GeometryOptions{DefaultSRID: cfg.Geometry.DefaultSRID, ByteOrder: order},
		DB:       db,
	}

	// Cache
	var cache ports.CacheService
	if vc, err := valkey.New(cfg.Valkey.Addr, cfg.Valkey.Password, cfg.Valkey.KeyPrefix); err != nil {
		logger.Warn("valkey unavailable", "error", err)
	} else {
		defer vc.Close()
		cache = vc
		deps.Cache = vc
	}

	// NATS
	var publisher ports.EventPublisher
	if pub, err := natsadapter.NewPublisher(cfg.NATS.URL); err != nil {
		logger.Warn("nats unavailable", "error", err)
	} else {
		defer pub.Close()
		publisher = pub
	}

	// Raw NATS connection for the WebSocket relay
	if nc, err := natsadapter.RawConn(cfg.NATS.URL); err != nil {
		logger.Warn("nats ws conn unavailable", "error", err)
	} else {
		defer nc.Drain()
		deps.NATS = nc
	}

	// Repos
	familyRepo := postgres.NewFamilyRepo(db)
	typeRepo := postgres.NewTypeRepo(db)
	reportRepo := postgres.NewReportRepo(db, order)

	// Use cases
	deps.Catalog = usecases.NewCatalogService(familyRepo, typeRepo)
	deps.Reporting = usecases.NewReportingService(reportRepo, typeRepo, cache, publisher, usecases.ReportingOptions{
		DefaultSRID: cfg.Geometry.DefaultSRID,
		ByteOrder:   order,
	})

	// DB pool gauges
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				metrics.UpdateDBPoolMetrics(db.Pool.Stat())
			case <-ctx.Done():
				return
			}
		}
	}()

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
		AppName:      "Signuis API",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173",
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		logger.Info("API server starting", "addr", addr, "byte_order", order.String(), "default_srid", cfg.Geometry.DefaultSRID)
		if err := app.Listen(addr); err != nil {
			fatal(logger, "listen", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received, draining connections...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}

	logger.Info("server stopped")
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}
