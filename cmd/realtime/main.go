package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	natsadapter "github.com/samirrijal/signuis/internal/adapters/nats"
	"github.com/samirrijal/signuis/internal/adapters/postgres"
	"github.com/samirrijal/signuis/internal/adapters/valkey"
	"github.com/samirrijal/signuis/internal/core/domain"
	"github.com/samirrijal/signuis/internal/core/ports"
	"github.com/samirrijal/signuis/internal/core/usecases"
	"github.com/samirrijal/signuis/internal/pkg/config"
	"github.com/samirrijal/signuis/internal/pkg/geospatial/ewkb"
	"github.com/samirrijal/signuis/internal/pkg/logging"
	"github.com/samirrijal/signuis/internal/pkg/telemetry"
)

// broadcast is the message pushed to WebSocket clients for each new report.
type broadcast struct {
	Event     string          `json:"event"`
	ReportID  string          `json:"report_id"`
	TypeID    string          `json:"type_id"`
	TypeLabel string          `json:"type_label,omitempty"`
	Kind      string          `json:"kind"`
	Intensity int             `json:"intensity"`
	Location  domain.Location `json:"location"`
	CreatedAt time.Time       `json:"created_at"`
}

func main() {
	cfg, err := config.Load("signuis-realtime")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.Setup(cfg.Log.Level, cfg.Log.Format, cfg.Telemetry.ServiceName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPEndpoint, cfg.Telemetry.SampleRatio)
		if err != nil {
			logger.Warn("telemetry init failed", "error", err)
		} else {
			defer func() { _ = shutdown(context.Background()) }()
		}
	}

	order, err := cfg.Geometry.Order()
	if err != nil {
		fatal(logger, "geometry byte order", err)
	}

	db, err := postgres.New(ctx, cfg.Database.DSN(), cfg.Database.MaxConns)
	if err != nil {
		fatal(logger, "database", err)
	}
	defer db.Close()

	var cache ports.CacheService
	if vc, err := valkey.New(cfg.Valkey.Addr, cfg.Valkey.Password, cfg.Valkey.KeyPrefix); err != nil {
		logger.Warn("valkey unavailable, indexing without cache", "error", err)
	} else {
		defer vc.Close()
		cache = vc
	}

	pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		fatal(logger, "nats publisher", err)
	}
	defer pub.Close()

	sub, err := natsadapter.NewSubscriber(cfg.NATS.URL, cfg.NATS.Durable)
	if err != nil {
		fatal(logger, "nats subscriber", err)
	}
	defer sub.Close()

	typeRepo := postgres.NewTypeRepo(db)
	reporting := usecases.NewReportingService(postgres.NewReportRepo(db, order), typeRepo, cache, pub,
		usecases.ReportingOptions{DefaultSRID: cfg.Geometry.DefaultSRID, ByteOrder: order})

	handler := func(ctx context.Context, event *domain.ReportCreatedEvent) error {
		report, err := reporting.IndexReport(ctx, event)
		if err != nil {
			if ewkb.ReasonOf(err) != 0 {
				// Redelivery cannot repair the payload.
				logger.Error("dropping report with undecodable location",
					"report_id", event.ReportID, "reason", ewkb.ReasonOf(err).String(), "error", err)
				return nil
			}
			return err
		}

		msg := broadcast{
			Event:     "report_created",
			ReportID:  report.ID,
			TypeID:    report.TypeID,
			Kind:      event.Kind,
			Intensity: report.Intensity,
			Location:  report.Location,
			CreatedAt: report.CreatedAt,
		}
		if report.Type != nil {
			msg.TypeLabel = report.Type.Label
		}
		data, err := json.Marshal(msg)
		if err != nil {
			return err
		}
		if err := pub.PublishBroadcast(ctx, data); err != nil {
			logger.Warn("broadcast failed", "report_id", report.ID, "error", err)
		}
		logger.Debug("report indexed", "report_id", report.ID, "kind", event.Kind)
		return nil
	}

	if err := sub.SubscribeReportCreated(ctx, handler); err != nil {
		fatal(logger, "subscribe", err)
	}
	logger.Info("realtime indexer started", "durable", cfg.NATS.Durable, "byte_order", order.String())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("shutting down realtime indexer", "signal", sig.String())
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}
