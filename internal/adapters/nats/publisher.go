package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/signuis/internal/core/domain"
)

// Subjects and stream names.
const (
	StreamReports        = "NUISANCE_REPORTS"
	SubjectReports       = "signuis.reports.>"
	SubjectReportCreated = "signuis.reports.created"
	SubjectBroadcast     = "signuis.updates.broadcast"
)

// ReportCreatedSubject returns the subject a ReportCreated event for typeID
// is published on.
func ReportCreatedSubject(typeID string) string {
	return SubjectReportCreated + "." + typeID
}

// Publisher implements ports.EventPublisher using NATS JetStream.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS and enables JetStream.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := RawConn(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	if err := ensureStream(js, &nats.StreamConfig{
		Name:       StreamReports,
		Subjects:   []string{SubjectReports},
		Retention:  nats.InterestPolicy,
		MaxAge:     24 * time.Hour,
		Storage:    nats.FileStorage,
		Duplicates: 2 * time.Minute,
	}); err != nil {
		return nil, err
	}

	return &Publisher{conn: conn, js: js}, nil
}

func ensureStream(js nats.JetStreamContext, cfg *nats.StreamConfig) error {
	if _, err := js.AddStream(cfg); err != nil {
		// Stream may already exist, try update
		if _, err := js.UpdateStream(cfg); err != nil {
			return fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}
	return nil
}

// PublishReportCreated publishes event on its type subject. The report ID is
// used as the message ID so redeliveries within the duplicate window are
// dropped by the server.
func (p *Publisher) PublishReportCreated(ctx context.Context, event *domain.ReportCreatedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = p.js.Publish(ReportCreatedSubject(event.TypeID), data,
		nats.Context(ctx),
		nats.MsgId(event.ReportID),
	)
	return err
}

func (p *Publisher) PublishBroadcast(ctx context.Context, data []byte) error {
	return p.conn.Publish(SubjectBroadcast, data)
}

// IsConnected reports the state of the underlying connection.
func (p *Publisher) IsConnected() bool {
	return p.conn.IsConnected()
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection for subscribing (e.g. WebSocket relay).
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.Name("signuis"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
