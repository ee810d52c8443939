package natsadapter

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Publisher implements ports.EventPublisher using NATS JetStream. The
// ingestion pipeline and the summary worker publish here; the API process
// subscribes to invalidate caches and feed the WebSocket relay.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS and ensures the civic streams exist.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	streams := []nats.StreamConfig{
		{
			Name:      "CIVIC_BILLS",
			Subjects:  []string{"civic.bills.>"},
			Retention: nats.InterestPolicy,
			MaxAge:    24 * time.Hour,
			Storage:   nats.FileStorage,
		},
		{
			Name:      "CIVIC_PEOPLE",
			Subjects:  []string{"civic.people.>"},
			Retention: nats.InterestPolicy,
			MaxAge:    24 * time.Hour,
			Storage:   nats.FileStorage,
		},
	}

	for _, cfg := range streams {
		if _, err := js.AddStream(&cfg); err != nil {
			// Stream may already exist — try update
			if _, err := js.UpdateStream(&cfg); err != nil {
				return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
			}
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

// PublishBillUpdated signals that a bill changed (new action, vote, or
// summary). Subject carries the bill ID so consumers can filter.
func (p *Publisher) PublishBillUpdated(ctx context.Context, billID string) error {
	_, err := p.js.Publish("civic.bills.updated."+billID, []byte(billID))
	return err
}

// PublishPersonUpdated signals that a representative record changed.
func (p *Publisher) PublishPersonUpdated(ctx context.Context, personID string) error {
	_, err := p.js.Publish("civic.people.updated."+personID, []byte(personID))
	return err
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection for subscribing (e.g. WebSocket relay).
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
