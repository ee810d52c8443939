package natsadapter

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Subscriber implements ports.EventSubscriber using NATS JetStream.
type Subscriber struct {
	conn *nats.Conn
	js   nats.JetStreamContext
	subs []*nats.Subscription
}

// NewSubscriber creates a subscriber with its own NATS connection.
func NewSubscriber(url string) (*Subscriber, error) {
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
	return &Subscriber{conn: conn, js: js}, nil
}

// SubscribeBillUpdates delivers bill IDs from civic.bills.> to the handler.
// Failed handling is Nak'd for redelivery, up to three attempts.
func (s *Subscriber) SubscribeBillUpdates(ctx context.Context, handler func(ctx context.Context, billID string) error) error {
	return s.subscribe(ctx, "civic.bills.>", "bill-cache-invalidator", handler)
}

// SubscribePersonUpdates delivers person IDs from civic.people.> to the handler.
func (s *Subscriber) SubscribePersonUpdates(ctx context.Context, handler func(ctx context.Context, personID string) error) error {
	return s.subscribe(ctx, "civic.people.>", "person-cache-invalidator", handler)
}

func (s *Subscriber) subscribe(ctx context.Context, subject, durable string, handler func(ctx context.Context, id string) error) error {
	sub, err := s.js.Subscribe(subject, func(msg *nats.Msg) {
		if err := handler(ctx, string(msg.Data)); err != nil {
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	},
		nats.Durable(durable),
		nats.ManualAck(),
		nats.MaxDeliver(3),
	)
	if err != nil {
		return err
	}
	s.subs = append(s.subs, sub)
	return nil
}

// Close unsubscribes and drains.
func (s *Subscriber) Close() {
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	_ = s.conn.Drain()
}
