// Package natsbus publishes domain events to NATS as JSON.
package natsbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"healthhub/internal/domain"
)

// Conn is the part of *nats.Conn the bus uses.
type Conn interface {
	Publish(subject string, data []byte) error
}

// Bus implements domain.EventPublisher.
type Bus struct {
	conn   Conn
	nc     *nats.Conn
	prefix string
}

var _ domain.EventPublisher = (*Bus)(nil)

// Connect dials url and returns a Bus publishing under prefix.
func Connect(url, prefix string) (*Bus, error) {
	nc, err := nats.Connect(url,
		nats.Name("healthhub"),
		nats.MaxReconnects(5),
		nats.ReconnectWait(time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	slog.Info("connected to NATS", "url", nc.ConnectedUrl())
	b := New(nc, prefix)
	b.nc = nc
	return b, nil
}

// New wraps an existing connection.
func New(conn Conn, prefix string) *Bus {
	return &Bus{conn: conn, prefix: prefix}
}

// Subject returns the full subject for a domain event subject.
func (b *Bus) Subject(subject string) string {
	if b.prefix == "" {
		return subject
	}
	return b.prefix + "." + subject
}

// Publish encodes payload as JSON and publishes it.
func (b *Bus) Publish(ctx context.Context, subject string, payload any) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled before publish: %w", err)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	return b.conn.Publish(b.Subject(subject), data)
}

// Close drains the connection if Connect opened it.
func (b *Bus) Close() error {
	if b.nc == nil {
		return nil
	}
	return b.nc.Drain()
}
