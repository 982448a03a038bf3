package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rvrjc/campusbot/internal/model"
)

// Conn is the subset of *nats.Conn the publisher needs.
type Conn interface {
	Publish(subject string, data []byte) error
}

// Publisher sends exchange events on per-session subjects.
type Publisher struct {
	conn   Conn
	prefix string
}

// NewPublisher creates a publisher writing under prefix.
func NewPublisher(conn Conn, prefix string) *Publisher {
	return &Publisher{conn: conn, prefix: prefix}
}

// ExchangeSubject returns the subject for a session's exchange events.
func ExchangeSubject(prefix, sessionID string) string {
	return fmt.Sprintf("%s.sessions.%s.exchange", prefix, sessionID)
}

// SessionFilter returns a wildcard subject matching every session's exchanges.
func SessionFilter(prefix string) string {
	return fmt.Sprintf("%s.sessions.*.exchange", prefix)
}

// PublishExchange publishes ev as JSON. Core NATS publishes are fire-and-forget;
// ctx is only checked for cancellation before sending.
func (p *Publisher) PublishExchange(ctx context.Context, ev model.ExchangeEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal exchange event: %w", err)
	}
	if err := p.conn.Publish(ExchangeSubject(p.prefix, ev.SessionID), data); err != nil {
		return fmt.Errorf("failed to publish exchange event: %w", err)
	}
	return nil
}
