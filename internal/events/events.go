package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/verinews/apiserver/config"
)

// LifecycleEvent notifies downstream consumers of one administrative
// account transition. It mirrors the audit entry written in the same
// transaction and is published after commit, best-effort.
type LifecycleEvent struct {
	Action   string    `json:"action"`
	Username string    `json:"username"`
	At       time.Time `json:"at"`
}

// Publisher delivers lifecycle events to a broker.
type Publisher interface {
	Publish(ctx context.Context, event LifecycleEvent) (string, error)
	Close() error
}

// NewPublisher selects a broker backend from config. "none" yields a
// publisher that drops events.
func NewPublisher(ctx context.Context, cfg config.EventsConfig) (Publisher, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", "none":
		return NoopPublisher{}, nil
	case "rabbitmq":
		return NewRabbitMQPublisher(cfg.RabbitMQ, cfg.Topic)
	case "pubsub":
		return NewPubSubPublisher(ctx, cfg.PubSub, cfg.Topic)
	default:
		return nil, fmt.Errorf("unknown events backend %q", cfg.Backend)
	}
}

// NoopPublisher drops events. Used when no broker is configured.
type NoopPublisher struct{}

var _ Publisher = NoopPublisher{}

func (NoopPublisher) Publish(context.Context, LifecycleEvent) (string, error) {
	return "", nil
}

func (NoopPublisher) Close() error {
	return nil
}

func encode(event LifecycleEvent) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}
