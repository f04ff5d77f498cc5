package outbox

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/overworld/go/internal/events"
)

// ErrAlreadySent is returned by FetchByID for an event that is already marked sent
var ErrAlreadySent = errors.New("outbox event already sent")

// NotifyChannel is the postgres channel the world_outbox trigger notifies on
const NotifyChannel = "world_outbox_events"

// Publisher delivers one outbox event to the event bus
type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// PublisherFunc adapts a plain function into a Publisher
type PublisherFunc func(ctx context.Context, event events.Event) error

func (f PublisherFunc) Publish(ctx context.Context, event events.Event) error {
	return f(ctx, event)
}

// Store is what the listener needs from the outbox table
type Store interface {
	FetchByID(ctx context.Context, id uuid.UUID) (*events.Event, error)
	FetchUnsent(ctx context.Context, limit int32) ([]events.Event, error)
	MarkSent(ctx context.Context, id uuid.UUID) (bool, error)
	CountUnsent(ctx context.Context) (int64, error)
}

// ListenerConfig configures the outbox listener
type ListenerConfig struct {
	DatabaseURL      string        // Postgres DSN for LISTEN/NOTIFY
	NotifyChannel    string        // Channel name to LISTEN on
	FallbackInterval time.Duration // How often to poll for missed events
	MaxRetries       int
	RetryDelay       time.Duration
	PingInterval     time.Duration
	BatchSize        int32 // Max events to fetch per batch
}

func DefaultListenerConfig() ListenerConfig {
	return ListenerConfig{
		NotifyChannel:    NotifyChannel,
		FallbackInterval: 30 * time.Second,
		MaxRetries:       5,
		RetryDelay:       200 * time.Millisecond,
		PingInterval:     90 * time.Second,
		BatchSize:        100,
	}
}
