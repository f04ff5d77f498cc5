package outbox

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/lib/pq"
	"github.com/mcdev12/overworld/go/internal/events"
	"github.com/rs/zerolog/log"
)

// NotificationSource is the LISTEN side of postgres. *pq.Listener satisfies it
// through PQSource.
type NotificationSource interface {
	Notifications() <-chan *pq.Notification
	Ping() error
	Close() error
}

// PQSource wraps a pq.Listener
type PQSource struct {
	listener *pq.Listener
}

// NewPQSource opens a pq.Listener on channel
func NewPQSource(dsn, channel string) (*PQSource, error) {
	l := pq.NewListener(
		dsn,
		10*time.Second,
		time.Minute,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				log.Error().Err(err).Msg("listener event")
			}
		},
	)
	if err := l.Listen(channel); err != nil {
		l.Close()
		return nil, fmt.Errorf("failed to listen to channel: %w", err)
	}

	log.Info().
		Str("channel", channel).
		Msg("listening for notifications")

	return &PQSource{listener: l}, nil
}

func (s *PQSource) Notifications() <-chan *pq.Notification { return s.listener.Notify }
func (s *PQSource) Ping() error                            { return s.listener.Ping() }
func (s *PQSource) Close() error                           { return s.listener.Close() }

// Listener publishes outbox rows as they are notified, with a fallback poll
// for anything missed while disconnected.
type Listener struct {
	store     Store
	source    NotificationSource
	publisher Publisher
	clock     clockwork.Clock
	cfg       ListenerConfig

	processed atomic.Uint64
	failed    atomic.Uint64
	running   atomic.Bool

	mu        sync.Mutex
	lastEvent time.Time
}

func NewListener(store Store, source NotificationSource, publisher Publisher, clock clockwork.Clock, cfg ListenerConfig) *Listener {
	return &Listener{
		store:     store,
		source:    source,
		publisher: publisher,
		clock:     clock,
		cfg:       cfg,
	}
}

// Start blocks until ctx is cancelled
func (l *Listener) Start(ctx context.Context) error {
	log.Info().
		Str("channel", l.cfg.NotifyChannel).
		Dur("ping_interval", l.cfg.PingInterval).
		Dur("fallback_interval", l.cfg.FallbackInterval).
		Msg("listener started")

	l.running.Store(true)
	defer l.running.Store(false)

	pingTicker := l.clock.NewTicker(l.cfg.PingInterval)
	fallbackTicker := l.clock.NewTicker(l.cfg.FallbackInterval)
	defer pingTicker.Stop()
	defer fallbackTicker.Stop()

	// Catch up on anything written while we were down.
	if err := l.ProcessUnsent(ctx); err != nil {
		log.Error().Err(err).Msg("failed to process unsent events")
	}

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("listener shutting down")
			return l.source.Close()
		case note := <-l.source.Notifications():
			if note == nil {
				// reconnected; anything notified meanwhile is picked up by the poll
				continue
			}
			if err := l.HandleNotification(ctx, note.Extra); err != nil {
				log.Error().Err(err).Msg("failed to handle notification")
			}
		case <-fallbackTicker.Chan():
			if err := l.ProcessUnsent(ctx); err != nil {
				log.Error().Err(err).Msg("failed to process unsent events")
			}
		case <-pingTicker.Chan():
			if err := l.source.Ping(); err != nil {
				log.Error().Err(err).Msg("failed to ping listener")
			}
		}
	}
}

// Running reports whether Start is looping
func (l *Listener) Running() bool {
	return l.running.Load()
}

// Stats returns the number of published events and when the last one went out
func (l *Listener) Stats() (processed, failed uint64, lastEvent time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.processed.Load(), l.failed.Load(), l.lastEvent
}

// HandleNotification publishes the event whose id is carried by a notification
func (l *Listener) HandleNotification(ctx context.Context, extra string) error {
	id, err := uuid.Parse(extra)
	if err != nil {
		return fmt.Errorf("invalid event ID in notification: %w", err)
	}

	event, err := l.store.FetchByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrAlreadySent) {
			// the fallback poll got there first
			log.Debug().Str("event_id", id.String()).Msg("skipping event already sent")
			return nil
		}
		return err
	}

	return l.deliver(ctx, *event)
}

// ProcessUnsent publishes one batch of unsent events, oldest first
func (l *Listener) ProcessUnsent(ctx context.Context) error {
	unsent, err := l.store.FetchUnsent(ctx, l.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, event := range unsent {
		if err := l.deliver(ctx, event); err != nil {
			log.Error().Err(err).Str("event_id", event.ID.String()).Msg("failed to publish event")
			continue
		}
	}
	return nil
}

func (l *Listener) deliver(ctx context.Context, event events.Event) error {
	if err := l.publishWithRetry(ctx, event); err != nil {
		l.failed.Add(1)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	marked, err := l.store.MarkSent(ctx, event.ID)
	if err != nil {
		return err
	}
	if !marked {
		// the fallback poll and a notification raced; the bus dedupes on msg id
		log.Debug().Str("event_id", event.ID.String()).Msg("event already marked sent")
		return nil
	}

	l.mu.Lock()
	l.processed.Add(1)
	l.lastEvent = l.clock.Now()
	l.mu.Unlock()

	log.Info().
		Str("event_id", event.ID.String()).
		Str("event_type", string(event.Type)).
		Msg("published and marked event as sent")
	return nil
}

// publishWithRetry retries with a linearly growing delay
func (l *Listener) publishWithRetry(ctx context.Context, event events.Event) error {
	var lastErr error

	for attempt := 0; attempt <= l.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := l.cfg.RetryDelay * time.Duration(attempt)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-l.clock.After(delay):
			}
		}

		if err := l.publisher.Publish(ctx, event); err != nil {
			lastErr = err
			log.Error().
				Err(err).
				Int("attempt", attempt+1).
				Str("event_id", event.ID.String()).
				Msg("failed to publish, retrying")
			continue
		}

		if attempt > 0 {
			log.Info().
				Int("attempt", attempt+1).
				Str("event_id", event.ID.String()).
				Msg("publish succeeded after retry")
		}
		return nil
	}

	return fmt.Errorf("publish failed after %d attempts: %w", l.cfg.MaxRetries+1, lastErr)
}
