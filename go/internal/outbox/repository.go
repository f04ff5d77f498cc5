package outbox

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/overworld/go/internal/events"
	"github.com/mcdev12/overworld/go/internal/outbox/db"
	"github.com/mcdev12/overworld/go/internal/sqlutil"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	CountUnsentOutbox(ctx context.Context) (int64, error)
	FetchOutboxByID(ctx context.Context, id uuid.UUID) (db.WorldOutbox, error)
	FetchUnsentOutbox(ctx context.Context, limit int32) ([]db.WorldOutbox, error)
	InsertWorldEvent(ctx context.Context, arg db.InsertWorldEventParams) error
	MarkOutboxSent(ctx context.Context, id uuid.UUID) (int64, error)
}

// Repository reads and writes the world outbox table
type Repository struct {
	queries Querier
}

// NewRepository creates a new outbox repository
func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

// Insert writes an event outside of any business transaction
func (r *Repository) Insert(ctx context.Context, evt events.Event) error {
	err := r.queries.InsertWorldEvent(ctx, db.InsertWorldEventParams{
		ID:          evt.ID,
		AggregateID: evt.AggregateID,
		EventType:   string(evt.Type),
		Payload:     evt.Payload,
	})
	if err != nil {
		return fmt.Errorf("failed to insert %s outbox event: %w", evt.Type, err)
	}
	return nil
}

// FetchByID loads one unsent event. An event already marked sent returns
// ErrAlreadySent.
func (r *Repository) FetchByID(ctx context.Context, id uuid.UUID) (*events.Event, error) {
	row, err := r.queries.FetchOutboxByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch outbox event: %w", err)
	}
	if sentAt := sqlutil.FromSqlTime(row.SentAt); sentAt != nil {
		return nil, fmt.Errorf("%w: %s at %s", ErrAlreadySent, id, sentAt.Format(time.RFC3339))
	}
	evt := dbEventToModel(row)
	return &evt, nil
}

// FetchUnsent returns up to limit unsent events, oldest first
func (r *Repository) FetchUnsent(ctx context.Context, limit int32) ([]events.Event, error) {
	rows, err := r.queries.FetchUnsentOutbox(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unsent outbox events: %w", err)
	}
	out := make([]events.Event, len(rows))
	for i, row := range rows {
		out[i] = dbEventToModel(row)
	}
	return out, nil
}

// MarkSent flags an event as published. It reports false when the event
// was already marked.
func (r *Repository) MarkSent(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := r.queries.MarkOutboxSent(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to mark outbox event as sent: %w", err)
	}
	return n > 0, nil
}

// CountUnsent returns the number of events waiting to be published
func (r *Repository) CountUnsent(ctx context.Context) (int64, error) {
	n, err := r.queries.CountUnsentOutbox(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count unsent outbox events: %w", err)
	}
	return n, nil
}

func dbEventToModel(row db.WorldOutbox) events.Event {
	return events.Event{
		ID:          row.ID,
		AggregateID: row.AggregateID,
		Type:        events.Type(row.EventType),
		Payload:     row.Payload,
		CreatedAt:   row.CreatedAt,
	}
}
