package accounts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/overworld/go/internal/accounts/db"
	"github.com/mcdev12/overworld/go/internal/events"
)

// txQuerier is a db.Querier over a balance table for one transaction
type txQuerier struct {
	balances map[uuid.UUID]int64
	events   []db.InsertWorldEventParams
}

func (q *txQuerier) AddBalance(_ context.Context, arg db.AddBalanceParams) (int64, error) {
	b, ok := q.balances[arg.ID]
	if !ok || b+arg.Delta < 0 {
		return 0, sql.ErrNoRows
	}
	q.balances[arg.ID] = b + arg.Delta
	return b + arg.Delta, nil
}

func (q *txQuerier) CreateAccount(context.Context, db.CreateAccountParams) (db.Account, error) {
	return db.Account{}, errors.New("not used")
}

func (q *txQuerier) GetAccount(context.Context, uuid.UUID) (db.Account, error) {
	return db.Account{}, errors.New("not used")
}

func (q *txQuerier) GetAccountByEmail(context.Context, string) (db.Account, error) {
	return db.Account{}, errors.New("not used")
}

func (q *txQuerier) InsertWorldEvent(_ context.Context, arg db.InsertWorldEventParams) error {
	q.events = append(q.events, arg)
	return nil
}

func (q *txQuerier) ListOwnedHouses(context.Context, uuid.UUID) ([]db.OwnedHouse, error) {
	return nil, nil
}

func (q *txQuerier) LockAccount(_ context.Context, id uuid.UUID) (int64, error) {
	b, ok := q.balances[id]
	if !ok {
		return 0, sql.ErrNoRows
	}
	return b, nil
}

func (q *txQuerier) UpdateDisplayName(context.Context, db.UpdateDisplayNameParams) (db.Account, error) {
	return db.Account{}, errors.New("not used")
}

func grantEvent(id uuid.UUID, amount int64) BalanceEventFunc {
	return func(balance int64) (events.Event, error) {
		return events.New(events.BalanceGranted, id, events.BalanceGrantedPayload{
			AccountID:  id.String(),
			Amount:     amount,
			NewBalance: balance,
		})
	}
}

func TestAddBalanceWritesEventInSameTransaction(t *testing.T) {
	id := uuid.New()
	q := &txQuerier{balances: map[uuid.UUID]int64{id: 100}}

	balance, err := addBalance(t.Context(), q, id, 25, grantEvent(id, 25))
	if err != nil {
		t.Fatalf("add balance: %v", err)
	}
	if balance != 125 {
		t.Fatalf("expected balance 125, got %d", balance)
	}
	if len(q.events) != 1 {
		t.Fatalf("expected one outbox row, got %d", len(q.events))
	}

	var payload events.BalanceGrantedPayload
	if err := json.Unmarshal(q.events[0].Payload, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.NewBalance != 125 || q.events[0].EventType != string(events.BalanceGranted) {
		t.Fatalf("expected BalanceGranted with balance 125, got %s %+v", q.events[0].EventType, payload)
	}
}

func TestAddBalanceMissingAccount(t *testing.T) {
	q := &txQuerier{balances: map[uuid.UUID]int64{}}
	id := uuid.New()

	_, err := addBalance(t.Context(), q, id, 10, grantEvent(id, 10))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(q.events) != 0 {
		t.Fatalf("expected no outbox row, got %d", len(q.events))
	}
}

func TestAddBalanceOverdraw(t *testing.T) {
	id := uuid.New()
	q := &txQuerier{balances: map[uuid.UUID]int64{id: 10}}

	_, err := addBalance(t.Context(), q, id, -20, grantEvent(id, -20))
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if len(q.events) != 0 {
		t.Fatalf("expected no outbox row, got %d", len(q.events))
	}
}
