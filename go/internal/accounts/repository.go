package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/overworld/go/internal/accounts/db"
	"github.com/mcdev12/overworld/go/internal/models"
	"github.com/mcdev12/overworld/go/internal/sqlutil"
)

// Repository implements account data access operations
type Repository struct {
	db      *sql.DB
	queries *db.Queries
}

// NewRepository creates a new accounts repository
func NewRepository(database *sql.DB) *Repository {
	return &Repository{
		db:      database,
		queries: db.New(database),
	}
}

// CreateAccount creates a new account
func (r *Repository) CreateAccount(ctx context.Context, req CreateAccountRequest) (*models.Account, error) {
	account, err := r.queries.CreateAccount(ctx, db.CreateAccountParams{
		ID:          uuid.New(),
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Balance:     req.Balance,
		SkinID:      req.SkinID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return dbAccountToModel(account), nil
}

// GetAccount retrieves an account by ID
func (r *Repository) GetAccount(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	account, err := r.queries.GetAccount(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return dbAccountToModel(account), nil
}

// GetAccountByEmail retrieves an account by email
func (r *Repository) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	account, err := r.queries.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}

	return dbAccountToModel(account), nil
}

// UpdateDisplayName renames an account
func (r *Repository) UpdateDisplayName(ctx context.Context, id uuid.UUID, name string) (*models.Account, error) {
	account, err := r.queries.UpdateDisplayName(ctx, db.UpdateDisplayNameParams{
		ID:          id,
		DisplayName: name,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	return dbAccountToModel(account), nil
}

// AddBalance applies delta to the balance unless it would go negative and
// writes the event built by eventFor in the same transaction.
func (r *Repository) AddBalance(ctx context.Context, id uuid.UUID, delta int64, eventFor BalanceEventFunc) (int64, error) {
	var balance int64
	err := sqlutil.Run(ctx, r.db, r.queries.WithTx, func(q *db.Queries) error {
		var err error
		balance, err = addBalance(ctx, q, id, delta, eventFor)
		return err
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

func addBalance(ctx context.Context, q db.Querier, id uuid.UUID, delta int64, eventFor BalanceEventFunc) (int64, error) {
	if _, err := q.LockAccount(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to lock account: %w", err)
	}

	balance, err := q.AddBalance(ctx, db.AddBalanceParams{
		Delta: delta,
		ID:    id,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrInsufficientFunds
		}
		return 0, fmt.Errorf("failed to add balance: %w", err)
	}

	if eventFor == nil {
		return balance, nil
	}
	evt, err := eventFor(balance)
	if err != nil {
		return 0, err
	}
	err = q.InsertWorldEvent(ctx, db.InsertWorldEventParams{
		ID:          evt.ID,
		AggregateID: evt.AggregateID,
		EventType:   string(evt.Type),
		Payload:     evt.Payload,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert %s outbox event: %w", evt.Type, err)
	}
	return balance, nil
}

// ListOwnedHouses lists the houses an account bought
func (r *Repository) ListOwnedHouses(ctx context.Context, id uuid.UUID) ([]models.OwnedHouse, error) {
	rows, err := r.queries.ListOwnedHouses(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list owned houses: %w", err)
	}

	houses := make([]models.OwnedHouse, len(rows))
	for i, row := range rows {
		houses[i] = models.OwnedHouse{
			AccountID:   row.AccountID,
			HouseID:     row.HouseID,
			PricePaid:   row.PricePaid,
			PurchasedAt: row.PurchasedAt,
		}
	}
	return houses, nil
}

// dbAccountToModel converts a database account to domain model
func dbAccountToModel(a db.Account) *models.Account {
	return &models.Account{
		ID:          a.ID,
		Email:       a.Email,
		DisplayName: a.DisplayName,
		Balance:     a.Balance,
		SkinID:      a.SkinID,
		CreatedAt:   a.CreatedAt,
	}
}
