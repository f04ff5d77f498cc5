package players

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/overworld/go/internal/models"
	"github.com/mcdev12/overworld/go/internal/players/db"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	GetPlayerPosition(ctx context.Context, accountID uuid.UUID) (db.PlayerPosition, error)
	OwnsSkin(ctx context.Context, arg db.OwnsSkinParams) (bool, error)
	SetAccountSkin(ctx context.Context, arg db.SetAccountSkinParams) error
	UpsertPlayerPosition(ctx context.Context, arg db.UpsertPlayerPositionParams) error
}

// Repository persists the durable part of player state
type Repository struct {
	queries Querier
}

// NewRepository creates a new players repository
func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

// SavePosition stores the last known position of an account
func (r *Repository) SavePosition(ctx context.Context, pos models.SavedPosition) error {
	err := r.queries.UpsertPlayerPosition(ctx, db.UpsertPlayerPositionParams{
		AccountID: pos.AccountID,
		X:         pos.Position.X,
		Y:         pos.Position.Y,
		UpdatedAt: pos.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to save position: %w", err)
	}
	return nil
}

// LoadPosition returns the saved position, or nil when the account never
// moved.
func (r *Repository) LoadPosition(ctx context.Context, accountID uuid.UUID) (*models.SavedPosition, error) {
	row, err := r.queries.GetPlayerPosition(ctx, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load position: %w", err)
	}
	return &models.SavedPosition{
		AccountID: row.AccountID,
		Position:  models.Position{X: row.X, Y: row.Y},
		UpdatedAt: row.UpdatedAt,
	}, nil
}

// SaveSkin stores the equipped skin on the account
func (r *Repository) SaveSkin(ctx context.Context, accountID uuid.UUID, skinID string) error {
	err := r.queries.SetAccountSkin(ctx, db.SetAccountSkinParams{
		ID:     accountID,
		SkinID: skinID,
	})
	if err != nil {
		return fmt.Errorf("failed to save skin: %w", err)
	}
	return nil
}

// OwnsSkin reports whether the account bought the skin
func (r *Repository) OwnsSkin(ctx context.Context, accountID uuid.UUID, skinID string) (bool, error) {
	owned, err := r.queries.OwnsSkin(ctx, db.OwnsSkinParams{
		AccountID: accountID,
		SkinID:    skinID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to check skin ownership: %w", err)
	}
	return owned, nil
}
