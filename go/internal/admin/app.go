package admin

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/overworld/go/internal/models"
	"github.com/rs/zerolog/log"
)

// BalanceGranter is the accounts capability behind GrantMoney
type BalanceGranter interface {
	GrantMoney(ctx context.Context, id uuid.UUID, amount int64) (int64, error)
}

// PriceSetter is the shop capability behind the price RPCs
type PriceSetter interface {
	SetSkinPrice(ctx context.Context, p models.SkinPrice) error
	SetHousePrice(ctx context.Context, p models.HousePrice) error
}

// PlayerLister lists the players currently present
type PlayerLister interface {
	ListPlayers(ctx context.Context) []models.PlayerState
}

// App implements the operator actions
type App struct {
	accounts BalanceGranter
	prices   PriceSetter
	players  PlayerLister
}

// NewApp creates a new admin App
func NewApp(accounts BalanceGranter, prices PriceSetter, players PlayerLister) *App {
	return &App{
		accounts: accounts,
		prices:   prices,
		players:  players,
	}
}

// GrantMoney adjusts a balance. The accounts layer records the
// BalanceGranted event in the same transaction.
func (a *App) GrantMoney(ctx context.Context, id uuid.UUID, amount int64) (int64, error) {
	if amount == 0 {
		return 0, ErrInvalidAmount
	}

	balance, err := a.accounts.GrantMoney(ctx, id, amount)
	if err != nil {
		return 0, err
	}
	log.Info().
		Str("account_id", id.String()).
		Int64("amount", amount).
		Msg("admin granted money")
	return balance, nil
}

func (a *App) SetSkinPrice(ctx context.Context, skinID string, price int64) error {
	if err := a.prices.SetSkinPrice(ctx, models.SkinPrice{SkinID: skinID, Price: price}); err != nil {
		return fmt.Errorf("failed to set skin price: %w", err)
	}
	return nil
}

func (a *App) SetHousePrice(ctx context.Context, houseID string, price int64) error {
	if err := a.prices.SetHousePrice(ctx, models.HousePrice{HouseID: houseID, Price: price}); err != nil {
		return fmt.Errorf("failed to set house price: %w", err)
	}
	return nil
}

func (a *App) ListOnline(ctx context.Context) []models.PlayerState {
	players := a.players.ListPlayers(ctx)
	if players == nil {
		players = []models.PlayerState{}
	}
	return players
}
