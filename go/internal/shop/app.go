package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mcdev12/overworld/go/internal/models"
	"github.com/rs/zerolog/log"
)

// ShopRepository defines what the app layer needs from the repository
type ShopRepository interface {
	ListSkinPrices(ctx context.Context) ([]models.SkinPrice, error)
	ListHousePrices(ctx context.Context) ([]models.HousePrice, error)
	SetSkinPrice(ctx context.Context, p models.SkinPrice) error
	SetHousePrice(ctx context.Context, p models.HousePrice) error
	BuySkin(ctx context.Context, accountID uuid.UUID, skinID string) (*SkinPurchase, error)
	BuyHouse(ctx context.Context, accountID uuid.UUID, houseID string) (*HousePurchase, error)
	Balance(ctx context.Context, accountID uuid.UUID) (int64, error)
}

// SkinEquipper updates the live world after a skin change
type SkinEquipper interface {
	EquipSkin(accountID uuid.UUID, skinID string)
}

// App handles shop business logic
type App struct {
	repo     ShopRepository
	equipper SkinEquipper
}

// NewApp creates a new shop App
func NewApp(repo ShopRepository, equipper SkinEquipper) *App {
	return &App{
		repo:     repo,
		equipper: equipper,
	}
}

// ListSkinPrices returns the skin catalog
func (a *App) ListSkinPrices(ctx context.Context) ([]models.SkinPrice, error) {
	return a.repo.ListSkinPrices(ctx)
}

// ListHousePrices returns the house catalog
func (a *App) ListHousePrices(ctx context.Context) ([]models.HousePrice, error) {
	return a.repo.ListHousePrices(ctx)
}

// SetSkinPrice creates or reprices a skin
func (a *App) SetSkinPrice(ctx context.Context, p models.SkinPrice) error {
	p.SkinID = strings.TrimSpace(p.SkinID)
	if p.SkinID == "" {
		return fmt.Errorf("%w: empty skin id", ErrUnknownSkin)
	}
	if p.Price < 0 {
		return ErrInvalidPrice
	}
	if err := a.repo.SetSkinPrice(ctx, p); err != nil {
		return err
	}
	log.Info().Str("skin_id", p.SkinID).Int64("price", p.Price).Msg("skin price set")
	return nil
}

// SetHousePrice creates or reprices a house
func (a *App) SetHousePrice(ctx context.Context, p models.HousePrice) error {
	p.HouseID = strings.TrimSpace(p.HouseID)
	if p.HouseID == "" {
		return fmt.Errorf("%w: empty house id", ErrUnknownHouse)
	}
	if p.Price < 0 {
		return ErrInvalidPrice
	}
	if err := a.repo.SetHousePrice(ctx, p); err != nil {
		return err
	}
	log.Info().Str("house_id", p.HouseID).Int64("price", p.Price).Msg("house price set")
	return nil
}

// BuySkin buys and equips a skin. Business failures come back as an
// unsuccessful result, not an error.
func (a *App) BuySkin(ctx context.Context, account *models.Account, skinID string) (*models.PurchaseResult, error) {
	skinID = strings.TrimSpace(skinID)
	purchase, err := a.repo.BuySkin(ctx, account.ID, skinID)
	if err != nil {
		return a.failure(ctx, account, err)
	}

	if a.equipper != nil {
		a.equipper.EquipSkin(account.ID, skinID)
	}

	if purchase.AlreadyOwned {
		log.Info().Str("account_id", account.ID.String()).Str("skin_id", skinID).Msg("owned skin equipped")
		return &models.PurchaseResult{Success: true, NewBalance: purchase.Balance, Message: "skin equipped"}, nil
	}

	log.Info().
		Str("account_id", account.ID.String()).
		Str("skin_id", skinID).
		Int64("price", purchase.Price).
		Int64("balance", purchase.Balance).
		Msg("skin purchased")
	return &models.PurchaseResult{Success: true, NewBalance: purchase.Balance, Message: "skin purchased"}, nil
}

// BuyHouse buys a house
func (a *App) BuyHouse(ctx context.Context, account *models.Account, houseID string) (*models.PurchaseResult, error) {
	houseID = strings.TrimSpace(houseID)
	purchase, err := a.repo.BuyHouse(ctx, account.ID, houseID)
	if err != nil {
		return a.failure(ctx, account, err)
	}

	log.Info().
		Str("account_id", account.ID.String()).
		Str("house_id", houseID).
		Int64("price", purchase.Price).
		Int64("balance", purchase.Balance).
		Msg("house purchased")
	return &models.PurchaseResult{Success: true, NewBalance: purchase.Balance, Message: "house purchased"}, nil
}

func (a *App) failure(ctx context.Context, account *models.Account, err error) (*models.PurchaseResult, error) {
	var msg string
	switch {
	case errors.Is(err, ErrUnknownSkin):
		msg = "unknown skin"
	case errors.Is(err, ErrUnknownHouse):
		msg = "unknown house"
	case errors.Is(err, ErrAlreadyOwned):
		msg = "already owned"
	case errors.Is(err, ErrInsufficientFunds):
		msg = "insufficient funds"
	default:
		return nil, fmt.Errorf("failed to complete purchase: %w", err)
	}

	balance, berr := a.repo.Balance(ctx, account.ID)
	if berr != nil {
		balance = account.Balance
	}
	return &models.PurchaseResult{Success: false, NewBalance: balance, Message: msg}, nil
}
