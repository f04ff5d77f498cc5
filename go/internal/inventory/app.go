package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/overworld/go/internal/models"
	"github.com/rs/zerolog/log"
)

// InventoryRepository defines what the app layer needs from the repository
type InventoryRepository interface {
	Get(ctx context.Context, accountID uuid.UUID) (*models.Inventory, error)
	Add(ctx context.Context, accountID uuid.UUID, itemID string, attributes json.RawMessage, eventFor EventFunc) (models.InventorySlot, error)
	Move(ctx context.Context, accountID uuid.UUID, from, to int) error
	Sell(ctx context.Context, accountID uuid.UUID, slot int, priceOf func(itemID string) (int64, error)) (*Sale, error)
	Give(ctx context.Context, fromID uuid.UUID, slot int, toID uuid.UUID) (*Trade, error)
}

// App handles inventory business logic
type App struct {
	repo    InventoryRepository
	catalog map[string]models.Item
	order   []models.Item
}

// NewApp creates a new inventory App over an item catalog
func NewApp(repo InventoryRepository, items []models.Item) *App {
	catalog := make(map[string]models.Item, len(items))
	for _, it := range items {
		catalog[it.ID] = it
	}
	return &App{
		repo:    repo,
		catalog: catalog,
		order:   items,
	}
}

// Catalog returns every known item
func (a *App) Catalog() []models.Item {
	out := make([]models.Item, len(a.order))
	copy(out, a.order)
	return out
}

// Get returns the inventory of an account with catalog names resolved
func (a *App) Get(ctx context.Context, accountID uuid.UUID) ([]SlotView, error) {
	inv, err := a.repo.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	views := make([]SlotView, len(inv.Slots))
	for i, slot := range inv.Slots {
		views[i] = SlotView{Index: slot.Index, Item: slot.Item}
		if slot.Item != nil {
			if it, ok := a.catalog[slot.Item.ItemID]; ok {
				views[i].Name = it.Name
				views[i].Price = it.SellPrice
			}
		}
	}
	return views, nil
}

// Add puts an item into the first empty slot. eventFor may be nil.
func (a *App) Add(ctx context.Context, accountID uuid.UUID, itemID string, eventFor EventFunc) (models.InventorySlot, error) {
	if _, ok := a.catalog[itemID]; !ok {
		return models.InventorySlot{}, fmt.Errorf("%w: %s", ErrUnknownItem, itemID)
	}
	slot, err := a.repo.Add(ctx, accountID, itemID, nil, eventFor)
	if err != nil {
		return models.InventorySlot{}, err
	}
	log.Info().
		Str("account_id", accountID.String()).
		Str("item_id", itemID).
		Int("slot", slot.Index).
		Msg("item added")
	return slot, nil
}

// Move swaps two slots
func (a *App) Move(ctx context.Context, accountID uuid.UUID, from, to int) error {
	if !validSlot(from) || !validSlot(to) {
		return ErrInvalidSlot
	}
	if from == to {
		return nil
	}
	return a.repo.Move(ctx, accountID, from, to)
}

// Sell sells the item in slot for its catalog price
func (a *App) Sell(ctx context.Context, account *models.Account, slot int) (*models.PurchaseResult, error) {
	if !validSlot(slot) {
		return nil, ErrInvalidSlot
	}

	sale, err := a.repo.Sell(ctx, account.ID, slot, a.priceOf)
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotEmpty):
			return &models.PurchaseResult{Success: false, NewBalance: account.Balance, Message: "slot is empty"}, nil
		case errors.Is(err, ErrUnknownItem):
			return &models.PurchaseResult{Success: false, NewBalance: account.Balance, Message: "item cannot be sold"}, nil
		}
		return nil, fmt.Errorf("failed to sell item: %w", err)
	}

	log.Info().
		Str("account_id", account.ID.String()).
		Str("item_id", sale.Item.ItemID).
		Int64("price", sale.Price).
		Int64("balance", sale.Balance).
		Msg("item sold")
	return &models.PurchaseResult{Success: true, NewBalance: sale.Balance, Message: "item sold"}, nil
}

// Give hands the item in slot to another account
func (a *App) Give(ctx context.Context, account *models.Account, slot int, toID uuid.UUID) (*GiveResult, error) {
	if !validSlot(slot) {
		return nil, ErrInvalidSlot
	}
	if toID == account.ID {
		return &GiveResult{Success: false, Message: ErrSelfTrade.Error()}, nil
	}

	trade, err := a.repo.Give(ctx, account.ID, slot, toID)
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotEmpty):
			return &GiveResult{Success: false, Message: "slot is empty"}, nil
		case errors.Is(err, ErrInventoryFull):
			return &GiveResult{Success: false, Message: "recipient inventory is full"}, nil
		case errors.Is(err, ErrRecipientNotFound):
			return &GiveResult{Success: false, Message: "recipient not found"}, nil
		}
		return nil, fmt.Errorf("failed to give item: %w", err)
	}

	log.Info().
		Str("from_account_id", account.ID.String()).
		Str("to_account_id", toID.String()).
		Str("item_id", trade.Item.ItemID).
		Int("to_slot", trade.ToSlot).
		Msg("item given")
	return &GiveResult{Success: true, ToSlot: trade.ToSlot}, nil
}

func (a *App) priceOf(itemID string) (int64, error) {
	it, ok := a.catalog[itemID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownItem, itemID)
	}
	return it.SellPrice, nil
}

func validSlot(slot int) bool {
	return slot >= 0 && slot < models.InventorySize
}
