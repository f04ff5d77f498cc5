package inventory

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/mcdev12/overworld/go/internal/events"
	"github.com/mcdev12/overworld/go/internal/inventory/db"
	"github.com/mcdev12/overworld/go/internal/models"
	"github.com/mcdev12/overworld/go/internal/sqlutil"
)

// Repository stores inventories. Every mutation locks the owning account
// row so slot assignment is serialized per account.
type Repository struct {
	db      *sql.DB
	queries *db.Queries
}

// NewRepository creates a new inventory repository
func NewRepository(database *sql.DB) *Repository {
	return &Repository{
		db:      database,
		queries: db.New(database),
	}
}

// Get returns the full slot grid of an account
func (r *Repository) Get(ctx context.Context, accountID uuid.UUID) (*models.Inventory, error) {
	rows, err := r.queries.ListInventory(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}

	inv := emptyInventory(accountID)
	for _, row := range rows {
		if row.Slot < 0 || int(row.Slot) >= models.InventorySize {
			continue
		}
		item := dbItemToModel(row)
		inv.Slots[row.Slot].Item = &item
	}
	return inv, nil
}

// Add places a new item instance in the first empty slot
func (r *Repository) Add(ctx context.Context, accountID uuid.UUID, itemID string, attributes json.RawMessage, eventFor EventFunc) (models.InventorySlot, error) {
	var placed models.InventorySlot
	err := sqlutil.Run(ctx, r.db, r.queries.WithTx, func(q *db.Queries) error {
		if err := lock(ctx, q, accountID); err != nil {
			return err
		}
		slot, err := firstEmptySlot(ctx, q, accountID)
		if err != nil {
			return err
		}

		row, err := q.InsertItem(ctx, db.InsertItemParams{
			ID:         uuid.New(),
			AccountID:  accountID,
			Slot:       int32(slot),
			ItemID:     itemID,
			Attributes: sqlutil.ToNullRawMessage(attributes),
		})
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}
		item := dbItemToModel(row)
		placed = models.InventorySlot{Index: slot, Item: &item}

		if eventFor == nil {
			return nil
		}
		evt, err := eventFor(placed)
		if err != nil {
			return err
		}
		if evt == nil {
			return nil
		}
		return insertEvent(ctx, q, *evt)
	})
	if err != nil {
		return models.InventorySlot{}, err
	}
	return placed, nil
}

// Move swaps the contents of two slots; moving onto an empty slot is a
// plain move.
func (r *Repository) Move(ctx context.Context, accountID uuid.UUID, from, to int) error {
	return sqlutil.Run(ctx, r.db, r.queries.WithTx, func(q *db.Queries) error {
		if err := lock(ctx, q, accountID); err != nil {
			return err
		}

		src, err := itemInSlot(ctx, q, accountID, from)
		if err != nil {
			return err
		}
		if src == nil {
			return ErrSlotEmpty
		}
		dst, err := itemInSlot(ctx, q, accountID, to)
		if err != nil {
			return err
		}

		// the (account_id, slot) constraint is deferred, so the swap may
		// pass through a duplicate slot inside the transaction
		if err := q.MoveItem(ctx, db.MoveItemParams{ID: src.ID, AccountID: accountID, Slot: int32(to)}); err != nil {
			return fmt.Errorf("failed to move item: %w", err)
		}
		if dst != nil {
			if err := q.MoveItem(ctx, db.MoveItemParams{ID: dst.ID, AccountID: accountID, Slot: int32(from)}); err != nil {
				return fmt.Errorf("failed to move item: %w", err)
			}
		}
		return nil
	})
}

// Sell removes the item in slot and credits priceOf(item) to the account
func (r *Repository) Sell(ctx context.Context, accountID uuid.UUID, slot int, priceOf func(itemID string) (int64, error)) (*Sale, error) {
	var sale Sale
	err := sqlutil.Run(ctx, r.db, r.queries.WithTx, func(q *db.Queries) error {
		if err := lock(ctx, q, accountID); err != nil {
			return err
		}
		row, err := itemInSlot(ctx, q, accountID, slot)
		if err != nil {
			return err
		}
		if row == nil {
			return ErrSlotEmpty
		}
		price, err := priceOf(row.ItemID)
		if err != nil {
			return err
		}

		if err := q.DeleteItem(ctx, row.ID); err != nil {
			return fmt.Errorf("failed to delete item: %w", err)
		}
		balance, err := q.CreditBalance(ctx, db.CreditBalanceParams{Amount: price, ID: accountID})
		if err != nil {
			return fmt.Errorf("failed to credit balance: %w", err)
		}

		sale = Sale{Item: dbItemToModel(*row), Price: price, Balance: balance}
		evt, err := events.New(events.ItemSold, accountID, events.ItemSoldPayload{
			AccountID:  accountID.String(),
			InstanceID: row.ID.String(),
			ItemID:     row.ItemID,
			Price:      price,
			NewBalance: balance,
		})
		if err != nil {
			return err
		}
		return insertEvent(ctx, q, evt)
	})
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// Give moves the item in slot into the recipient's first empty slot
func (r *Repository) Give(ctx context.Context, fromID uuid.UUID, slot int, toID uuid.UUID) (*Trade, error) {
	var trade Trade
	err := sqlutil.Run(ctx, r.db, r.queries.WithTx, func(q *db.Queries) error {
		// lock in a stable order so two opposite trades cannot deadlock
		ids := []uuid.UUID{fromID, toID}
		sort.Slice(ids, func(i, j int) bool { return bytes.Compare(ids[i][:], ids[j][:]) < 0 })
		for _, id := range ids {
			if err := lock(ctx, q, id); err != nil {
				if errors.Is(err, ErrRecipientNotFound) && id == fromID {
					return fmt.Errorf("giver %s not found", fromID)
				}
				return err
			}
		}

		row, err := itemInSlot(ctx, q, fromID, slot)
		if err != nil {
			return err
		}
		if row == nil {
			return ErrSlotEmpty
		}
		toSlot, err := firstEmptySlot(ctx, q, toID)
		if err != nil {
			return err
		}

		if err := q.MoveItem(ctx, db.MoveItemParams{ID: row.ID, AccountID: toID, Slot: int32(toSlot)}); err != nil {
			return fmt.Errorf("failed to transfer item: %w", err)
		}

		trade = Trade{Item: dbItemToModel(*row), ToSlot: toSlot}
		evt, err := events.New(events.ItemTraded, fromID, events.ItemTradedPayload{
			FromAccountID: fromID.String(),
			ToAccountID:   toID.String(),
			InstanceID:    row.ID.String(),
			ItemID:        row.ItemID,
			ToSlot:        toSlot,
		})
		if err != nil {
			return err
		}
		return insertEvent(ctx, q, evt)
	})
	if err != nil {
		return nil, err
	}
	return &trade, nil
}

func lock(ctx context.Context, q *db.Queries, accountID uuid.UUID) error {
	if _, err := q.LockAccount(ctx, accountID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRecipientNotFound
		}
		return fmt.Errorf("failed to lock account: %w", err)
	}
	return nil
}

func itemInSlot(ctx context.Context, q *db.Queries, accountID uuid.UUID, slot int) (*db.InventoryItem, error) {
	row, err := q.GetItemInSlot(ctx, db.GetItemInSlotParams{AccountID: accountID, Slot: int32(slot)})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get item in slot: %w", err)
	}
	return &row, nil
}

func firstEmptySlot(ctx context.Context, q *db.Queries, accountID uuid.UUID) (int, error) {
	used, err := q.ListUsedSlots(ctx, accountID)
	if err != nil {
		return 0, fmt.Errorf("failed to list used slots: %w", err)
	}
	slot := FirstFree(used)
	if slot < 0 {
		return 0, ErrInventoryFull
	}
	return slot, nil
}

// FirstFree returns the lowest slot index not in used, or -1
func FirstFree(used []int32) int {
	taken := make([]bool, models.InventorySize)
	for _, s := range used {
		if s >= 0 && int(s) < models.InventorySize {
			taken[s] = true
		}
	}
	for i, t := range taken {
		if !t {
			return i
		}
	}
	return -1
}

func insertEvent(ctx context.Context, q *db.Queries, evt events.Event) error {
	err := q.InsertWorldEvent(ctx, db.InsertWorldEventParams{
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

func emptyInventory(accountID uuid.UUID) *models.Inventory {
	inv := &models.Inventory{AccountID: accountID, Slots: make([]models.InventorySlot, models.InventorySize)}
	for i := range inv.Slots {
		inv.Slots[i].Index = i
	}
	return inv
}

// dbItemToModel converts a database item row to domain model
func dbItemToModel(row db.InventoryItem) models.ItemInstance {
	return models.ItemInstance{
		ID:         row.ID,
		ItemID:     row.ItemID,
		Attributes: sqlutil.FromNullRawMessage(row.Attributes),
		AcquiredAt: row.AcquiredAt,
	}
}
