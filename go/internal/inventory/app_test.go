package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/overworld/go/internal/events"
	"github.com/mcdev12/overworld/go/internal/models"
)

var testItems = []models.Item{
	{ID: "apple", Name: "Apple", SellPrice: 2},
	{ID: "gem", Name: "Gem", SellPrice: 60},
}

func TestFirstFree(t *testing.T) {
	tests := []struct {
		name string
		used []int32
		want int
	}{
		{"empty", nil, 0},
		{"gap", []int32{0, 1, 3}, 2},
		{"unordered", []int32{2, 0, 1}, 3},
		{"ignores out of range", []int32{0, 42, -1}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FirstFree(tt.used); got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}

	full := make([]int32, models.InventorySize)
	for i := range full {
		full[i] = int32(i)
	}
	if got := FirstFree(full); got != -1 {
		t.Fatalf("expected -1 for a full inventory, got %d", got)
	}
}

func TestAddFillsLowestSlotUntilFull(t *testing.T) {
	id := uuid.New()
	app := NewApp(newMemRepo(id), testItems)
	ctx := context.Background()

	for i := 0; i < models.InventorySize; i++ {
		slot, err := app.Add(ctx, id, "apple", nil)
		if err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
		if slot.Index != i {
			t.Fatalf("expected slot %d, got %d", i, slot.Index)
		}
	}
	if _, err := app.Add(ctx, id, "apple", nil); !errors.Is(err, ErrInventoryFull) {
		t.Fatalf("expected ErrInventoryFull, got %v", err)
	}
	if _, err := app.Add(ctx, id, "sword", nil); !errors.Is(err, ErrUnknownItem) {
		t.Fatalf("expected ErrUnknownItem, got %v", err)
	}
}

func TestAddWritesEvent(t *testing.T) {
	id := uuid.New()
	repo := newMemRepo(id)
	app := NewApp(repo, testItems)

	_, err := app.Add(context.Background(), id, "gem", func(slot models.InventorySlot) (*events.Event, error) {
		evt, err := events.New(events.ChestOpened, id, events.ChestOpenedPayload{ItemID: slot.Item.ItemID, Slot: slot.Index})
		return &evt, err
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(repo.events) != 1 || repo.events[0].Type != events.ChestOpened {
		t.Fatalf("expected one ChestOpened event, got %+v", repo.events)
	}
}

func TestMoveSwapsSlots(t *testing.T) {
	id := uuid.New()
	app := NewApp(newMemRepo(id), testItems)
	ctx := context.Background()

	if _, err := app.Add(ctx, id, "apple", nil); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := app.Add(ctx, id, "gem", nil); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := app.Move(ctx, id, 0, 1); err != nil {
		t.Fatalf("move: %v", err)
	}
	slots, err := app.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if slots[0].Item.ItemID != "gem" || slots[1].Item.ItemID != "apple" {
		t.Fatalf("expected swapped slots, got %s and %s", slots[0].Item.ItemID, slots[1].Item.ItemID)
	}
	if slots[0].Name != "Gem" || slots[0].Price != 60 {
		t.Fatalf("expected catalog fields resolved, got %+v", slots[0])
	}

	if err := app.Move(ctx, id, 1, 19); err != nil {
		t.Fatalf("move: %v", err)
	}
	slots, _ = app.Get(ctx, id)
	if slots[1].Item != nil || slots[19].Item == nil {
		t.Fatalf("expected move onto empty slot")
	}

	if err := app.Move(ctx, id, 0, models.InventorySize); !errors.Is(err, ErrInvalidSlot) {
		t.Fatalf("expected ErrInvalidSlot, got %v", err)
	}
	if err := app.Move(ctx, id, 5, 6); !errors.Is(err, ErrSlotEmpty) {
		t.Fatalf("expected ErrSlotEmpty, got %v", err)
	}
}

func TestSell(t *testing.T) {
	id := uuid.New()
	repo := newMemRepo(id)
	repo.balances[id] = 10
	app := NewApp(repo, testItems)
	ctx := context.Background()
	account := &models.Account{ID: id, Balance: 10}

	if _, err := app.Add(ctx, id, "gem", nil); err != nil {
		t.Fatalf("add: %v", err)
	}
	result, err := app.Sell(ctx, account, 0)
	if err != nil {
		t.Fatalf("sell: %v", err)
	}
	if !result.Success || result.NewBalance != 70 {
		t.Fatalf("expected success with 70, got %+v", result)
	}

	result, err = app.Sell(ctx, account, 0)
	if err != nil {
		t.Fatalf("sell: %v", err)
	}
	if result.Success || result.Message != "slot is empty" {
		t.Fatalf("expected empty slot failure, got %+v", result)
	}
}

func TestGive(t *testing.T) {
	ada, bob := uuid.New(), uuid.New()
	repo := newMemRepo(ada, bob)
	app := NewApp(repo, testItems)
	ctx := context.Background()
	account := &models.Account{ID: ada}

	if _, err := app.Add(ctx, ada, "gem", nil); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := app.Add(ctx, bob, "apple", nil); err != nil {
		t.Fatalf("add: %v", err)
	}

	result, err := app.Give(ctx, account, 0, bob)
	if err != nil {
		t.Fatalf("give: %v", err)
	}
	if !result.Success || result.ToSlot != 1 {
		t.Fatalf("expected item in bob's slot 1, got %+v", result)
	}

	tests := []struct {
		name string
		to   uuid.UUID
		want string
	}{
		{"self", ada, ErrSelfTrade.Error()},
		{"empty slot", bob, "slot is empty"},
		{"unknown recipient", uuid.New(), "recipient not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := app.Give(ctx, account, 0, tt.to)
			if err != nil {
				t.Fatalf("give: %v", err)
			}
			if result.Success || result.Message != tt.want {
				t.Fatalf("expected %q, got %+v", tt.want, result)
			}
		})
	}
}

func TestGiveToFullInventory(t *testing.T) {
	ada, bob := uuid.New(), uuid.New()
	app := NewApp(newMemRepo(ada, bob), testItems)
	ctx := context.Background()

	if _, err := app.Add(ctx, ada, "gem", nil); err != nil {
		t.Fatalf("add: %v", err)
	}
	for i := 0; i < models.InventorySize; i++ {
		if _, err := app.Add(ctx, bob, "apple", nil); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	result, err := app.Give(ctx, &models.Account{ID: ada}, 0, bob)
	if err != nil {
		t.Fatalf("give: %v", err)
	}
	if result.Success || result.Message != "recipient inventory is full" {
		t.Fatalf("expected full recipient failure, got %+v", result)
	}
	slots, _ := app.Get(ctx, ada)
	if slots[0].Item == nil {
		t.Fatalf("expected item to stay with the giver")
	}
}
