package inventory

import (
	"errors"

	"github.com/google/uuid"
	"github.com/mcdev12/overworld/go/internal/events"
	"github.com/mcdev12/overworld/go/internal/models"
)

var (
	ErrInventoryFull     = errors.New("inventory is full")
	ErrSlotEmpty         = errors.New("slot is empty")
	ErrInvalidSlot       = errors.New("slot out of range")
	ErrUnknownItem       = errors.New("unknown item")
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrSelfTrade         = errors.New("cannot give an item to yourself")
)

// EventFunc builds the outbox event for an item placed in a slot. It runs
// inside the placing transaction; returning nil writes no event.
type EventFunc func(slot models.InventorySlot) (*events.Event, error)

// MoveRequest swaps the contents of two slots
type MoveRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// SellRequest sells the item in a slot
type SellRequest struct {
	Slot int `json:"slot"`
}

// GiveRequest hands the item in a slot to another account
type GiveRequest struct {
	Slot        int       `json:"slot"`
	ToAccountID uuid.UUID `json:"toAccountId"`
}

// Sale is the stored outcome of selling an item
type Sale struct {
	Item    models.ItemInstance
	Price   int64
	Balance int64
}

// Trade is the stored outcome of giving an item away
type Trade struct {
	Item   models.ItemInstance
	ToSlot int
}

// GiveResult is returned to the giver
type GiveResult struct {
	Success bool   `json:"success"`
	ToSlot  int    `json:"toSlot"`
	Message string `json:"message,omitempty"`
}

// SlotView is an inventory slot with its catalog entry resolved
type SlotView struct {
	Index int                  `json:"index"`
	Item  *models.ItemInstance `json:"item"`
	Name  string               `json:"name,omitempty"`
	Price int64                `json:"sell_price,omitempty"`
}
