package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// InventorySize is the number of slots a player carries (4 rows x 5 columns)
const (
	InventoryRows = 4
	InventoryCols = 5
	InventorySize = InventoryRows * InventoryCols
)

// Item is a catalog entry
type Item struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	SellPrice int64  `json:"sell_price" yaml:"sell_price"`
}

// ItemInstance is a concrete item held in an inventory slot
type ItemInstance struct {
	ID         uuid.UUID       `json:"id"`
	ItemID     string          `json:"item_id"`
	Attributes json.RawMessage `json:"attributes,omitempty"`
	AcquiredAt time.Time       `json:"acquired_at"`
}

// InventorySlot is one cell of an inventory grid
type InventorySlot struct {
	Index int           `json:"index"`
	Item  *ItemInstance `json:"item"`
}

// Inventory is the full slot grid of an account
type Inventory struct {
	AccountID uuid.UUID       `json:"account_id"`
	Slots     []InventorySlot `json:"slots"`
}

// FirstEmpty returns the lowest empty slot index, or -1 when full
func (inv *Inventory) FirstEmpty() int {
	for _, s := range inv.Slots {
		if s.Item == nil {
			return s.Index
		}
	}
	return -1
}
