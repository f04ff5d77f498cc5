package chests

import (
	"errors"

	"github.com/mcdev12/overworld/go/internal/models"
)

var (
	ErrChestNotFound = errors.New("chest not found")
	ErrEmptyLoot     = errors.New("chest has no loot")
)

// DefaultReach is how close a player must stand to open a chest, in pixels
const DefaultReach = 150

// ChestView is a chest as seen by one player
type ChestView struct {
	ID         string          `json:"id"`
	Position   models.Position `json:"position"`
	ReadyInSec int             `json:"ready_in_sec"`
}

// OpenResult is returned after trying to open a chest
type OpenResult struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message,omitempty"`
	Slot       int                  `json:"slot,omitempty"`
	Item       *models.ItemInstance `json:"item,omitempty"`
	ItemName   string               `json:"item_name,omitempty"`
	ReadyInSec int                  `json:"ready_in_sec,omitempty"`
}
