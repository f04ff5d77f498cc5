package models

import (
	"time"

	"github.com/google/uuid"
)

// Position is a point on the world map in pixels
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PlayerState is the live, polled state of a connected player.
// Every field is overwritten wholesale by the owning client.
type PlayerState struct {
	AccountID uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Position  Position  `json:"position"`
	SkinID    string    `json:"skin_id"`
	Chat      string    `json:"chat"`
	ChatAt    time.Time `json:"-"`
	LastSeen  time.Time `json:"-"`
}

// SavedPosition is the last persisted location of an account
type SavedPosition struct {
	AccountID uuid.UUID `json:"account_id"`
	Position  Position  `json:"position"`
	UpdatedAt time.Time `json:"updated_at"`
}
