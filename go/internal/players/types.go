package players

import (
	"errors"
	"time"

	"github.com/mcdev12/overworld/go/internal/models"
)

var (
	ErrOutOfBounds   = errors.New("position is outside the map")
	ErrChatTooLong   = errors.New("chat message too long")
	ErrSkinNotOwned  = errors.New("skin not owned")
	ErrNotPresent    = errors.New("player is not in the world")
	ErrEmptyUpdate   = errors.New("state update has no fields")
	ErrInvalidNumber = errors.New("coordinate is not a finite number")
)

const (
	// MaxChatRunes caps a single chat line
	MaxChatRunes = 256

	DefaultPresenceTimeout = 30 * time.Second
	DefaultFlushInterval   = 5 * time.Second
)

// StateUpdate is what a client posts every poll tick. Absent fields are
// left untouched; present fields overwrite the stored value.
type StateUpdate struct {
	X    *float64 `json:"x,omitempty"`
	Y    *float64 `json:"y,omitempty"`
	Skin *string  `json:"skin,omitempty"`
	Chat *string  `json:"chat,omitempty"`
}

// StateResponse echoes the stored state back to the poster
type StateResponse struct {
	Player   models.PlayerState `json:"player"`
	Bubble   string             `json:"bubble,omitempty"`
	Teleport *models.Position   `json:"teleport,omitempty"`
}

// Settings tunes presence and chat handling
type Settings struct {
	Spawn           models.Position
	PresenceTimeout time.Duration
	ChatTTL         time.Duration
	// FreeSkins can be worn without buying them first
	FreeSkins []string
}
