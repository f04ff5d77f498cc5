package models

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a signed-in player account
type Account struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Balance     int64     `json:"balance"`
	SkinID      string    `json:"skin_id"`
	CreatedAt   time.Time `json:"created_at"`
}
