package accounts

import (
	"errors"

	"github.com/mcdev12/overworld/go/internal/events"
	"github.com/mcdev12/overworld/go/internal/models"
)

var (
	ErrNotFound          = errors.New("account not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// BalanceEventFunc builds the outbox event for a balance change from the
// new balance. It runs inside the updating transaction.
type BalanceEventFunc func(balance int64) (events.Event, error)

// CreateAccountRequest represents the data needed to create a new account
type CreateAccountRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Balance     int64  `json:"balance"`
	SkinID      string `json:"skin_id"`
}

// GoogleLoginRequest is the body posted by the sign-in button
type GoogleLoginRequest struct {
	Token string `json:"token"`
}

// LoginResponse is returned after a successful sign-in
type LoginResponse struct {
	Account *models.Account `json:"account"`
}

// Profile is an account with everything it owns
type Profile struct {
	Account *models.Account     `json:"account"`
	Houses  []models.OwnedHouse `json:"houses"`
}
