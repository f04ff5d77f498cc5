package models

import (
	"time"

	"github.com/google/uuid"
)

// SkinPrice is the price of a purchasable skin
type SkinPrice struct {
	SkinID string `json:"skin_id" yaml:"id"`
	Price  int64  `json:"price" yaml:"price"`
}

// HousePrice is the price of a purchasable house
type HousePrice struct {
	HouseID string `json:"house_id" yaml:"id"`
	Price   int64  `json:"price" yaml:"price"`
}

// OwnedHouse records a house bought by an account
type OwnedHouse struct {
	AccountID   uuid.UUID `json:"account_id"`
	HouseID     string    `json:"house_id"`
	PricePaid   int64     `json:"price_paid"`
	PurchasedAt time.Time `json:"purchased_at"`
}

// PurchaseResult is the outcome of a shop purchase
type PurchaseResult struct {
	Success    bool   `json:"success"`
	NewBalance int64  `json:"newBalance"`
	Message    string `json:"message,omitempty"`
}
