package shop

import (
	"errors"
)

var (
	ErrUnknownSkin       = errors.New("unknown skin")
	ErrUnknownHouse      = errors.New("unknown house")
	ErrAlreadyOwned      = errors.New("already owned")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidPrice      = errors.New("price must not be negative")
	ErrAccountNotFound   = errors.New("account not found")
)

// BuySkinRequest is posted by the skin carousel
type BuySkinRequest struct {
	SkinID string `json:"skinId"`
}

// BuyHouseRequest is posted by the house carousel
type BuyHouseRequest struct {
	HouseID string `json:"houseId"`
}

// SkinPurchase is the stored outcome of a skin purchase
type SkinPurchase struct {
	SkinID       string
	Price        int64
	Balance      int64
	AlreadyOwned bool
}

// HousePurchase is the stored outcome of a house purchase
type HousePurchase struct {
	HouseID string
	Price   int64
	Balance int64
}
