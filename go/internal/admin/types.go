package admin

import (
	"errors"

	"github.com/mcdev12/overworld/go/internal/models"
)

// ServiceName is the fully qualified RPC service name
const ServiceName = "overworld.admin.v1.AdminService"

// Procedure paths, in connect's /<service>/<method> form
const (
	GrantMoneyProcedure    = "/" + ServiceName + "/GrantMoney"
	SetSkinPriceProcedure  = "/" + ServiceName + "/SetSkinPrice"
	SetHousePriceProcedure = "/" + ServiceName + "/SetHousePrice"
	ListOnlineProcedure    = "/" + ServiceName + "/ListOnline"
)

// TokenHeader carries the shared admin secret
const TokenHeader = "X-Admin-Token"

var (
	ErrInvalidAmount = errors.New("amount must not be zero")
	ErrBadToken      = errors.New("invalid admin token")
)

type GrantMoneyRequest struct {
	AccountID string `json:"accountId"`
	Amount    int64  `json:"amount"`
}

type GrantMoneyResponse struct {
	NewBalance int64 `json:"newBalance"`
}

type SetSkinPriceRequest struct {
	SkinID string `json:"skinId"`
	Price  int64  `json:"price"`
}

type SetHousePriceRequest struct {
	HouseID string `json:"houseId"`
	Price   int64  `json:"price"`
}

type SetPriceResponse struct{}

type ListOnlineRequest struct{}

type ListOnlineResponse struct {
	Count   int                  `json:"count"`
	Players []models.PlayerState `json:"players"`
}
