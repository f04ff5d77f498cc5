package shop

import (
	"context"
	"net/http"

	"github.com/mcdev12/overworld/go/internal/accounts"
	"github.com/mcdev12/overworld/go/internal/models"
	"github.com/mcdev12/overworld/go/internal/web"
	"github.com/rs/zerolog/log"
)

// ShopApp defines what the service layer needs from the shop application
type ShopApp interface {
	ListSkinPrices(ctx context.Context) ([]models.SkinPrice, error)
	ListHousePrices(ctx context.Context) ([]models.HousePrice, error)
	BuySkin(ctx context.Context, account *models.Account, skinID string) (*models.PurchaseResult, error)
	BuyHouse(ctx context.Context, account *models.Account, houseID string) (*models.PurchaseResult, error)
}

// Service exposes the shop over HTTP
type Service struct {
	app  ShopApp
	auth accounts.Middleware
}

// NewService creates a new shop HTTP service
func NewService(app ShopApp, auth accounts.Middleware) *Service {
	return &Service{
		app:  app,
		auth: auth,
	}
}

// RegisterRoutes registers the shop routes with an HTTP mux
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /skin-prices", s.SkinPrices)
	mux.HandleFunc("GET /house-prices", s.HousePrices)
	mux.Handle("POST /buy-skin", s.auth(http.HandlerFunc(s.BuySkin)))
	mux.Handle("POST /buy-house", s.auth(http.HandlerFunc(s.BuyHouse)))
}

// SkinPrices lists skin prices
func (s *Service) SkinPrices(w http.ResponseWriter, r *http.Request) {
	prices, err := s.app.ListSkinPrices(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list skin prices")
		web.Error(w, http.StatusInternalServerError, "failed to list skin prices")
		return
	}
	if prices == nil {
		prices = []models.SkinPrice{}
	}
	web.WriteJSON(w, http.StatusOK, prices)
}

// HousePrices lists house prices
func (s *Service) HousePrices(w http.ResponseWriter, r *http.Request) {
	prices, err := s.app.ListHousePrices(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list house prices")
		web.Error(w, http.StatusInternalServerError, "failed to list house prices")
		return
	}
	if prices == nil {
		prices = []models.HousePrice{}
	}
	web.WriteJSON(w, http.StatusOK, prices)
}

// BuySkin buys or equips a skin for the caller
func (s *Service) BuySkin(w http.ResponseWriter, r *http.Request) {
	account, _ := accounts.AccountFromContext(r.Context())

	var req BuySkinRequest
	if err := web.DecodeJSON(w, r, &req); err != nil {
		web.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.SkinID == "" {
		web.Error(w, http.StatusBadRequest, "skinId is required")
		return
	}

	result, err := s.app.BuySkin(r.Context(), account, req.SkinID)
	if err != nil {
		log.Error().Err(err).Str("account_id", account.ID.String()).Msg("skin purchase failed")
		web.Error(w, http.StatusInternalServerError, "purchase failed")
		return
	}
	web.WriteJSON(w, http.StatusOK, result)
}

// BuyHouse buys a house for the caller
func (s *Service) BuyHouse(w http.ResponseWriter, r *http.Request) {
	account, _ := accounts.AccountFromContext(r.Context())

	var req BuyHouseRequest
	if err := web.DecodeJSON(w, r, &req); err != nil {
		web.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.HouseID == "" {
		web.Error(w, http.StatusBadRequest, "houseId is required")
		return
	}

	result, err := s.app.BuyHouse(r.Context(), account, req.HouseID)
	if err != nil {
		log.Error().Err(err).Str("account_id", account.ID.String()).Msg("house purchase failed")
		web.Error(w, http.StatusInternalServerError, "purchase failed")
		return
	}
	web.WriteJSON(w, http.StatusOK, result)
}
