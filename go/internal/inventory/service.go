package inventory

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/mcdev12/overworld/go/internal/accounts"
	"github.com/mcdev12/overworld/go/internal/models"
	"github.com/mcdev12/overworld/go/internal/web"
	"github.com/rs/zerolog/log"
)

// InventoryApp defines what the service layer needs from the inventory application
type InventoryApp interface {
	Catalog() []models.Item
	Get(ctx context.Context, accountID uuid.UUID) ([]SlotView, error)
	Move(ctx context.Context, accountID uuid.UUID, from, to int) error
	Sell(ctx context.Context, account *models.Account, slot int) (*models.PurchaseResult, error)
	Give(ctx context.Context, account *models.Account, slot int, toID uuid.UUID) (*GiveResult, error)
}

// Service exposes inventories over HTTP
type Service struct {
	app  InventoryApp
	auth accounts.Middleware
}

// NewService creates a new inventory HTTP service
func NewService(app InventoryApp, auth accounts.Middleware) *Service {
	return &Service{
		app:  app,
		auth: auth,
	}
}

// RegisterRoutes registers the inventory routes with an HTTP mux
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /items", s.Items)
	mux.Handle("GET /inventory", s.auth(http.HandlerFunc(s.Inventory)))
	mux.Handle("POST /inventory/move", s.auth(http.HandlerFunc(s.Move)))
	mux.Handle("POST /inventory/sell", s.auth(http.HandlerFunc(s.Sell)))
	mux.Handle("POST /inventory/give", s.auth(http.HandlerFunc(s.Give)))
}

// Items lists the item catalog
func (s *Service) Items(w http.ResponseWriter, r *http.Request) {
	web.WriteJSON(w, http.StatusOK, s.app.Catalog())
}

// Inventory returns the caller's slots
func (s *Service) Inventory(w http.ResponseWriter, r *http.Request) {
	account, _ := accounts.AccountFromContext(r.Context())

	slots, err := s.app.Get(r.Context(), account.ID)
	if err != nil {
		log.Error().Err(err).Str("account_id", account.ID.String()).Msg("failed to load inventory")
		web.Error(w, http.StatusInternalServerError, "failed to load inventory")
		return
	}
	web.WriteJSON(w, http.StatusOK, slots)
}

// Move swaps two of the caller's slots
func (s *Service) Move(w http.ResponseWriter, r *http.Request) {
	account, _ := accounts.AccountFromContext(r.Context())

	var req MoveRequest
	if err := web.DecodeJSON(w, r, &req); err != nil {
		web.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.app.Move(r.Context(), account.ID, req.From, req.To); err != nil {
		switch {
		case errors.Is(err, ErrInvalidSlot), errors.Is(err, ErrSlotEmpty):
			web.Error(w, http.StatusBadRequest, err.Error())
		default:
			log.Error().Err(err).Str("account_id", account.ID.String()).Msg("failed to move item")
			web.Error(w, http.StatusInternalServerError, "failed to move item")
		}
		return
	}

	slots, err := s.app.Get(r.Context(), account.ID)
	if err != nil {
		log.Error().Err(err).Str("account_id", account.ID.String()).Msg("failed to load inventory")
		web.Error(w, http.StatusInternalServerError, "failed to load inventory")
		return
	}
	web.WriteJSON(w, http.StatusOK, slots)
}

// Sell sells one of the caller's items
func (s *Service) Sell(w http.ResponseWriter, r *http.Request) {
	account, _ := accounts.AccountFromContext(r.Context())

	var req SellRequest
	if err := web.DecodeJSON(w, r, &req); err != nil {
		web.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.app.Sell(r.Context(), account, req.Slot)
	if err != nil {
		if errors.Is(err, ErrInvalidSlot) {
			web.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Error().Err(err).Str("account_id", account.ID.String()).Msg("failed to sell item")
		web.Error(w, http.StatusInternalServerError, "failed to sell item")
		return
	}
	web.WriteJSON(w, http.StatusOK, result)
}

// Give hands one of the caller's items to another player
func (s *Service) Give(w http.ResponseWriter, r *http.Request) {
	account, _ := accounts.AccountFromContext(r.Context())

	var req GiveRequest
	if err := web.DecodeJSON(w, r, &req); err != nil {
		web.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ToAccountID == uuid.Nil {
		web.Error(w, http.StatusBadRequest, "toAccountId is required")
		return
	}

	result, err := s.app.Give(r.Context(), account, req.Slot, req.ToAccountID)
	if err != nil {
		if errors.Is(err, ErrInvalidSlot) {
			web.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Error().Err(err).Str("account_id", account.ID.String()).Msg("failed to give item")
		web.Error(w, http.StatusInternalServerError, "failed to give item")
		return
	}
	web.WriteJSON(w, http.StatusOK, result)
}
