package chests

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/mcdev12/overworld/go/internal/accounts"
	"github.com/mcdev12/overworld/go/internal/web"
	"github.com/rs/zerolog/log"
)

// ChestsApp defines what the service layer needs from the chests application
type ChestsApp interface {
	List(accountID uuid.UUID) []ChestView
	Open(ctx context.Context, accountID uuid.UUID, chestID string) (*OpenResult, error)
}

// Service exposes chests over HTTP
type Service struct {
	app  ChestsApp
	auth accounts.Middleware
}

// NewService creates a new chests HTTP service
func NewService(app ChestsApp, auth accounts.Middleware) *Service {
	return &Service{
		app:  app,
		auth: auth,
	}
}

// RegisterRoutes registers the chest routes with an HTTP mux
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("GET /chests", s.auth(http.HandlerFunc(s.List)))
	mux.Handle("POST /chests/{id}/open", s.auth(http.HandlerFunc(s.Open)))
}

// List returns every chest with the caller's cooldowns
func (s *Service) List(w http.ResponseWriter, r *http.Request) {
	account, _ := accounts.AccountFromContext(r.Context())
	web.WriteJSON(w, http.StatusOK, s.app.List(account.ID))
}

// Open opens a chest for the caller
func (s *Service) Open(w http.ResponseWriter, r *http.Request) {
	account, _ := accounts.AccountFromContext(r.Context())

	result, err := s.app.Open(r.Context(), account.ID, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, ErrChestNotFound) {
			web.Error(w, http.StatusNotFound, err.Error())
			return
		}
		log.Error().Err(err).Str("account_id", account.ID.String()).Msg("failed to open chest")
		web.Error(w, http.StatusInternalServerError, "failed to open chest")
		return
	}
	web.WriteJSON(w, http.StatusOK, result)
}
