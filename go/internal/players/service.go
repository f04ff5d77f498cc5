package players

import (
	"context"
	"errors"
	"net/http"

	"github.com/mcdev12/overworld/go/internal/accounts"
	"github.com/mcdev12/overworld/go/internal/models"
	"github.com/mcdev12/overworld/go/internal/tilemap"
	"github.com/mcdev12/overworld/go/internal/web"
	"github.com/rs/zerolog/log"
)

// PlayersApp defines what the service layer needs from the players application
type PlayersApp interface {
	UpdateState(ctx context.Context, account *models.Account, upd StateUpdate) (*StateResponse, error)
	ListPlayers(ctx context.Context) []models.PlayerState
}

// MapResponse is the world map as served to clients
type MapResponse struct {
	TileSize int     `json:"tile_size"`
	Cols     int     `json:"cols"`
	Rows     int     `json:"rows"`
	Tiles    [][]int `json:"tiles"`
}

// Service exposes the poll endpoints over HTTP
type Service struct {
	app   PlayersApp
	world *tilemap.Map
	auth  accounts.Middleware
}

// NewService creates a new players HTTP service
func NewService(app PlayersApp, world *tilemap.Map, auth accounts.Middleware) *Service {
	return &Service{
		app:   app,
		world: world,
		auth:  auth,
	}
}

// RegisterRoutes registers the player routes with an HTTP mux
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("POST /player-state", s.auth(http.HandlerFunc(s.PostState)))
	mux.HandleFunc("GET /players", s.ListPlayers)
	mux.HandleFunc("GET /map", s.GetMap)
}

// PostState stores the caller's latest local state
func (s *Service) PostState(w http.ResponseWriter, r *http.Request) {
	account, _ := accounts.AccountFromContext(r.Context())

	var upd StateUpdate
	if err := web.DecodeJSON(w, r, &upd); err != nil {
		web.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.app.UpdateState(r.Context(), account, upd)
	if err != nil {
		switch {
		case errors.Is(err, ErrOutOfBounds),
			errors.Is(err, ErrChatTooLong),
			errors.Is(err, ErrEmptyUpdate),
			errors.Is(err, ErrInvalidNumber):
			web.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrSkinNotOwned):
			web.Error(w, http.StatusForbidden, err.Error())
		default:
			log.Error().Err(err).Str("account_id", account.ID.String()).Msg("failed to update player state")
			web.Error(w, http.StatusInternalServerError, "failed to update state")
		}
		return
	}

	web.WriteJSON(w, http.StatusOK, resp)
}

// ListPlayers returns everyone currently in the world
func (s *Service) ListPlayers(w http.ResponseWriter, r *http.Request) {
	web.WriteJSON(w, http.StatusOK, s.app.ListPlayers(r.Context()))
}

// GetMap returns the tile grid
func (s *Service) GetMap(w http.ResponseWriter, r *http.Request) {
	web.WriteJSON(w, http.StatusOK, MapResponse{
		TileSize: tilemap.TileSize,
		Cols:     s.world.Cols(),
		Rows:     s.world.Rows(),
		Tiles:    s.world.Tiles(),
	})
}
