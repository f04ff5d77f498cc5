package accounts

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/mcdev12/overworld/go/internal/models"
	"github.com/mcdev12/overworld/go/internal/web"
	"github.com/rs/zerolog/log"
)

// AccountsApp defines what the service layer needs from the accounts application
type AccountsApp interface {
	Login(ctx context.Context, idToken string) (*models.Account, error)
	Authenticate(ctx context.Context, idToken string) (*models.Account, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error)
}

// Middleware wraps handlers that need an authenticated account
type Middleware func(http.Handler) http.Handler

// Service exposes sign-in and profile endpoints over HTTP
type Service struct {
	app AccountsApp
}

// NewService creates a new accounts HTTP service
func NewService(app AccountsApp) *Service {
	return &Service{
		app: app,
	}
}

// RegisterRoutes registers the account routes with an HTTP mux
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /auth/google", s.GoogleLogin)
	mux.Handle("GET /me", s.RequireAuth(http.HandlerFunc(s.Me)))
}

// GoogleLogin exchanges a Google ID token for an account
func (s *Service) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req GoogleLoginRequest
	if err := web.DecodeJSON(w, r, &req); err != nil {
		web.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	account, err := s.app.Login(r.Context(), req.Token)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			web.Error(w, http.StatusUnauthorized, "invalid token")
			return
		}
		log.Error().Err(err).Msg("google login failed")
		web.Error(w, http.StatusInternalServerError, "login failed")
		return
	}

	web.WriteJSON(w, http.StatusOK, LoginResponse{Account: account})
}

// Me returns the caller's profile
func (s *Service) Me(w http.ResponseWriter, r *http.Request) {
	account, _ := AccountFromContext(r.Context())

	profile, err := s.app.GetProfile(r.Context(), account.ID)
	if err != nil {
		log.Error().Err(err).Str("account_id", account.ID.String()).Msg("failed to load profile")
		web.Error(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	web.WriteJSON(w, http.StatusOK, profile)
}

// RequireAuth resolves "Authorization: Bearer <id token>" to an account
func (s *Service) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			web.Error(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		account, err := s.app.Authenticate(r.Context(), token)
		if err != nil {
			if errors.Is(err, ErrUnauthorized) {
				web.Error(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			log.Error().Err(err).Msg("authentication failed")
			web.Error(w, http.StatusInternalServerError, "authentication failed")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithAccount(r.Context(), account)))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
