package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/overworld/go/clients"
	"github.com/mcdev12/overworld/go/internal/events"
	"github.com/mcdev12/overworld/go/internal/models"
	"github.com/rs/zerolog/log"
)

// AccountsRepository defines what the app layer needs from the repository
type AccountsRepository interface {
	CreateAccount(ctx context.Context, req CreateAccountRequest) (*models.Account, error)
	GetAccount(ctx context.Context, id uuid.UUID) (*models.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	UpdateDisplayName(ctx context.Context, id uuid.UUID, name string) (*models.Account, error)
	AddBalance(ctx context.Context, id uuid.UUID, delta int64, eventFor BalanceEventFunc) (int64, error)
	ListOwnedHouses(ctx context.Context, id uuid.UUID) ([]models.OwnedHouse, error)
}

// TokenVerifier checks Google ID tokens
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*clients.TokenInfo, error)
}

// maxCachedTokens bounds the verified token cache between purges
const maxCachedTokens = 4096

type cachedToken struct {
	email     string
	expiresAt time.Time
}

// App handles account business logic
type App struct {
	repo         AccountsRepository
	verifier     TokenVerifier
	clock        clockwork.Clock
	startBalance int64

	mu     sync.Mutex
	tokens map[string]cachedToken
}

// NewApp creates a new accounts App
func NewApp(repo AccountsRepository, verifier TokenVerifier, clock clockwork.Clock, startBalance int64) *App {
	return &App{
		repo:         repo,
		verifier:     verifier,
		clock:        clock,
		startBalance: startBalance,
		tokens:       make(map[string]cachedToken),
	}
}

// Login verifies a Google ID token and returns the matching account,
// creating it with the starting balance on first sign-in.
func (a *App) Login(ctx context.Context, idToken string) (*models.Account, error) {
	info, err := a.verify(ctx, idToken)
	if err != nil {
		return nil, err
	}

	account, err := a.repo.GetAccountByEmail(ctx, info.Email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	name := displayName(info)
	if account == nil {
		account, err = a.repo.CreateAccount(ctx, CreateAccountRequest{
			Email:       info.Email,
			DisplayName: name,
			Balance:     a.startBalance,
			SkinID:      "0",
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create account: %w", err)
		}
		log.Info().
			Str("account_id", account.ID.String()).
			Str("email", account.Email).
			Int64("balance", account.Balance).
			Msg("created account")
		return account, nil
	}

	if account.DisplayName != name {
		account, err = a.repo.UpdateDisplayName(ctx, account.ID, name)
		if err != nil {
			return nil, fmt.Errorf("failed to update display name: %w", err)
		}
	}

	log.Info().Str("account_id", account.ID.String()).Msg("account signed in")
	return account, nil
}

// Authenticate resolves a bearer token to an existing account
func (a *App) Authenticate(ctx context.Context, idToken string) (*models.Account, error) {
	email, ok := a.cachedEmail(idToken)
	if !ok {
		info, err := a.verify(ctx, idToken)
		if err != nil {
			return nil, err
		}
		email = info.Email
	}

	account, err := a.repo.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: no account for token, sign in first", ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// GetAccount retrieves an account by ID
func (a *App) GetAccount(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	account, err := a.repo.GetAccount(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// GetProfile returns an account with its owned houses
func (a *App) GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	account, err := a.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	houses, err := a.repo.ListOwnedHouses(ctx, id)
	if err != nil {
		return nil, err
	}
	if houses == nil {
		houses = []models.OwnedHouse{}
	}
	return &Profile{Account: account, Houses: houses}, nil
}

// GrantMoney credits (or debits, for negative amounts) an account and
// records a BalanceGranted event with the change.
func (a *App) GrantMoney(ctx context.Context, id uuid.UUID, amount int64) (int64, error) {
	balance, err := a.repo.AddBalance(ctx, id, amount, func(balance int64) (events.Event, error) {
		return events.New(events.BalanceGranted, id, events.BalanceGrantedPayload{
			AccountID:  id.String(),
			Amount:     amount,
			NewBalance: balance,
		})
	})
	if err != nil {
		return 0, err
	}
	log.Info().
		Str("account_id", id.String()).
		Int64("amount", amount).
		Int64("balance", balance).
		Msg("granted money")
	return balance, nil
}

func (a *App) verify(ctx context.Context, idToken string) (*clients.TokenInfo, error) {
	info, err := a.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		if errors.Is(err, clients.ErrInvalidToken) ||
			errors.Is(err, clients.ErrAudienceMismatch) ||
			errors.Is(err, clients.ErrEmailNotVerified) {
			return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
		}
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}
	if !info.ExpiresAt.After(a.clock.Now()) {
		return nil, fmt.Errorf("%w: token expired", ErrUnauthorized)
	}
	a.remember(idToken, info)
	return info, nil
}

func (a *App) cachedEmail(idToken string) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	entry, ok := a.tokens[idToken]
	if !ok {
		return "", false
	}
	if !entry.expiresAt.After(a.clock.Now()) {
		delete(a.tokens, idToken)
		return "", false
	}
	return entry.email, true
}

func (a *App) remember(idToken string, info *clients.TokenInfo) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.tokens) >= maxCachedTokens {
		now := a.clock.Now()
		for tok, entry := range a.tokens {
			if !entry.expiresAt.After(now) {
				delete(a.tokens, tok)
			}
		}
		if len(a.tokens) >= maxCachedTokens {
			a.tokens = make(map[string]cachedToken)
		}
	}
	a.tokens[idToken] = cachedToken{email: info.Email, expiresAt: info.ExpiresAt}
}

func displayName(info *clients.TokenInfo) string {
	if name := strings.TrimSpace(info.Name); name != "" {
		return name
	}
	if at := strings.Index(info.Email, "@"); at > 0 {
		return info.Email[:at]
	}
	return info.Email
}
