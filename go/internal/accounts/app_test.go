package accounts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/overworld/go/clients"
	"github.com/mcdev12/overworld/go/internal/events"
)

func newTestApp(t *testing.T) (*App, *fakeRepo, *fakeVerifier, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	verifier := &fakeVerifier{tokens: map[string]*clients.TokenInfo{
		"good": {
			Subject:   "sub-1",
			Email:     "ada@example.com",
			Name:      "Ada",
			ExpiresAt: clock.Now().Add(time.Hour),
		},
		"stale": {
			Subject:   "sub-2",
			Email:     "old@example.com",
			ExpiresAt: clock.Now().Add(-time.Minute),
		},
	}}
	repo := newFakeRepo()
	return NewApp(repo, verifier, clock, 100), repo, verifier, clock
}

func TestLoginCreatesAccountWithStartBalance(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	account, err := app.Login(context.Background(), "good")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if account.Email != "ada@example.com" {
		t.Fatalf("expected email ada@example.com, got %q", account.Email)
	}
	if account.Balance != 100 {
		t.Fatalf("expected start balance 100, got %d", account.Balance)
	}
	if account.DisplayName != "Ada" {
		t.Fatalf("expected display name Ada, got %q", account.DisplayName)
	}

	again, err := app.Login(context.Background(), "good")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if again.ID != account.ID {
		t.Fatalf("expected the same account on second login, got %s and %s", account.ID, again.ID)
	}
}

func TestLoginRejectsBadTokens(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	for _, token := range []string{"unknown", "stale"} {
		if _, err := app.Login(context.Background(), token); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("token %q: expected ErrUnauthorized, got %v", token, err)
		}
	}
}

func TestLoginRefreshesDisplayName(t *testing.T) {
	app, repo, verifier, _ := newTestApp(t)

	account, err := app.Login(context.Background(), "good")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	verifier.tokens["good"].Name = "Ada L."

	if _, err := app.Login(context.Background(), "good"); err != nil {
		t.Fatalf("login: %v", err)
	}
	stored, _ := repo.GetAccount(context.Background(), account.ID)
	if stored.DisplayName != "Ada L." {
		t.Fatalf("expected renamed account, got %q", stored.DisplayName)
	}
}

func TestAuthenticateCachesUntilExpiry(t *testing.T) {
	app, _, verifier, clock := newTestApp(t)

	if _, err := app.Login(context.Background(), "good"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := app.Authenticate(context.Background(), "good"); err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got := verifier.callCount(); got != 1 {
		t.Fatalf("expected cached token to skip verification, got %d calls", got)
	}

	clock.Advance(2 * time.Hour)
	if _, err := app.Authenticate(context.Background(), "good"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}
	if got := verifier.callCount(); got != 2 {
		t.Fatalf("expected re-verification after expiry, got %d calls", got)
	}
}

func TestAuthenticateRequiresAccount(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	if _, err := app.Authenticate(context.Background(), "good"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized before first sign-in, got %v", err)
	}
}

func TestGrantMoneyNeverNegative(t *testing.T) {
	app, repo, _, _ := newTestApp(t)
	account, err := app.Login(context.Background(), "good")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	balance, err := app.GrantMoney(context.Background(), account.ID, 50)
	if err != nil {
		t.Fatalf("grant: %v", err)
	}
	if balance != 150 {
		t.Fatalf("expected balance 150, got %d", balance)
	}
	if _, err := app.GrantMoney(context.Background(), account.ID, -151); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if len(repo.events) != 1 || repo.events[0].Type != events.BalanceGranted {
		t.Fatalf("expected one BalanceGranted event, got %+v", repo.events)
	}
}

func TestGrantMoneyUnknownAccount(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	if _, err := app.GrantMoney(context.Background(), uuid.New(), 10); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDisplayNameFallsBackToEmail(t *testing.T) {
	got := displayName(&clients.TokenInfo{Email: "bob@example.com"})
	if got != "bob" {
		t.Fatalf("expected bob, got %q", got)
	}
}
