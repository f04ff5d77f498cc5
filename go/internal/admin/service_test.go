package admin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/mcdev12/overworld/go/internal/accounts"
	"github.com/mcdev12/overworld/go/internal/models"
	"github.com/mcdev12/overworld/go/internal/shop"
)

type fakeAccounts struct {
	balances map[uuid.UUID]int64
}

func (f *fakeAccounts) GrantMoney(ctx context.Context, id uuid.UUID, amount int64) (int64, error) {
	bal, ok := f.balances[id]
	if !ok {
		return 0, accounts.ErrNotFound
	}
	if bal+amount < 0 {
		return 0, accounts.ErrInsufficientFunds
	}
	f.balances[id] = bal + amount
	return f.balances[id], nil
}

type fakePrices struct {
	skins  map[string]int64
	houses map[string]int64
}

func (f *fakePrices) SetSkinPrice(ctx context.Context, p models.SkinPrice) error {
	if p.Price < 0 {
		return shop.ErrInvalidPrice
	}
	f.skins[p.SkinID] = p.Price
	return nil
}

func (f *fakePrices) SetHousePrice(ctx context.Context, p models.HousePrice) error {
	if p.Price < 0 {
		return shop.ErrInvalidPrice
	}
	f.houses[p.HouseID] = p.Price
	return nil
}

type fakePlayers []models.PlayerState

func (f fakePlayers) ListPlayers(ctx context.Context) []models.PlayerState { return f }

type harness struct {
	accounts *fakeAccounts
	prices   *fakePrices
	srv      *httptest.Server
}

func newHarness(t *testing.T, players fakePlayers) *harness {
	t.Helper()
	h := &harness{
		accounts: &fakeAccounts{balances: map[uuid.UUID]int64{}},
		prices:   &fakePrices{skins: map[string]int64{}, houses: map[string]int64{}},
	}
	app := NewApp(h.accounts, h.prices, players)
	path, handler := NewHandler(NewService(app), "secret")

	mux := http.NewServeMux()
	mux.Handle(path, handler)
	h.srv = httptest.NewServer(mux)
	t.Cleanup(h.srv.Close)
	return h
}

func TestGrantMoney(t *testing.T) {
	h := newHarness(t, nil)
	id := uuid.New()
	h.accounts.balances[id] = 100

	client := NewClient(h.srv.Client(), h.srv.URL, "secret")
	balance, err := client.GrantMoney(t.Context(), id, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance != 150 {
		t.Fatalf("expected 150, got %d", balance)
	}
	if h.accounts.balances[id] != 150 {
		t.Fatalf("expected stored balance 150, got %d", h.accounts.balances[id])
	}
}

func TestGrantMoneyErrors(t *testing.T) {
	h := newHarness(t, nil)
	rich := uuid.New()
	h.accounts.balances[rich] = 10
	client := NewClient(h.srv.Client(), h.srv.URL, "secret")

	tests := []struct {
		name   string
		id     uuid.UUID
		amount int64
		code   connect.Code
	}{
		{"zero amount", rich, 0, connect.CodeInvalidArgument},
		{"unknown account", uuid.New(), 5, connect.CodeNotFound},
		{"overdraw", rich, -20, connect.CodeFailedPrecondition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.GrantMoney(t.Context(), tt.id, tt.amount)
			if connect.CodeOf(err) != tt.code {
				t.Fatalf("expected %v, got %v", tt.code, err)
			}
		})
	}
	if h.accounts.balances[rich] != 10 {
		t.Fatalf("expected failed grants to leave balance 10, got %d", h.accounts.balances[rich])
	}
}

func TestRejectsWrongToken(t *testing.T) {
	h := newHarness(t, nil)
	client := NewClient(h.srv.Client(), h.srv.URL, "guess")

	_, err := client.ListOnline(t.Context())
	if connect.CodeOf(err) != connect.CodeUnauthenticated {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestEmptyTokenDisablesService(t *testing.T) {
	app := NewApp(&fakeAccounts{}, &fakePrices{}, fakePlayers{})
	path, handler := NewHandler(NewService(app), "")
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	_, err := NewClient(srv.Client(), srv.URL, "").ListOnline(t.Context())
	if connect.CodeOf(err) != connect.CodeUnauthenticated {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestSetPrices(t *testing.T) {
	h := newHarness(t, nil)
	client := NewClient(h.srv.Client(), h.srv.URL, "secret")

	if err := client.SetSkinPrice(t.Context(), "7", 250); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := client.SetHousePrice(t.Context(), "villa", 1000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.prices.skins["7"] != 250 || h.prices.houses["villa"] != 1000 {
		t.Fatalf("prices not stored: %+v %+v", h.prices.skins, h.prices.houses)
	}

	err := client.SetSkinPrice(t.Context(), "7", -1)
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestListOnline(t *testing.T) {
	h := newHarness(t, fakePlayers{{AccountID: uuid.New(), Name: "ada"}, {AccountID: uuid.New(), Name: "bob"}})
	client := NewClient(h.srv.Client(), h.srv.URL, "secret")

	resp, err := client.ListOnline(t.Context())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Count != 2 || resp.Players[0].Name != "ada" {
		t.Fatalf("unexpected response %+v", resp)
	}
}
