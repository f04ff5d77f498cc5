package shop

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/overworld/go/internal/models"
)

type fakeRepo struct {
	mu       sync.Mutex
	skins    map[string]int64
	houses   map[string]int64
	balances map[uuid.UUID]int64
	skinsOf  map[uuid.UUID]map[string]bool
	housesOf map[uuid.UUID]map[string]bool
	events   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		skins:    map[string]int64{"0": 0, "1": 10, "2": 20},
		houses:   map[string]int64{"0": 500},
		balances: make(map[uuid.UUID]int64),
		skinsOf:  make(map[uuid.UUID]map[string]bool),
		housesOf: make(map[uuid.UUID]map[string]bool),
	}
}

func (f *fakeRepo) ListSkinPrices(context.Context) ([]models.SkinPrice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.SkinPrice
	for _, id := range []string{"0", "1", "2"} {
		if p, ok := f.skins[id]; ok {
			out = append(out, models.SkinPrice{SkinID: id, Price: p})
		}
	}
	return out, nil
}

func (f *fakeRepo) ListHousePrices(context.Context) ([]models.HousePrice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.HousePrice
	for id, p := range f.houses {
		out = append(out, models.HousePrice{HouseID: id, Price: p})
	}
	return out, nil
}

func (f *fakeRepo) SetSkinPrice(_ context.Context, p models.SkinPrice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.skins[p.SkinID] = p.Price
	return nil
}

func (f *fakeRepo) SetHousePrice(_ context.Context, p models.HousePrice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.houses[p.HouseID] = p.Price
	return nil
}

func (f *fakeRepo) BuySkin(_ context.Context, id uuid.UUID, skinID string) (*SkinPurchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	price, ok := f.skins[skinID]
	if !ok {
		return nil, ErrUnknownSkin
	}
	if f.skinsOf[id][skinID] {
		return &SkinPurchase{SkinID: skinID, Price: price, Balance: f.balances[id], AlreadyOwned: true}, nil
	}
	if f.balances[id] < price {
		return nil, ErrInsufficientFunds
	}
	f.balances[id] -= price
	if f.skinsOf[id] == nil {
		f.skinsOf[id] = make(map[string]bool)
	}
	f.skinsOf[id][skinID] = true
	f.events++
	return &SkinPurchase{SkinID: skinID, Price: price, Balance: f.balances[id]}, nil
}

func (f *fakeRepo) BuyHouse(_ context.Context, id uuid.UUID, houseID string) (*HousePurchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	price, ok := f.houses[houseID]
	if !ok {
		return nil, ErrUnknownHouse
	}
	if f.housesOf[id][houseID] {
		return nil, ErrAlreadyOwned
	}
	if f.balances[id] < price {
		return nil, ErrInsufficientFunds
	}
	f.balances[id] -= price
	if f.housesOf[id] == nil {
		f.housesOf[id] = make(map[string]bool)
	}
	f.housesOf[id][houseID] = true
	f.events++
	return &HousePurchase{HouseID: houseID, Price: price, Balance: f.balances[id]}, nil
}

func (f *fakeRepo) Balance(_ context.Context, id uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.balances[id], nil
}

type recordingEquipper struct {
	equipped map[uuid.UUID]string
}

func (e *recordingEquipper) EquipSkin(id uuid.UUID, skinID string) {
	e.equipped[id] = skinID
}

func newTestShop(balance int64) (*App, *fakeRepo, *recordingEquipper, *models.Account) {
	repo := newFakeRepo()
	equipper := &recordingEquipper{equipped: make(map[uuid.UUID]string)}
	account := &models.Account{ID: uuid.New(), DisplayName: "ada", Balance: balance, SkinID: "0"}
	repo.balances[account.ID] = balance
	return NewApp(repo, equipper), repo, equipper, account
}

func TestBuySkin(t *testing.T) {
	app, repo, equipper, account := newTestShop(25)
	ctx := context.Background()

	result, err := app.BuySkin(ctx, account, "1")
	if err != nil {
		t.Fatalf("buy: %v", err)
	}
	if !result.Success || result.NewBalance != 15 {
		t.Fatalf("expected success with balance 15, got %+v", result)
	}
	if equipper.equipped[account.ID] != "1" {
		t.Fatalf("expected skin 1 equipped, got %q", equipper.equipped[account.ID])
	}

	result, err = app.BuySkin(ctx, account, "2")
	if err != nil {
		t.Fatalf("buy: %v", err)
	}
	if result.Success || result.Message != "insufficient funds" || result.NewBalance != 15 {
		t.Fatalf("expected insufficient funds at 15, got %+v", result)
	}

	result, err = app.BuySkin(ctx, account, "1")
	if err != nil {
		t.Fatalf("buy: %v", err)
	}
	if !result.Success || result.NewBalance != 15 || result.Message != "skin equipped" {
		t.Fatalf("expected free re-equip, got %+v", result)
	}
	if repo.events != 1 {
		t.Fatalf("expected 1 outbox event, got %d", repo.events)
	}
}

func TestBuyUnknownSkin(t *testing.T) {
	app, _, equipper, account := newTestShop(100)

	result, err := app.BuySkin(context.Background(), account, "99")
	if err != nil {
		t.Fatalf("buy: %v", err)
	}
	if result.Success || result.Message != "unknown skin" || result.NewBalance != 100 {
		t.Fatalf("expected unknown skin failure, got %+v", result)
	}
	if _, ok := equipper.equipped[account.ID]; ok {
		t.Fatalf("expected nothing equipped")
	}
}

func TestBuyHouse(t *testing.T) {
	app, _, _, account := newTestShop(600)
	ctx := context.Background()

	result, err := app.BuyHouse(ctx, account, "0")
	if err != nil {
		t.Fatalf("buy: %v", err)
	}
	if !result.Success || result.NewBalance != 100 {
		t.Fatalf("expected success with balance 100, got %+v", result)
	}

	result, err = app.BuyHouse(ctx, account, "0")
	if err != nil {
		t.Fatalf("buy: %v", err)
	}
	if result.Success || result.Message != "already owned" {
		t.Fatalf("expected already owned, got %+v", result)
	}

	result, err = app.BuyHouse(ctx, account, "nope")
	if err != nil {
		t.Fatalf("buy: %v", err)
	}
	if result.Success || result.Message != "unknown house" {
		t.Fatalf("expected unknown house, got %+v", result)
	}
}

type brokenRepo struct{ *fakeRepo }

func (brokenRepo) BuyHouse(context.Context, uuid.UUID, string) (*HousePurchase, error) {
	return nil, errors.New("connection reset")
}

func TestBuyHouseInfrastructureError(t *testing.T) {
	_, repo, _, account := newTestShop(600)
	app := NewApp(brokenRepo{repo}, nil)

	if _, err := app.BuyHouse(context.Background(), account, "0"); err == nil {
		t.Fatalf("expected error from broken repository")
	}
}

func TestSetPrices(t *testing.T) {
	app, repo, _, _ := newTestShop(0)
	ctx := context.Background()

	if err := app.SetSkinPrice(ctx, models.SkinPrice{SkinID: " 5 ", Price: 50}); err != nil {
		t.Fatalf("set skin price: %v", err)
	}
	if repo.skins["5"] != 50 {
		t.Fatalf("expected skin 5 at 50, got %d", repo.skins["5"])
	}
	if err := app.SetSkinPrice(ctx, models.SkinPrice{SkinID: "5", Price: -1}); !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}
	if err := app.SetHousePrice(ctx, models.HousePrice{HouseID: "", Price: 1}); !errors.Is(err, ErrUnknownHouse) {
		t.Fatalf("expected ErrUnknownHouse, got %v", err)
	}
}
