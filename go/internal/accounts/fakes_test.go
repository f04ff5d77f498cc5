package accounts

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/overworld/go/clients"
	"github.com/mcdev12/overworld/go/internal/events"
	"github.com/mcdev12/overworld/go/internal/models"
)

type fakeRepo struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*models.Account
	houses   map[uuid.UUID][]models.OwnedHouse
	events   []events.Event
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		accounts: make(map[uuid.UUID]*models.Account),
		houses:   make(map[uuid.UUID][]models.OwnedHouse),
	}
}

func (f *fakeRepo) CreateAccount(_ context.Context, req CreateAccountRequest) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := &models.Account{
		ID:          uuid.New(),
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Balance:     req.Balance,
		SkinID:      req.SkinID,
		CreatedAt:   time.Now(),
	}
	f.accounts[a.ID] = a
	cp := *a
	return &cp, nil
}

func (f *fakeRepo) GetAccount(_ context.Context, id uuid.UUID) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeRepo) GetAccountByEmail(_ context.Context, email string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeRepo) UpdateDisplayName(_ context.Context, id uuid.UUID, name string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	a.DisplayName = name
	cp := *a
	return &cp, nil
}

func (f *fakeRepo) AddBalance(_ context.Context, id uuid.UUID, delta int64, eventFor BalanceEventFunc) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[id]
	if !ok {
		return 0, ErrNotFound
	}
	if a.Balance+delta < 0 {
		return 0, ErrInsufficientFunds
	}
	if eventFor != nil {
		evt, err := eventFor(a.Balance + delta)
		if err != nil {
			return 0, err
		}
		f.events = append(f.events, evt)
	}
	a.Balance += delta
	return a.Balance, nil
}

func (f *fakeRepo) ListOwnedHouses(_ context.Context, id uuid.UUID) ([]models.OwnedHouse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.houses[id], nil
}

type fakeVerifier struct {
	mu     sync.Mutex
	tokens map[string]*clients.TokenInfo
	calls  int
}

func (f *fakeVerifier) VerifyIDToken(_ context.Context, token string) (*clients.TokenInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	info, ok := f.tokens[token]
	if !ok {
		return nil, clients.ErrInvalidToken
	}
	cp := *info
	return &cp, nil
}

func (f *fakeVerifier) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
