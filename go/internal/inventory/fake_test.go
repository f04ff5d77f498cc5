package inventory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/overworld/go/internal/events"
	"github.com/mcdev12/overworld/go/internal/models"
)

// memRepo mirrors the repository's slot rules in memory
type memRepo struct {
	mu       sync.Mutex
	slots    map[uuid.UUID]map[int]models.ItemInstance
	balances map[uuid.UUID]int64
	events   []events.Event
}

func newMemRepo(accounts ...uuid.UUID) *memRepo {
	r := &memRepo{
		slots:    make(map[uuid.UUID]map[int]models.ItemInstance),
		balances: make(map[uuid.UUID]int64),
	}
	for _, id := range accounts {
		r.slots[id] = make(map[int]models.ItemInstance)
	}
	return r
}

func (r *memRepo) Get(_ context.Context, accountID uuid.UUID) (*models.Inventory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv := emptyInventory(accountID)
	for slot, item := range r.slots[accountID] {
		it := item
		inv.Slots[slot].Item = &it
	}
	return inv, nil
}

func (r *memRepo) firstFree(accountID uuid.UUID) int {
	var used []int32
	for s := range r.slots[accountID] {
		used = append(used, int32(s))
	}
	return FirstFree(used)
}

func (r *memRepo) Add(_ context.Context, accountID uuid.UUID, itemID string, attrs json.RawMessage, eventFor EventFunc) (models.InventorySlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.slots[accountID]; !ok {
		return models.InventorySlot{}, ErrRecipientNotFound
	}
	slot := r.firstFree(accountID)
	if slot < 0 {
		return models.InventorySlot{}, ErrInventoryFull
	}
	item := models.ItemInstance{ID: uuid.New(), ItemID: itemID, Attributes: attrs, AcquiredAt: time.Now()}
	placed := models.InventorySlot{Index: slot, Item: &item}
	if eventFor != nil {
		evt, err := eventFor(placed)
		if err != nil {
			return models.InventorySlot{}, err
		}
		if evt != nil {
			r.events = append(r.events, *evt)
		}
	}
	r.slots[accountID][slot] = item
	return placed, nil
}

func (r *memRepo) Move(_ context.Context, accountID uuid.UUID, from, to int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	src, ok := r.slots[accountID][from]
	if !ok {
		return ErrSlotEmpty
	}
	dst, hasDst := r.slots[accountID][to]
	r.slots[accountID][to] = src
	if hasDst {
		r.slots[accountID][from] = dst
	} else {
		delete(r.slots[accountID], from)
	}
	return nil
}

func (r *memRepo) Sell(_ context.Context, accountID uuid.UUID, slot int, priceOf func(string) (int64, error)) (*Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.slots[accountID][slot]
	if !ok {
		return nil, ErrSlotEmpty
	}
	price, err := priceOf(item.ItemID)
	if err != nil {
		return nil, err
	}
	delete(r.slots[accountID], slot)
	r.balances[accountID] += price
	r.events = append(r.events, events.Event{Type: events.ItemSold})
	return &Sale{Item: item, Price: price, Balance: r.balances[accountID]}, nil
}

func (r *memRepo) Give(_ context.Context, fromID uuid.UUID, slot int, toID uuid.UUID) (*Trade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.slots[toID]; !ok {
		return nil, ErrRecipientNotFound
	}
	item, ok := r.slots[fromID][slot]
	if !ok {
		return nil, ErrSlotEmpty
	}
	toSlot := r.firstFree(toID)
	if toSlot < 0 {
		return nil, ErrInventoryFull
	}
	delete(r.slots[fromID], slot)
	r.slots[toID][toSlot] = item
	r.events = append(r.events, events.Event{Type: events.ItemTraded})
	return &Trade{Item: item, ToSlot: toSlot}, nil
}
