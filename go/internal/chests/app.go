package chests

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/overworld/go/internal/events"
	"github.com/mcdev12/overworld/go/internal/inventory"
	"github.com/mcdev12/overworld/go/internal/models"
	"github.com/mcdev12/overworld/go/internal/movement"
	"github.com/rs/zerolog/log"
	"github.com/sasha-s/go-deadlock"
)

// ItemAdder puts rolled items into an inventory
type ItemAdder interface {
	Add(ctx context.Context, accountID uuid.UUID, itemID string, eventFor inventory.EventFunc) (models.InventorySlot, error)
}

// PositionSource reports where a present player stands
type PositionSource interface {
	Position(accountID uuid.UUID) (models.Position, bool)
}

type cooldownKey struct {
	account uuid.UUID
	chest   string
}

// App handles chest opening
type App struct {
	chests    []models.Chest
	byID      map[string]models.Chest
	itemNames map[string]string
	inventory ItemAdder
	positions PositionSource
	clock     clockwork.Clock
	reach     float64

	mu       deadlock.Mutex
	rng      *rand.Rand
	openedAt map[cooldownKey]time.Time
}

// NewApp creates a new chests App. rng may be nil.
func NewApp(chests []models.Chest, items []models.Item, inv ItemAdder, positions PositionSource, clock clockwork.Clock, reach float64, rng *rand.Rand) *App {
	if reach <= 0 {
		reach = DefaultReach
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	byID := make(map[string]models.Chest, len(chests))
	for _, c := range chests {
		byID[c.ID] = c
	}
	names := make(map[string]string, len(items))
	for _, it := range items {
		names[it.ID] = it.Name
	}
	return &App{
		chests:    chests,
		byID:      byID,
		itemNames: names,
		inventory: inv,
		positions: positions,
		clock:     clock,
		reach:     reach,
		rng:       rng,
		openedAt:  make(map[cooldownKey]time.Time),
	}
}

// List returns every chest with the caller's remaining cooldown
func (a *App) List(accountID uuid.UUID) []ChestView {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.clock.Now()
	views := make([]ChestView, len(a.chests))
	for i, c := range a.chests {
		views[i] = ChestView{
			ID:         c.ID,
			Position:   c.Position,
			ReadyInSec: a.readyIn(accountID, c, now),
		}
	}
	return views
}

// Open rolls the chest's loot table into the caller's inventory. Only a
// successful roll consumes the cooldown.
func (a *App) Open(ctx context.Context, accountID uuid.UUID, chestID string) (*OpenResult, error) {
	chest, ok := a.byID[chestID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrChestNotFound, chestID)
	}

	pos, present := a.positions.Position(accountID)
	if !present {
		return &OpenResult{Success: false, Message: "you are not in the world"}, nil
	}
	if movement.Distance(pos, chest.Position) > a.reach {
		return &OpenResult{Success: false, Message: "too far away"}, nil
	}

	key := cooldownKey{account: accountID, chest: chest.ID}
	a.mu.Lock()
	now := a.clock.Now()
	if wait := a.readyIn(accountID, chest, now); wait > 0 {
		a.mu.Unlock()
		return &OpenResult{Success: false, Message: fmt.Sprintf("chest is empty, come back in %ds", wait), ReadyInSec: wait}, nil
	}
	previous, hadPrevious := a.openedAt[key]
	a.openedAt[key] = now
	itemID, err := Roll(chest.Loot, a.rng)
	a.mu.Unlock()

	release := func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		if a.openedAt[key].Equal(now) {
			if hadPrevious {
				a.openedAt[key] = previous
			} else {
				delete(a.openedAt, key)
			}
		}
	}
	if err != nil {
		release()
		return nil, fmt.Errorf("failed to roll chest %s: %w", chest.ID, err)
	}

	slot, err := a.inventory.Add(ctx, accountID, itemID, func(s models.InventorySlot) (*events.Event, error) {
		evt, err := events.New(events.ChestOpened, accountID, events.ChestOpenedPayload{
			AccountID:  accountID.String(),
			ChestID:    chest.ID,
			InstanceID: s.Item.ID.String(),
			ItemID:     s.Item.ItemID,
			Slot:       s.Index,
		})
		return &evt, err
	})
	if err != nil {
		release()
		if errors.Is(err, inventory.ErrInventoryFull) {
			return &OpenResult{Success: false, Message: "inventory is full"}, nil
		}
		return nil, fmt.Errorf("failed to add loot: %w", err)
	}

	log.Info().
		Str("account_id", accountID.String()).
		Str("chest_id", chest.ID).
		Str("item_id", itemID).
		Int("slot", slot.Index).
		Msg("chest opened")
	return &OpenResult{
		Success:  true,
		Slot:     slot.Index,
		Item:     slot.Item,
		ItemName: a.itemNames[itemID],
	}, nil
}

// readyIn returns whole seconds until the chest can be opened again.
// Callers hold a.mu.
func (a *App) readyIn(accountID uuid.UUID, chest models.Chest, now time.Time) int {
	opened, ok := a.openedAt[cooldownKey{account: accountID, chest: chest.ID}]
	if !ok {
		return 0
	}
	remaining := opened.Add(chest.Cooldown).Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(remaining.Seconds()))
}
