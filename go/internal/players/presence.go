package players

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/overworld/go/internal/models"
	"github.com/sasha-s/go-deadlock"
)

type presenceEntry struct {
	state     models.PlayerState
	posDirty  bool
	skinDirty bool
}

// DirtyState is a player whose durable fields changed since the last flush
type DirtyState struct {
	State         models.PlayerState
	PositionDirty bool
	SkinDirty     bool
}

// Presence is the in-memory table of players currently in the world.
// Entries are created by the first state post and dropped by Reap once a
// player stops posting for longer than the timeout.
type Presence struct {
	mu       deadlock.RWMutex
	clock    clockwork.Clock
	timeout  time.Duration
	chatTTL  time.Duration
	players  map[uuid.UUID]*presenceEntry
	departed []DirtyState
}

// NewPresence creates an empty presence table
func NewPresence(clock clockwork.Clock, timeout, chatTTL time.Duration) *Presence {
	return &Presence{
		clock:   clock,
		timeout: timeout,
		chatTTL: chatTTL,
		players: make(map[uuid.UUID]*presenceEntry),
	}
}

// Update applies fn to the player's state, creating the entry from initial
// when the player is not present. If fn returns an error nothing changes.
// joined reports whether the entry was created by this call.
func (p *Presence) Update(id uuid.UUID, initial models.PlayerState, fn func(*models.PlayerState) error) (state models.PlayerState, joined bool, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	entry, ok := p.players[id]
	next := initial
	if ok {
		next = entry.state
	}
	if err := fn(&next); err != nil {
		return models.PlayerState{}, false, err
	}
	next.AccountID = id
	next.LastSeen = p.clock.Now()

	if !ok {
		entry = &presenceEntry{state: next, posDirty: true, skinDirty: next.SkinID != initial.SkinID}
		p.players[id] = entry
		return next, true, nil
	}

	if next.Position != entry.state.Position {
		entry.posDirty = true
	}
	if next.SkinID != entry.state.SkinID {
		entry.skinDirty = true
	}
	entry.state = next
	return next, false, nil
}

// Has reports whether the player has an entry
func (p *Presence) Has(id uuid.UUID) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.players[id]
	return ok
}

// Position returns the live position of a present player
func (p *Presence) Position(id uuid.UUID) (models.Position, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	entry, ok := p.players[id]
	if !ok || !p.present(entry, p.clock.Now()) {
		return models.Position{}, false
	}
	return entry.state.Position, true
}

// SetSkin changes the worn skin of a present player without marking it
// dirty; callers that use it have already persisted the skin.
func (p *Presence) SetSkin(id uuid.UUID, skinID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if entry, ok := p.players[id]; ok {
		entry.state.SkinID = skinID
	}
}

// Snapshot returns every present player sorted by name then id, with chat
// older than the chat TTL blanked.
func (p *Presence) Snapshot() []models.PlayerState {
	p.mu.RLock()
	defer p.mu.RUnlock()

	now := p.clock.Now()
	out := make([]models.PlayerState, 0, len(p.players))
	for _, entry := range p.players {
		if !p.present(entry, now) {
			continue
		}
		state := entry.state
		if state.Chat != "" && now.Sub(state.ChatAt) > p.chatTTL {
			state.Chat = ""
		}
		out = append(out, state)
	}

	sort.Slice(out, func(i, j int) bool {
		if c := strings.Compare(out[i].Name, out[j].Name); c != 0 {
			return c < 0
		}
		return out[i].AccountID.String() < out[j].AccountID.String()
	})
	return out
}

// Len returns the number of entries, present or not yet reaped
func (p *Presence) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.players)
}

// Reap removes players that have not posted within the timeout and returns
// them. Unflushed changes of removed players stay queued for DrainDirty.
func (p *Presence) Reap() []models.PlayerState {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.clock.Now()
	var gone []models.PlayerState
	for id, entry := range p.players {
		if p.present(entry, now) {
			continue
		}
		delete(p.players, id)
		gone = append(gone, entry.state)
		if entry.posDirty || entry.skinDirty {
			p.departed = append(p.departed, DirtyState{
				State:         entry.state,
				PositionDirty: entry.posDirty,
				SkinDirty:     entry.skinDirty,
			})
		}
	}
	return gone
}

// DrainDirty returns and clears every pending change
func (p *Presence) DrainDirty() []DirtyState {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := p.departed
	p.departed = nil
	for _, entry := range p.players {
		if !entry.posDirty && !entry.skinDirty {
			continue
		}
		out = append(out, DirtyState{
			State:         entry.state,
			PositionDirty: entry.posDirty,
			SkinDirty:     entry.skinDirty,
		})
		entry.posDirty = false
		entry.skinDirty = false
	}
	return out
}

// Requeue marks changes that failed to save as dirty again. Changes of a
// player that has been reaped meanwhile go back on the departed queue.
func (p *Presence) Requeue(failed []DirtyState) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, d := range failed {
		if entry, ok := p.players[d.State.AccountID]; ok {
			entry.posDirty = entry.posDirty || d.PositionDirty
			entry.skinDirty = entry.skinDirty || d.SkinDirty
			continue
		}
		p.departed = append(p.departed, d)
	}
}

func (p *Presence) present(entry *presenceEntry, now time.Time) bool {
	return now.Sub(entry.state.LastSeen) <= p.timeout
}
