package worldclient

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/overworld/go/internal/models"
	"github.com/rs/zerolog/log"
)

// DefaultPollInterval is how often local state is posted and the world fetched
const DefaultPollInterval = 200 * time.Millisecond

// WorldAPI is the part of the REST API the poll loop uses
type WorldAPI interface {
	PostState(ctx context.Context, upd StateUpdate) (*StateResponse, error)
	ListPlayers(ctx context.Context) ([]models.PlayerState, error)
}

// Poller keeps a local player in sync with the server. Every tick it posts
// the local state and replaces its view of all players with whatever the
// server returns. Failed calls are logged and skipped; the next tick tries again.
type Poller struct {
	api      WorldAPI
	clock    clockwork.Clock
	interval time.Duration

	mu       sync.Mutex
	position models.Position
	skin     string
	chat     *string
	bubble   string
	players  []models.PlayerState
	onUpdate func([]models.PlayerState)
}

func NewPoller(api WorldAPI, clock clockwork.Clock, interval time.Duration, start models.Position, skin string) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		api:      api,
		clock:    clock,
		interval: interval,
		position: start,
		skin:     skin,
	}
}

// OnUpdate registers a callback run after each successful player fetch
func (p *Poller) OnUpdate(fn func([]models.PlayerState)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onUpdate = fn
}

func (p *Poller) SetPosition(pos models.Position) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.position = pos
}

func (p *Poller) Position() models.Position {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.position
}

func (p *Poller) SetSkin(skin string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.skin = skin
}

// Say queues a chat line for the next post. Lines starting with / run as commands.
func (p *Poller) Say(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.chat = &text
}

// Bubble is the last command reply from the server
func (p *Poller) Bubble() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bubble
}

// Players is the last fetched view of the world
func (p *Poller) Players() []models.PlayerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.players
}

// Run ticks until ctx is cancelled
func (p *Poller) Run(ctx context.Context) {
	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			p.Tick(ctx)
		}
	}
}

// Tick does one post and one fetch
func (p *Poller) Tick(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, p.interval)
	defer cancel()

	p.mu.Lock()
	x, y, skin := p.position.X, p.position.Y, p.skin
	chat := p.chat
	p.chat = nil
	p.mu.Unlock()

	upd := StateUpdate{X: &x, Y: &y, Chat: chat}
	if skin != "" {
		upd.Skin = &skin
	}

	resp, err := p.api.PostState(ctx, upd)
	if err != nil {
		log.Warn().Err(err).Msg("failed to post player state")
	} else {
		p.mu.Lock()
		if resp.Bubble != "" {
			p.bubble = resp.Bubble
		}
		if resp.Teleport != nil {
			p.position = *resp.Teleport
		}
		p.mu.Unlock()
	}

	players, err := p.api.ListPlayers(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to fetch players")
		return
	}

	p.mu.Lock()
	p.players = players
	onUpdate := p.onUpdate
	p.mu.Unlock()

	if onUpdate != nil {
		onUpdate(players)
	}
}
