// Package bots drives headless players against a running server.
package bots

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/overworld/go/internal/models"
	"github.com/mcdev12/overworld/go/internal/movement"
	"github.com/mcdev12/overworld/go/internal/tilemap"
)

// DefaultSpeed is pixels moved per movement tick
const DefaultSpeed = 8

var phrases = []string{"hi", "anyone here?", "nice house", "/position", "/help", "/home"}

// Mover is the part of the poll client a bot steers
type Mover interface {
	Position() models.Position
	SetPosition(pos models.Position)
	Say(text string)
}

// Bot wanders between random grass tiles and chats now and then
type Bot struct {
	Name  string
	mover Mover
	world *tilemap.Map
	rng   *rand.Rand
	speed float64

	// 1 in chatOdds steps says something; 0 never chats
	chatOdds int

	target    models.Position
	hasTarget bool
}

func New(name string, mover Mover, world *tilemap.Map, rng *rand.Rand, speed float64, chatOdds int) *Bot {
	if speed <= 0 {
		speed = DefaultSpeed
	}
	return &Bot{
		Name:     name,
		mover:    mover,
		world:    world,
		rng:      rng,
		speed:    speed,
		chatOdds: chatOdds,
	}
}

// Step advances the bot by one movement tick
func (b *Bot) Step() {
	if !b.hasTarget {
		target, ok := b.world.RandomWalkable(b.rng)
		if !ok {
			return
		}
		b.target, b.hasTarget = target, true
	}

	next, arrived := movement.Step(b.mover.Position(), b.target, b.speed)
	if !b.world.Walkable(next) {
		// blocked by water: pick somewhere else next tick
		b.hasTarget = false
		return
	}
	b.mover.SetPosition(next)
	if arrived {
		b.hasTarget = false
	}

	if b.chatOdds > 0 && b.rng.IntN(b.chatOdds) == 0 {
		b.mover.Say(phrases[b.rng.IntN(len(phrases))])
	}
}

// Walk steps on every tick until ctx is cancelled
func (b *Bot) Walk(ctx context.Context, clock clockwork.Clock, interval time.Duration) {
	ticker := clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			b.Step()
		}
	}
}
