package bots

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/mcdev12/overworld/go/internal/models"
	"github.com/mcdev12/overworld/go/internal/tilemap"
)

type fakeMover struct {
	pos  models.Position
	said []string
}

func (m *fakeMover) Position() models.Position       { return m.pos }
func (m *fakeMover) SetPosition(pos models.Position) { m.pos = pos }
func (m *fakeMover) Say(text string)                 { m.said = append(m.said, text) }

func testWorld(t *testing.T) *tilemap.Map {
	t.Helper()
	m, err := tilemap.Parse(strings.NewReader("0,0,0,0\n0,1,1,0\n0,0,0,0\n"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return m
}

func TestBotStaysOnGrass(t *testing.T) {
	world := testWorld(t)
	mover := &fakeMover{pos: tilemap.TileCenter(0, 0)}
	bot := New("bot-1", mover, world, rand.New(rand.NewPCG(7, 7)), 10, 0)

	for range 500 {
		bot.Step()
		if !world.Walkable(mover.pos) {
			t.Fatalf("bot walked onto water at %v", mover.pos)
		}
	}
}

func TestBotMovesAtMostSpeed(t *testing.T) {
	world := testWorld(t)
	mover := &fakeMover{pos: tilemap.TileCenter(0, 0)}
	bot := New("bot-1", mover, world, rand.New(rand.NewPCG(1, 1)), 5, 0)

	prev := mover.pos
	for range 50 {
		bot.Step()
		dx, dy := mover.pos.X-prev.X, mover.pos.Y-prev.Y
		if dx*dx+dy*dy > 25.0001 {
			t.Fatalf("moved more than speed: %v -> %v", prev, mover.pos)
		}
		prev = mover.pos
	}
}

func TestBotChats(t *testing.T) {
	mover := &fakeMover{pos: tilemap.TileCenter(0, 0)}
	bot := New("bot-1", mover, testWorld(t), rand.New(rand.NewPCG(3, 4)), 5, 1)

	bot.Step()
	if len(mover.said) != 1 {
		t.Fatalf("expected one chat line with odds 1, got %d", len(mover.said))
	}
}
