package chests

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/mcdev12/overworld/go/internal/models"
)

func TestRollRespectsWeights(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	loot := []models.LootEntry{
		{ItemID: "apple", Weight: 70},
		{ItemID: "gem", Weight: 30},
		{ItemID: "never", Weight: 0},
	}

	counts := make(map[string]int)
	for i := 0; i < 10000; i++ {
		item, err := Roll(loot, rng)
		if err != nil {
			t.Fatalf("roll: %v", err)
		}
		counts[item]++
	}
	if counts["never"] != 0 {
		t.Fatalf("expected zero-weight entry never to drop, got %d", counts["never"])
	}
	if counts["apple"] < 6500 || counts["apple"] > 7500 {
		t.Fatalf("expected about 7000 apples, got %d", counts["apple"])
	}
}

func TestRollEmpty(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	if _, err := Roll(nil, rng); !errors.Is(err, ErrEmptyLoot) {
		t.Fatalf("expected ErrEmptyLoot, got %v", err)
	}
	if _, err := Roll([]models.LootEntry{{ItemID: "x", Weight: 0}}, rng); !errors.Is(err, ErrEmptyLoot) {
		t.Fatalf("expected ErrEmptyLoot for zero weights, got %v", err)
	}
}
