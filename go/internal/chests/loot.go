package chests

import (
	"math/rand/v2"

	"github.com/mcdev12/overworld/go/internal/models"
)

// Roll picks a loot entry with probability proportional to its weight.
// Entries with a non-positive weight never drop.
func Roll(loot []models.LootEntry, rng *rand.Rand) (string, error) {
	total := 0
	for _, l := range loot {
		if l.Weight > 0 {
			total += l.Weight
		}
	}
	if total == 0 {
		return "", ErrEmptyLoot
	}

	n := rng.IntN(total)
	for _, l := range loot {
		if l.Weight <= 0 {
			continue
		}
		if n < l.Weight {
			return l.ItemID, nil
		}
		n -= l.Weight
	}
	// unreachable while weights sum to total
	return loot[len(loot)-1].ItemID, nil
}
