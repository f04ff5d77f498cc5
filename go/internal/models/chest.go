package models

import "time"

// LootEntry is one weighted outcome of a chest roll
type LootEntry struct {
	ItemID string `json:"item_id" yaml:"item"`
	Weight int    `json:"weight" yaml:"weight"`
}

// Chest is an openable container placed on the map
type Chest struct {
	ID       string        `json:"id" yaml:"id"`
	Position Position      `json:"position" yaml:"position"`
	Loot     []LootEntry   `json:"-" yaml:"loot"`
	Cooldown time.Duration `json:"-" yaml:"cooldown"`
}
