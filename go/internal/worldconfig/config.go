// Package worldconfig loads world content (teleports, shop catalog, items,
// chests) from YAML.
package worldconfig

import (
	"fmt"
	"os"
	"time"

	"github.com/mcdev12/overworld/go/internal/commands"
	"github.com/mcdev12/overworld/go/internal/models"
	"github.com/mcdev12/overworld/go/internal/tilemap"
	"gopkg.in/yaml.v3"
)

// Config is the content of world.yaml
type Config struct {
	StartBalance int64               `yaml:"start_balance"`
	Spawn        models.Position     `yaml:"spawn"`
	ChatTTL      time.Duration       `yaml:"chat_ttl"`
	ChestReach   float64             `yaml:"chest_reach"`
	Teleports    []commands.Teleport `yaml:"teleports"`
	Skins        []models.SkinPrice  `yaml:"skins"`
	Houses       []models.HousePrice `yaml:"houses"`
	Items        []models.Item       `yaml:"items"`
	Chests       []models.Chest      `yaml:"chests"`
}

// Default returns the built-in world used when no file is configured:
// sixteen skins, four houses and the stock teleports.
func Default() *Config {
	cfg := &Config{
		StartBalance: 100,
		Spawn:        models.Position{X: 9600, Y: 8960},
		ChatTTL:      8 * time.Second,
		ChestReach:   150,
		Teleports:    commands.DefaultTeleports(),
		Items: []models.Item{
			{ID: "apple", Name: "Apple", SellPrice: 2},
			{ID: "coin-pouch", Name: "Coin Pouch", SellPrice: 25},
			{ID: "gem", Name: "Gem", SellPrice: 60},
		},
		Chests: []models.Chest{
			{
				ID:       "home-chest",
				Position: models.Position{X: 9700, Y: 9000},
				Cooldown: 10 * time.Minute,
				Loot: []models.LootEntry{
					{ItemID: "apple", Weight: 70},
					{ItemID: "coin-pouch", Weight: 25},
					{ItemID: "gem", Weight: 5},
				},
			},
		},
	}
	for i := 0; i < 16; i++ {
		cfg.Skins = append(cfg.Skins, models.SkinPrice{SkinID: fmt.Sprint(i), Price: int64(10 * i)})
	}
	for i := 0; i < 4; i++ {
		cfg.Houses = append(cfg.Houses, models.HousePrice{HouseID: fmt.Sprint(i), Price: int64(500 * (i + 1))})
	}
	return cfg
}

// Load reads and validates a world file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read world config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse world config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid world config: %w", err)
	}
	return cfg, nil
}

// Validate checks internal references of the catalog
func (c *Config) Validate() error {
	if c.StartBalance < 0 {
		return fmt.Errorf("start_balance must not be negative")
	}
	if c.ChatTTL <= 0 {
		return fmt.Errorf("chat_ttl must be positive")
	}

	skins := make(map[string]bool)
	for _, s := range c.Skins {
		if s.Price < 0 {
			return fmt.Errorf("skin %q has negative price", s.SkinID)
		}
		if skins[s.SkinID] {
			return fmt.Errorf("duplicate skin %q", s.SkinID)
		}
		skins[s.SkinID] = true
	}
	houses := make(map[string]bool)
	for _, h := range c.Houses {
		if h.Price < 0 {
			return fmt.Errorf("house %q has negative price", h.HouseID)
		}
		if houses[h.HouseID] {
			return fmt.Errorf("duplicate house %q", h.HouseID)
		}
		houses[h.HouseID] = true
	}

	items := c.ItemsByID()
	if len(items) != len(c.Items) {
		return fmt.Errorf("duplicate item ids")
	}
	chests := make(map[string]bool)
	for _, chest := range c.Chests {
		if chests[chest.ID] {
			return fmt.Errorf("duplicate chest %q", chest.ID)
		}
		chests[chest.ID] = true
		if len(chest.Loot) == 0 {
			return fmt.Errorf("chest %q has no loot", chest.ID)
		}
		for _, l := range chest.Loot {
			if _, ok := items[l.ItemID]; !ok {
				return fmt.Errorf("chest %q references unknown item %q", chest.ID, l.ItemID)
			}
			if l.Weight <= 0 {
				return fmt.Errorf("chest %q has non-positive weight for %q", chest.ID, l.ItemID)
			}
		}
	}

	if _, err := commands.NewRegistry(c.Teleports); err != nil {
		return err
	}
	return nil
}

// CheckMap verifies that every configured location lies on the map
func (c *Config) CheckMap(m *tilemap.Map) error {
	if !m.Contains(c.Spawn) {
		return fmt.Errorf("spawn %v is outside the map", c.Spawn)
	}
	for _, tp := range c.Teleports {
		if !m.Contains(tp.Position) {
			return fmt.Errorf("teleport %q at %v is outside the map", tp.Name, tp.Position)
		}
	}
	for _, chest := range c.Chests {
		if !m.Contains(chest.Position) {
			return fmt.Errorf("chest %q at %v is outside the map", chest.ID, chest.Position)
		}
	}
	return nil
}

// ItemsByID indexes the item catalog
func (c *Config) ItemsByID() map[string]models.Item {
	out := make(map[string]models.Item, len(c.Items))
	for _, it := range c.Items {
		out[it.ID] = it
	}
	return out
}
