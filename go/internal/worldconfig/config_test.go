package worldconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mcdev12/overworld/go/internal/tilemap"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if len(cfg.Skins) != 16 || len(cfg.Houses) != 4 {
		t.Fatalf("expected 16 skins and 4 houses, got %d and %d", len(cfg.Skins), len(cfg.Houses))
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.yaml")
	content := `
start_balance: 250
chat_ttl: 5s
items:
  - id: stick
    name: Stick
    sell_price: 1
chests:
  - id: c1
    position: {x: 10, y: 20}
    cooldown: 30s
    loot:
      - item: stick
        weight: 1
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.StartBalance != 250 {
		t.Fatalf("expected start balance 250, got %d", cfg.StartBalance)
	}
	if cfg.ChatTTL != 5*time.Second {
		t.Fatalf("expected chat ttl 5s, got %v", cfg.ChatTTL)
	}
	if len(cfg.Chests) != 1 || cfg.Chests[0].Cooldown != 30*time.Second {
		t.Fatalf("unexpected chests %+v", cfg.Chests)
	}
	if cfg.Chests[0].Position.X != 10 || cfg.Chests[0].Position.Y != 20 {
		t.Fatalf("unexpected chest position %+v", cfg.Chests[0].Position)
	}
	if len(cfg.Skins) != 16 {
		t.Fatalf("expected default skins to remain, got %d", len(cfg.Skins))
	}
}

func TestValidateRejectsUnknownLoot(t *testing.T) {
	cfg := Default()
	cfg.Chests[0].Loot[0].ItemID = "missing"
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "unknown item") {
		t.Fatalf("expected unknown item error, got %v", err)
	}
}

func TestCheckMap(t *testing.T) {
	m, err := tilemap.Parse(strings.NewReader("0,0\n0,0\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := Default().CheckMap(m); err == nil {
		t.Fatalf("expected default spawn to be outside a 100x100 map")
	}
}
