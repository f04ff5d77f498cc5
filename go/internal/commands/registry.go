// Package commands implements the slash commands players type into the chat
// box: fixed teleports, a position readout and help.
package commands

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/mcdev12/overworld/go/internal/models"
)

// Teleport is a named destination reachable with "/<name>"
type Teleport struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Position    models.Position `yaml:"position"`
}

// DefaultTeleports are the destinations on the stock world map
func DefaultTeleports() []Teleport {
	return []Teleport{
		{Name: "home", Description: "Teleports the player to home position.", Position: models.Position{X: 9600, Y: 8960}},
		{Name: "ogj", Description: "Teleports the player to OGJ position.", Position: models.Position{X: 1731, Y: 9998}},
		{Name: "graz", Description: "Teleports the player to Graz.", Position: models.Position{X: 18114, Y: 6306}},
		{Name: "bär", Description: "Teleports the player to Bär.", Position: models.Position{X: 12105, Y: 6349}},
		{Name: "liebe", Description: "Teleports the player to Liebe.", Position: models.Position{X: 3211, Y: 4423}},
		{Name: "exil", Description: "Teleports the player to Exil.", Position: models.Position{X: 18280, Y: 881}},
		{Name: "wald", Description: "Teleports the player to Wald.", Position: models.Position{X: 9827, Y: 1459}},
	}
}

const (
	helpCommand     = "help"
	positionCommand = "position"
)

// Result is the outcome of running chat text through the registry
type Result struct {
	// IsCommand is false for plain chat
	IsCommand bool             `json:"is_command"`
	Bubble    string           `json:"bubble,omitempty"`
	Teleport  *models.Position `json:"teleport,omitempty"`
}

type command struct {
	name        string
	description string
	teleport    *models.Position
}

// Registry maps command names to their actions, keeping registration order
// for help output.
type Registry struct {
	order  []string
	byName map[string]command
}

// NewRegistry builds a registry from teleports plus the built-in commands
func NewRegistry(teleports []Teleport) (*Registry, error) {
	r := &Registry{byName: make(map[string]command)}
	for _, tp := range teleports {
		pos := tp.Position
		if err := r.add(command{name: tp.Name, description: tp.Description, teleport: &pos}); err != nil {
			return nil, err
		}
	}
	if err := r.add(command{name: positionCommand, description: "Displays the player's current position."}); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) add(c command) error {
	name := normalize(c.name)
	if name == "" {
		return fmt.Errorf("command name is required")
	}
	if name == helpCommand {
		return fmt.Errorf("command name %q is reserved", name)
	}
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("duplicate command %q", name)
	}
	c.name = name
	r.byName[name] = c
	r.order = append(r.order, name)
	return nil
}

// Names returns the registered command names in registration order
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Execute runs text typed by a player standing at pos. Text that does not
// start with "/" is plain chat.
func (r *Registry) Execute(text string, pos models.Position) Result {
	if !strings.HasPrefix(text, "/") {
		return Result{}
	}
	name := normalize(strings.TrimPrefix(text, "/"))

	if name == helpCommand {
		return Result{IsCommand: true, Bubble: r.Help()}
	}

	c, ok := r.byName[name]
	if !ok {
		bubble := fmt.Sprintf("Unknown command: %s", name)
		if s := r.suggest(name); s != "" {
			bubble += fmt.Sprintf(" (did you mean /%s?)", s)
		}
		return Result{IsCommand: true, Bubble: bubble}
	}

	if c.teleport != nil {
		dest := *c.teleport
		return Result{IsCommand: true, Teleport: &dest}
	}
	// position is the only non-teleport command
	return Result{IsCommand: true, Bubble: fmt.Sprintf("x: %s y: %s", formatCoord(pos.X), formatCoord(pos.Y))}
}

// Help lists every command with its description
func (r *Registry) Help() string {
	var b strings.Builder
	b.WriteString("Available commands:")
	for _, name := range r.order {
		fmt.Fprintf(&b, "\n/%s: %s", name, r.byName[name].description)
	}
	return b.String()
}

func (r *Registry) suggest(name string) string {
	if name == "" {
		return ""
	}
	best := ""
	bestDist := -1
	candidates := append([]string{helpCommand}, r.order...)
	for _, cand := range candidates {
		dist := levenshtein.ComputeDistance(name, cand)
		if dist > levenshteinLimit(len([]rune(cand))) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	return best
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func formatCoord(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}
