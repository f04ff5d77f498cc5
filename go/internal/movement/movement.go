// Package movement holds the click-to-move arithmetic used by headless
// players: advance toward a target by a fixed step and stop on arrival.
package movement

import (
	"math"

	"github.com/mcdev12/overworld/go/internal/models"
)

// Distance returns the euclidean distance between two positions
func Distance(a, b models.Position) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Step moves from toward target by at most step pixels. When the target is
// within one step the result is the target itself and arrived is true. A
// non-positive step does not move.
func Step(from, target models.Position, step float64) (next models.Position, arrived bool) {
	dist := Distance(from, target)
	if dist == 0 {
		return target, true
	}
	if step <= 0 {
		return from, false
	}
	if dist <= step {
		return target, true
	}
	ratio := step / dist
	return models.Position{
		X: from.X + (target.X-from.X)*ratio,
		Y: from.Y + (target.Y-from.Y)*ratio,
	}, false
}

// StepsTo returns how many steps of the given size reach the target
func StepsTo(from, target models.Position, step float64) int {
	if step <= 0 {
		return 0
	}
	return int(math.Ceil(Distance(from, target) / step))
}
