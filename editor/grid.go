package editor

import (
	"math"

	"skyraid/levels"
)

// Snap rounds p to the nearest multiple of gridSize on both axes. Snapping
// is idempotent: Snap(Snap(p)) == Snap(p).
func Snap(p levels.Position, gridSize int) levels.Position {
	if gridSize <= 0 {
		return p
	}
	g := float64(gridSize)
	return levels.Position{
		X: math.Round(p.X/g) * g,
		Y: math.Round(p.Y/g) * g,
	}
}
