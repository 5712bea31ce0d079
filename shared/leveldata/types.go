// Package leveldata loads compiled level files into an immutable Level and
// answers tile queries against it. It has no dependencies on ebitengine,
// donburi, or resolv; pure data only.
package leveldata

import (
	"github.com/automoto/jlvl/shared/gamemath"
	"github.com/automoto/jlvl/shared/levelformat"
)

// Error codes for levels that decode cleanly but cannot be played.
const (
	CodeNoPlayer        = "LEVEL_NO_PLAYER"
	CodeMultiplePlayers = "LEVEL_MULTIPLE_PLAYERS"
	CodeRead            = "LEVEL_READ"
)

// Point is a world-space position.
type Point struct {
	X, Y float64
}

// Level is a decoded level. It is never modified after load; a level
// transition replaces it wholesale.
type Level struct {
	Header   levelformat.Header
	Layers   []levelformat.Layer
	Entities []levelformat.Entity
	Triggers []levelformat.Trigger

	// Index of the player record in Entities
	PlayerIndex int
	// Player centre at spawn
	Spawn Point
	// Top of the lowest non-empty action layer row, 0 if there is none
	FloorY float64
	// gravity_fixed/256 scaled by gravity/100
	Gravity float64

	tiles       []byte
	actionLayer int
}

// Player returns the player entity record.
func (l *Level) Player() levelformat.Entity {
	return l.Entities[l.PlayerIndex]
}

// MaxTriggerID returns the highest trigger id, or -1 when there are none.
func (l *Level) MaxTriggerID() int {
	maxID := -1
	for _, t := range l.Triggers {
		if int(t.ID) > maxID {
			maxID = int(t.ID)
		}
	}
	return maxID
}

// TriggerRect returns a trigger's world-space rectangle.
func (l *Level) TriggerRect(t levelformat.Trigger) gamemath.Rect {
	tw, th := l.TileWidth(), l.TileHeight()
	return gamemath.Rect{
		X: float64(t.Left) * tw,
		Y: float64(t.Top) * th,
		W: float64(t.Width) * tw,
		H: float64(t.Height) * th,
	}
}

// TileCenter returns the world-space centre of a tile.
func (l *Level) TileCenter(col, row int) Point {
	return Point{
		X: (float64(col) + 0.5) * l.TileWidth(),
		Y: (float64(row) + 0.5) * l.TileHeight(),
	}
}

// PixelWidth and PixelHeight return the world size of the grid.
func (l *Level) PixelWidth() float64  { return float64(l.Header.Width) * l.TileWidth() }
func (l *Level) PixelHeight() float64 { return float64(l.Header.Height) * l.TileHeight() }
