package leveldata

import (
	"github.com/automoto/jlvl/shared/gamemath"
	"github.com/automoto/jlvl/shared/levelformat"
)

// TileIDAtLayer returns the raw tile id at col x, row y of a layer, or 0
// when any coordinate is out of range.
func (l *Level) TileIDAtLayer(layer, x, y int) uint8 {
	w, h := int(l.Header.Width), int(l.Header.Height)
	if layer < 0 || layer >= len(l.Layers) || x < 0 || x >= w || y < 0 || y >= h {
		return 0
	}
	i := layer*w*h + y*w + x
	if i >= len(l.tiles) {
		return 0
	}
	return l.tiles[i]
}

// ActionLayer returns the layer used for collision and hazard queries:
// layer 0 when there is a single layer, otherwise layer 1. It is -1 for a
// level without layers.
func (l *Level) ActionLayer() int {
	return l.actionLayer
}

// TileAt classifies the action layer tile at col, row. Ids outside the
// tile kind enumeration read as empty.
func (l *Level) TileAt(col, row int) levelformat.TileKind {
	kind := levelformat.TileKind(l.TileIDAtLayer(l.actionLayer, col, row))
	if !kind.Valid() {
		return levelformat.TileEmpty
	}
	return kind
}

// WorldToTile floor-divides a world position by the tile size.
func (l *Level) WorldToTile(wx, wy float64) (col, row int) {
	return gamemath.TileOf(wx, l.TileWidth()), gamemath.TileOf(wy, l.TileHeight())
}

// KindAtWorld classifies the action layer tile under a world position.
func (l *Level) KindAtWorld(wx, wy float64) levelformat.TileKind {
	return l.TileAt(l.WorldToTile(wx, wy))
}

// SolidAt reports whether the action layer tile at col, row blocks
// movement. Out-of-range cells are open.
func (l *Level) SolidAt(col, row int) bool {
	return l.TileAt(col, row).Solid()
}

func (l *Level) IsSolidAt(wx, wy float64) bool {
	return l.SolidAt(l.WorldToTile(wx, wy))
}

func (l *Level) IsHazardAt(wx, wy float64) bool {
	return l.KindAtWorld(wx, wy).Hazard()
}

func (l *Level) IsLiquidAt(wx, wy float64) bool {
	return l.KindAtWorld(wx, wy).Liquid()
}

// OverlapsHazard reports whether any hazard tile intersects box.
func (l *Level) OverlapsHazard(box gamemath.Rect) bool {
	return l.overlaps(box, levelformat.TileKind.Hazard)
}

// OverlapsLiquid reports whether any liquid tile intersects box.
func (l *Level) OverlapsLiquid(box gamemath.Rect) bool {
	return l.overlaps(box, levelformat.TileKind.Liquid)
}

func (l *Level) overlaps(box gamemath.Rect, match func(levelformat.TileKind) bool) bool {
	if box.W <= 0 || box.H <= 0 {
		return false
	}
	c0, r0 := l.WorldToTile(box.X, box.Y)
	// exclusive far edges
	c1, r1 := l.WorldToTile(box.X+box.W-gamemath.ProbeInset, box.Y+box.H-gamemath.ProbeInset)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if match(l.TileAt(col, row)) {
				return true
			}
		}
	}
	return false
}

// TileWidth, TileHeight and Rows let a Level serve as a gamemath.Grid.
func (l *Level) TileWidth() float64  { return float64(l.Header.TileWidth) }
func (l *Level) TileHeight() float64 { return float64(l.Header.TileHeight) }
func (l *Level) Rows() int           { return int(l.Header.Height) }
func (l *Level) Cols() int           { return int(l.Header.Width) }

var _ gamemath.Grid = (*Level)(nil)
