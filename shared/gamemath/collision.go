package gamemath

import "math"

// Probe margins in world units. Probes start ProbeInset inside a body's
// edges and reach ProbeReach past the edge they test, so tiles that only
// touch a corner are not reported.
const (
	ProbeInset = 0.5
	ProbeReach = 0.5
)

// Grid is the solidity view of a tile map the resolver probes.
type Grid interface {
	SolidAt(col, row int) bool
	TileWidth() float64
	TileHeight() float64
	Rows() int
}

// Rect is an axis-aligned rectangle with its top-left corner at X, Y.
type Rect struct {
	X, Y, W, H float64
}

// Overlaps reports whether r and o share any area. Touching edges do not
// count.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Body is a moving box centred on X, Y.
type Body struct {
	X, Y         float64
	VX, VY       float64
	HalfW, HalfH float64
}

func (b Body) Left() float64   { return b.X - b.HalfW }
func (b Body) Right() float64  { return b.X + b.HalfW }
func (b Body) Top() float64    { return b.Y - b.HalfH }
func (b Body) Bottom() float64 { return b.Y + b.HalfH }

// Box returns the body's bounding rectangle.
func (b Body) Box() Rect {
	return Rect{X: b.Left(), Y: b.Top(), W: b.HalfW * 2, H: b.HalfH * 2}
}

// TileOf floor-divides a world coordinate by a tile size.
func TileOf(v, size float64) int {
	return int(math.Floor(v / size))
}

// ResolveCeiling stops an upward-moving body at the bottom of a solid tile
// above it. It reports whether the body hit.
func ResolveCeiling(g Grid, b Body) (Body, bool) {
	if b.VY >= 0 {
		return b, false
	}
	tw, th := g.TileWidth(), g.TileHeight()
	row := TileOf(b.Top()-ProbeReach, th)
	left := TileOf(b.Left()+ProbeInset, tw)
	right := TileOf(b.Right()-ProbeInset, tw)
	if !g.SolidAt(left, row) && !g.SolidAt(right, row) {
		return b, false
	}
	b.Y = float64(row+1)*th + b.HalfH
	b.VY = 0
	return b, true
}

// ResolveFloor lands a falling or resting body on top of a solid tile
// below it. It reports whether the body is standing on the floor.
func ResolveFloor(g Grid, b Body) (Body, bool) {
	if b.VY < 0 {
		return b, false
	}
	tw, th := g.TileWidth(), g.TileHeight()
	row := TileOf(b.Bottom()+ProbeReach, th)
	left := TileOf(b.Left()+ProbeInset, tw)
	right := TileOf(b.Right()-ProbeInset, tw)
	if !g.SolidAt(left, row) && !g.SolidAt(right, row) {
		return b, false
	}
	b.Y = float64(row)*th - b.HalfH
	b.VY = 0
	return b, true
}

// ResolveWalls stops a horizontally moving body at the first solid column
// past its leading edge, sampling the top, middle and bottom of the body.
func ResolveWalls(g Grid, b Body) (Body, bool) {
	if b.VX == 0 {
		return b, false
	}
	tw, th := g.TileWidth(), g.TileHeight()

	var col int
	if b.VX > 0 {
		col = TileOf(b.Right()+ProbeReach, tw)
	} else {
		col = TileOf(b.Left()-ProbeReach, tw)
	}
	samples := [3]float64{b.Top() + ProbeInset, b.Y, b.Bottom() - ProbeInset}
	hit := false
	for _, y := range samples {
		if g.SolidAt(col, TileOf(y, th)) {
			hit = true
			break
		}
	}
	if !hit {
		return b, false
	}

	if b.VX > 0 {
		b.X = float64(col)*tw - b.HalfW
	} else {
		b.X = float64(col+1)*tw + b.HalfW
	}
	b.VX = 0
	return b, true
}

// GroundScan looks down from the body's feet, one tile row at a time for
// at most maxTiles rows, and returns the centre Y that rests the body on
// the first solid row found.
func GroundScan(g Grid, b Body, maxTiles int) (float64, bool) {
	tw, th := g.TileWidth(), g.TileHeight()
	left := TileOf(b.Left()+ProbeInset, tw)
	right := TileOf(b.Right()-ProbeInset, tw)
	start := TileOf(b.Bottom(), th)

	for i := 0; i < maxTiles; i++ {
		row := start + i
		if row >= g.Rows() {
			return b.Y, false
		}
		if row < 0 {
			continue
		}
		if g.SolidAt(left, row) || g.SolidAt(right, row) {
			return float64(row)*th - b.HalfH, true
		}
	}
	return b.Y, false
}
