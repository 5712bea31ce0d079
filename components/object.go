package components

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"

	"github.com/automoto/jlvl/shared/gamemath"
)

// ObjectData is an entity's box in world space. X/Y is the top-left corner.
type ObjectData struct {
	*resolv.Object
}

// Body returns the object as a centre-based collision body.
func (o ObjectData) Body(vx, vy float64) gamemath.Body {
	return gamemath.Body{
		X:     o.X + o.W/2,
		Y:     o.Y + o.H/2,
		VX:    vx,
		VY:    vy,
		HalfW: o.W / 2,
		HalfH: o.H / 2,
	}
}

// MoveTo places the object so its centre matches b, and refreshes its
// cells in the space.
func (o ObjectData) MoveTo(b gamemath.Body) {
	o.X = b.X - o.W/2
	o.Y = b.Y - o.H/2
	o.Update()
}

func (o ObjectData) Box() gamemath.Rect {
	return gamemath.Rect{X: o.X, Y: o.Y, W: o.W, H: o.H}
}

var Object = donburi.NewComponentType[ObjectData]()
