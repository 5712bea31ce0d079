package components

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// PlatformData moves a platform back and forth along its range.
type PlatformData struct {
	Tween *gween.Sequence // nil for a platform with no range
	DX    float64         // Horizontal movement applied this tick
}

var Platform = donburi.NewComponentType[PlatformData]()
