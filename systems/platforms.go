package systems

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/jlvl/components"
	cfg "github.com/automoto/jlvl/config"
	"github.com/automoto/jlvl/tags"
)

// UpdatePlatforms advances each platform's tween and carries whatever
// stood on it last tick along by the same distance.
func UpdatePlatforms(w donburi.World) {
	dt := float32(1) / float32(cfg.Platform.TPS)

	tags.Platform.Each(w, func(e *donburi.Entry) {
		platform := components.Platform.Get(e)
		platform.DX = 0
		if platform.Tween == nil {
			return
		}
		obj := components.Object.Get(e)
		x, _, _ := platform.Tween.Update(dt)
		platform.DX = float64(x) - obj.X
		obj.X = float64(x)
		obj.Update()
	})

	components.Physics.Each(w, func(e *donburi.Entry) {
		physics := components.Physics.Get(e)
		if physics.Riding == nil || !physics.Riding.Valid() {
			return
		}
		dx := components.Platform.Get(physics.Riding).DX
		if dx == 0 {
			return
		}
		obj := components.Object.Get(e)
		obj.X += dx
		obj.Update()
	})
}
