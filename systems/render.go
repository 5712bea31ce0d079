package systems

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/jlvl/backend"
	"github.com/automoto/jlvl/components"
	"github.com/automoto/jlvl/shared/levelformat"
	"github.com/automoto/jlvl/tags"
)

// DrawLevel clears to the level background and draws every non-empty
// tile, back layer first.
func DrawLevel(w donburi.World, r backend.Renderer) {
	entry, ok := levelEntry(w)
	if !ok {
		return
	}
	level := components.Level.Get(entry).Level
	r.Clear(level.Header.BackgroundID)

	tw, th := level.TileWidth(), level.TileHeight()
	for layer := 0; layer < len(level.Layers); layer++ {
		for row := 0; row < level.Rows(); row++ {
			for col := 0; col < level.Cols(); col++ {
				kind := levelformat.TileKind(level.TileIDAtLayer(layer, col, row))
				if kind == levelformat.TileEmpty || !kind.Valid() {
					continue
				}
				r.DrawTile(float64(col)*tw, float64(row)*th, tw, th, kind)
			}
		}
	}
}

// DrawEntities draws every spawned entity record. The player blinks while
// invulnerable.
func DrawEntities(w donburi.World, r backend.Renderer) {
	components.Record.Each(w, func(e *donburi.Entry) {
		if e.HasComponent(tags.Player) {
			if p := components.Player.Get(e); p.InvulnFrames/4%2 == 1 {
				return
			}
		}
		rec := components.Record.Get(e)
		obj := components.Object.Get(e)
		r.DrawEntity(obj.X, obj.Y, obj.W, obj.H, rec.Kind)
	})
}
