package factory

import (
	"github.com/automoto/jlvl/archetypes"
	"github.com/automoto/jlvl/components"
	cfg "github.com/automoto/jlvl/config"
	"github.com/automoto/jlvl/shared/leveldata"
	"github.com/automoto/jlvl/tags"
	"github.com/solarlune/resolv"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

// CreatePlatform spawns a moving platform at its declared tile. A platform
// with a range slides between range_min and range_max, measured at its
// left edge, and back again forever.
func CreatePlatform(w donburi.World, space *resolv.Space, level *leveldata.Level, index int) *donburi.Entry {
	platform := archetypes.Platform.Spawn(w)
	rec := level.Entities[index]
	tw, th := level.TileWidth(), level.TileHeight()

	width, height := recordSize(rec, int(tw), int(th))
	x, y := float64(rec.Left)*tw, float64(rec.Top)*th
	obj := resolv.NewObject(x, y, width, height, tags.ResolvPlatform)
	obj.Data = platform
	space.Add(obj)

	components.Object.SetValue(platform, components.ObjectData{Object: obj})
	components.Record.SetValue(platform, components.RecordData{Index: index, Kind: rec.Kind})

	data := components.PlatformData{}
	if rec.RangeMax > rec.RangeMin {
		from, to := float64(rec.RangeMin)*tw, float64(rec.RangeMax)*tw
		speed := cfg.Platform.DefaultSpeed
		if rec.Speed > 0 {
			speed = float64(rec.Speed)
		}
		leg := float32((to - from) / speed)
		seq := gween.NewSequence(
			gween.New(float32(from), float32(to), leg, ease.Linear),
			gween.New(float32(to), float32(from), leg, ease.Linear),
		)
		seq.SetLoop(-1)
		// Start the cycle at the declared position.
		if x > from && x < to {
			seq.Update(float32((x - from) / speed))
		}
		data.Tween = seq
	}
	components.Platform.SetValue(platform, data)

	return platform
}
