package factory

import (
	"github.com/automoto/jlvl/archetypes"
	"github.com/automoto/jlvl/components"
	cfg "github.com/automoto/jlvl/config"
	"github.com/automoto/jlvl/shared/leveldata"
	"github.com/automoto/jlvl/shared/levelformat"
	"github.com/automoto/jlvl/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// CreatePlayer spawns the player centred on the level's spawn point.
func CreatePlayer(w donburi.World, space *resolv.Space, level *leveldata.Level) *donburi.Entry {
	player := archetypes.Player.Spawn(w)
	rec := level.Player()

	width, height := recordSize(rec, cfg.Player.DefaultWidth, cfg.Player.DefaultHeight)
	obj := resolv.NewObject(level.Spawn.X-width/2, level.Spawn.Y-height/2, width, height, tags.ResolvPlayer)
	obj.Data = player
	space.Add(obj)

	components.Object.SetValue(player, components.ObjectData{Object: obj})
	components.Record.SetValue(player, components.RecordData{Index: level.PlayerIndex, Kind: rec.Kind})
	components.Player.SetValue(player, components.PlayerData{
		Direction: cfg.DirectionRight,
	})
	components.Physics.SetValue(player, components.PhysicsData{
		GravityMult: levelformat.Q44Decode(rec.GravityMult),
		JumpMult:    levelformat.Q44Decode(rec.JumpMult),
		Friction:    cfg.Player.Friction,
		MaxSpeed:    cfg.Player.MaxSpeed,
	})

	return player
}

// recordSize returns an entity record's pixel size, falling back to the
// defaults for a zero dimension.
func recordSize(rec levelformat.Entity, defW, defH int) (float64, float64) {
	w, h := float64(rec.Width), float64(rec.Height)
	if w == 0 {
		w = float64(defW)
	}
	if h == 0 {
		h = float64(defH)
	}
	return w, h
}
