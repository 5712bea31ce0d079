package systems

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/jlvl/components"
	cfg "github.com/automoto/jlvl/config"
	"github.com/automoto/jlvl/tags"
)

// UpdateHazards sends the player back to the level spawn after touching a
// hazard tile or an enemy, or after falling out of the level.
func UpdateHazards(w donburi.World) {
	entry, ok := levelEntry(w)
	if !ok {
		return
	}
	playerEntry, ok := tags.Player.First(w)
	if !ok {
		return
	}
	level := components.Level.Get(entry).Level
	player := components.Player.Get(playerEntry)
	obj := components.Object.Get(playerEntry)

	fell := obj.Y > level.PixelHeight()
	if player.InvulnFrames > 0 && !fell {
		return
	}
	box := obj.Box()
	if !fell && !level.OverlapsHazard(box) && !touchesEnemy(*obj) {
		return
	}

	respawn(level, obj, components.Physics.Get(playerEntry))
	player.InvulnFrames = cfg.Player.RespawnInvulnFrames
	player.Respawns++
	PlaySFX(w, cfg.SoundHurt)
}

func touchesEnemy(obj components.ObjectData) bool {
	check := obj.Check(0, 0, tags.ResolvEnemy)
	if check == nil {
		return false
	}
	box := obj.Box()
	for _, o := range check.Objects {
		if box.Overlaps(components.ObjectData{Object: o}.Box()) {
			return true
		}
	}
	return false
}
