package systems

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/jlvl/components"
	cfg "github.com/automoto/jlvl/config"
	"github.com/automoto/jlvl/shared/gamemath"
	"github.com/automoto/jlvl/shared/leveldata"
	"github.com/automoto/jlvl/tags"
)

// UpdatePhysics applies gravity and integrates every body against the tile
// grid: walls on the horizontal move, then ceiling and floor on the
// vertical one. Bodies that miss the floor can land on a platform.
func UpdatePhysics(w donburi.World) {
	entry, ok := levelEntry(w)
	if !ok {
		return
	}
	level := components.Level.Get(entry).Level

	gravity := level.Gravity
	if gravity == 0 {
		gravity = cfg.Physics.Gravity
	}

	components.Physics.Each(w, func(e *donburi.Entry) {
		physics := components.Physics.Get(e)
		obj := components.Object.Get(e)
		body := obj.Body(physics.SpeedX, physics.SpeedY)

		physics.InLiquid = level.OverlapsLiquid(body.Box())
		g := gravity * physics.GravityMult
		maxFall := cfg.Physics.MaxFallSpeed
		if physics.InLiquid {
			g *= cfg.Physics.LiquidGravityScale
			body.VY *= cfg.Physics.LiquidDrag
			maxFall = cfg.Physics.LiquidMaxFallSpeed
		}
		body.VY = gamemath.Fall(body.VY, g, cfg.Physics.MaxRiseSpeed, maxFall)
		prevBottom := body.Bottom()

		body.X += body.VX
		body, physics.HitWall = gamemath.ResolveWalls(level, body)

		body.Y += body.VY
		if cfg.Collision.CeilingEveryTick || !physics.OnGround {
			body, _ = gamemath.ResolveCeiling(level, body)
		}
		body, landed := gamemath.ResolveFloor(level, body)

		physics.Riding = nil
		if !landed {
			if p, ok := landOnPlatform(*obj, &body, prevBottom); ok {
				landed = true
				physics.Riding = p
			}
		}

		if landed && !physics.OnGround && e.HasComponent(tags.Player) {
			PlaySFX(w, cfg.SoundLand)
		}
		physics.OnGround = landed
		physics.SpeedX, physics.SpeedY = body.VX, body.VY
		obj.MoveTo(body)
	})
}

// landOnPlatform rests a falling body on a platform whose top it was above
// at the start of the tick.
func landOnPlatform(obj components.ObjectData, body *gamemath.Body, prevBottom float64) (*donburi.Entry, bool) {
	if body.VY < 0 {
		return nil, false
	}
	obj.MoveTo(*body)
	check := obj.Check(0, gamemath.ProbeReach, tags.ResolvPlatform)
	if check == nil {
		return nil, false
	}
	for _, p := range check.Objects {
		if p.X >= body.Right() || p.X+p.W <= body.Left() {
			continue
		}
		if prevBottom > p.Y+gamemath.ProbeReach || body.Bottom()+gamemath.ProbeReach < p.Y {
			continue
		}
		entry, ok := p.Data.(*donburi.Entry)
		if !ok {
			continue
		}
		body.Y = p.Y - body.HalfH
		body.VY = 0
		return entry, true
	}
	return nil, false
}

// respawn puts a body back at the level's spawn point at rest.
func respawn(level *leveldata.Level, obj *components.ObjectData, physics *components.PhysicsData) {
	obj.MoveTo(gamemath.Body{X: level.Spawn.X, Y: level.Spawn.Y, HalfW: obj.W / 2, HalfH: obj.H / 2})
	physics.SpeedX, physics.SpeedY = 0, 0
	physics.OnGround = false
	physics.Riding = nil
}
