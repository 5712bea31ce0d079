package factory

import (
	"github.com/automoto/jlvl/archetypes"
	"github.com/automoto/jlvl/components"
	cfg "github.com/automoto/jlvl/config"
	"github.com/automoto/jlvl/shared/gamemath"
	"github.com/automoto/jlvl/shared/leveldata"
	"github.com/automoto/jlvl/shared/levelformat"
	"github.com/automoto/jlvl/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// CreateEnemy spawns a patrolling enemy from record index. The enemy is
// dropped onto the first floor below its declared tile.
func CreateEnemy(w donburi.World, space *resolv.Space, level *leveldata.Level, index int) *donburi.Entry {
	enemy := archetypes.Enemy.Spawn(w)
	rec := level.Entities[index]
	tw, th := level.TileWidth(), level.TileHeight()

	width, height := recordSize(rec, cfg.Enemy.DefaultWidth, cfg.Enemy.DefaultHeight)
	body := gamemath.Body{
		X:     (float64(rec.Left) + 0.5) * tw,
		Y:     (float64(rec.Top)+1)*th - height/2,
		HalfW: width / 2,
		HalfH: height / 2,
	}
	if y, ok := gamemath.GroundScan(level, body, cfg.Physics.GroundScanTiles); ok {
		body.Y = y
	}

	obj := resolv.NewObject(body.Left(), body.Top(), width, height, tags.ResolvEnemy)
	obj.Data = enemy
	space.Add(obj)

	speed := cfg.Enemy.DefaultSpeed
	if rec.Speed > 0 {
		speed = float64(rec.Speed) * cfg.Enemy.SpeedScale
	}
	enemyData := components.EnemyData{
		PatrolSpeed: speed,
		Direction:   cfg.DirectionLeft,
	}
	if rec.RangeMax > rec.RangeMin {
		enemyData.PatrolLeft = float64(rec.RangeMin) * tw
		enemyData.PatrolRight = (float64(rec.RangeMax) + 1) * tw
	}

	components.Object.SetValue(enemy, components.ObjectData{Object: obj})
	components.Record.SetValue(enemy, components.RecordData{Index: index, Kind: rec.Kind})
	components.Enemy.SetValue(enemy, enemyData)
	components.Physics.SetValue(enemy, components.PhysicsData{
		GravityMult: levelformat.Q44Decode(rec.GravityMult),
		JumpMult:    levelformat.Q44Decode(rec.JumpMult),
		MaxSpeed:    speed,
	})

	return enemy
}
