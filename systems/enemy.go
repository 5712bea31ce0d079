package systems

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/jlvl/components"
	"github.com/automoto/jlvl/tags"
)

// UpdateEnemies walks every enemy along its patrol. An enemy turns around
// at a wall or at either end of its range.
func UpdateEnemies(w donburi.World) {
	tags.Enemy.Each(w, func(e *donburi.Entry) {
		enemy := components.Enemy.Get(e)
		physics := components.Physics.Get(e)
		obj := components.Object.Get(e)

		if physics.HitWall {
			enemy.Direction = -enemy.Direction
		}
		if enemy.PatrolRight > enemy.PatrolLeft {
			if enemy.Direction < 0 && obj.X <= enemy.PatrolLeft {
				enemy.Direction = 1
			} else if enemy.Direction > 0 && obj.X+obj.W >= enemy.PatrolRight {
				enemy.Direction = -1
			}
		}
		physics.SpeedX = enemy.Direction * enemy.PatrolSpeed
	})
}
