package components

import (
	"github.com/yohamta/donburi"
)

// EnemyData drives a patrolling enemy.
type EnemyData struct {
	PatrolLeft  float64 // World X bounds of the patrol; both 0 means walls only
	PatrolRight float64
	PatrolSpeed float64 // pixels per tick
	Direction   float64
}

var Enemy = donburi.NewComponentType[EnemyData]()
