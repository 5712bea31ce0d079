package components

import (
	"github.com/yohamta/donburi"
)

type PhysicsData struct {
	SpeedX      float64
	SpeedY      float64
	GravityMult float64 // record gravity_multiplier, 1 = level gravity
	JumpMult    float64
	Friction    float64
	MaxSpeed    float64
	OnGround    bool
	InLiquid    bool
	HitWall     bool
	// Platform the body stood on at the end of the last tick
	Riding *donburi.Entry
}

var Physics = donburi.NewComponentType[PhysicsData]()
