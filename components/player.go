package components

import (
	"github.com/yohamta/donburi"
)

type PlayerData struct {
	Direction    float64 // -1 left, 1 right
	InvulnFrames int     // Hazard immunity after a respawn
	JumpHeld     bool    // Jump was held last tick; a new jump needs a fresh press
	Respawns     int
}

var Player = donburi.NewComponentType[PlayerData]()
