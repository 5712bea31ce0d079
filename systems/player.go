package systems

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/jlvl/components"
	cfg "github.com/automoto/jlvl/config"
	"github.com/automoto/jlvl/shared/gamemath"
	"github.com/automoto/jlvl/tags"
)

// UpdatePlayer turns input into horizontal acceleration and jumps.
func UpdatePlayer(w donburi.World) {
	entry, ok := levelEntry(w)
	if !ok {
		return
	}
	playerEntry, ok := tags.Player.First(w)
	if !ok {
		return
	}
	input := components.Input.Get(entry)
	player := components.Player.Get(playerEntry)
	physics := components.Physics.Get(playerEntry)

	left := input.Pressed(cfg.ActionMoveLeft)
	right := input.Pressed(cfg.ActionMoveRight)
	switch {
	case left && !right:
		physics.SpeedX -= cfg.Player.Acceleration
		player.Direction = cfg.DirectionLeft
	case right && !left:
		physics.SpeedX += cfg.Player.Acceleration
		player.Direction = cfg.DirectionRight
	default:
		physics.SpeedX = gamemath.ApplyFriction(physics.SpeedX, physics.Friction)
	}
	physics.SpeedX = gamemath.ClampSpeed(physics.SpeedX, physics.MaxSpeed)

	jump := input.Pressed(cfg.ActionJump)
	if jump && !player.JumpHeld && physics.OnGround && !input.ActionConsumed {
		physics.SpeedY = -cfg.Player.JumpSpeed * physics.JumpMult
		physics.OnGround = false
		physics.Riding = nil
		PlaySFX(w, cfg.SoundJump)
	}
	player.JumpHeld = jump

	if player.InvulnFrames > 0 {
		player.InvulnFrames--
	}
}
