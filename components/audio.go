package components

import (
	cfg "github.com/automoto/jlvl/config"
	"github.com/yohamta/donburi"
)

// AudioData stores global audio state (singleton component)
type AudioData struct {
	Music        uint8 // Background id whose drone should play
	PlayingMusic uint8
	MusicStarted bool
	PendingSFX   []cfg.SoundID
}

var Audio = donburi.NewComponentType[AudioData]()
