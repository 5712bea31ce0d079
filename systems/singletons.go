package systems

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/jlvl/components"
	cfg "github.com/automoto/jlvl/config"
)

// levelEntry returns the level singleton. Every system is a no-op in a
// world that has none.
func levelEntry(w donburi.World) (*donburi.Entry, bool) {
	return components.Level.First(w)
}

// PlaySFX queues a sound effect for the audio system.
func PlaySFX(w donburi.World, sound cfg.SoundID) {
	entry, ok := levelEntry(w)
	if !ok {
		return
	}
	audio := components.Audio.Get(entry)
	audio.PendingSFX = append(audio.PendingSFX, sound)
}
