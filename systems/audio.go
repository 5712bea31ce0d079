package systems

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/jlvl/backend"
	"github.com/automoto/jlvl/components"
	cfg "github.com/automoto/jlvl/config"
)

// UpdateAudio plays queued SFX and keeps the level's music running.
func UpdateAudio(a backend.Audio) System {
	return func(w donburi.World) {
		entry, ok := levelEntry(w)
		if !ok {
			return
		}
		audio := components.Audio.Get(entry)

		if cfg.Audio.Muted {
			if audio.MusicStarted {
				a.Stop()
				audio.MusicStarted = false
			}
			audio.PendingSFX = audio.PendingSFX[:0]
			return
		}

		if !audio.MusicStarted || audio.PlayingMusic != audio.Music {
			a.PlayMusic(audio.Music)
			audio.PlayingMusic = audio.Music
			audio.MusicStarted = true
		}
		for _, id := range audio.PendingSFX {
			a.PlaySFX(id)
		}
		audio.PendingSFX = audio.PendingSFX[:0]
	}
}
