package ebitenbackend

import (
	"bytes"
	"log/slog"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/samber/oops"

	"github.com/automoto/jlvl/backend"
	cfg "github.com/automoto/jlvl/config"
	"github.com/automoto/jlvl/shared/errutil"
)

// Audio plays synthesized tones: a short beep per sound effect and a
// looping drone per background.
type Audio struct {
	context  *audio.Context
	sfxCache map[cfg.SoundID][]byte
	music    *audio.Player
	musicBG  uint8
}

var _ backend.Audio = (*Audio)(nil)

var (
	sharedContext *audio.Context
	contextOnce   sync.Once
)

// NewAudio returns the audio backend. Ebitengine allows one audio context
// per process, so every Audio shares it.
func NewAudio() *Audio {
	contextOnce.Do(func() {
		sharedContext = audio.NewContext(cfg.Audio.SampleRate)
	})
	return &Audio{
		context:  sharedContext,
		sfxCache: make(map[cfg.SoundID][]byte),
	}
}

func (a *Audio) PlaySFX(id cfg.SoundID) {
	if cfg.Audio.SFXVolume <= 0 {
		return
	}
	pcm, ok := a.sfxCache[id]
	if !ok {
		tone, known := cfg.Sound.SFX[id]
		if !known {
			return
		}
		pcm = backend.TonePCM(a.context.SampleRate(), tone, cfg.Audio.SFXVolume)
		a.sfxCache[id] = pcm
	}
	a.context.NewPlayerFromBytes(pcm).Play()
}

func (a *Audio) PlayMusic(background uint8) {
	if a.music != nil && a.musicBG == background {
		return
	}
	a.Stop()

	tone, ok := cfg.Sound.Music[background]
	if !ok || cfg.Audio.MusicVolume <= 0 {
		return
	}
	tone.Millis = 0
	pcm := backend.TonePCM(a.context.SampleRate(), tone, cfg.Audio.MusicVolume)
	loop := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
	player, err := a.context.NewPlayer(loop)
	if err != nil {
		err = oops.In("audio").With("background", background).Wrapf(err, "start music")
		errutil.LogWarn(slog.Default(), "music unavailable", err)
		return
	}
	player.Play()
	a.music = player
	a.musicBG = background
}

func (a *Audio) Stop() {
	if a.music == nil {
		return
	}
	_ = a.music.Close()
	a.music = nil
}
