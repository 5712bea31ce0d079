package config

// SoundID represents a logical sound effect
type SoundID int

const (
	SoundNone SoundID = iota
	// Movement sounds
	SoundJump
	SoundLand
	SoundHurt
	// Trigger sounds
	SoundCoin
	SoundKey
	SoundBook
	SoundMessage
	SoundExit
)

// AudioConfig contains audio-related configuration values
type AudioConfig struct {
	SampleRate  int     `koanf:"sample_rate"`
	MusicVolume float64 `koanf:"music_volume"`
	SFXVolume   float64 `koanf:"sfx_volume"`
	Muted       bool    `koanf:"muted"`
}

// Tone is a synthesized beep.
type Tone struct {
	Freq   float64 // Hz
	Millis int
}

// SoundConfig maps sound ids to tones and background ids to music drones.
type SoundConfig struct {
	SFX   map[SoundID]Tone
	Music map[uint8]Tone
}

var Audio AudioConfig
var Sound SoundConfig

func defaultAudio() AudioConfig {
	return AudioConfig{
		SampleRate:  44100,
		MusicVolume: 0.25,
		SFXVolume:   0.6,
	}
}

func defaultSound() SoundConfig {
	return SoundConfig{
		SFX: map[SoundID]Tone{
			SoundJump:    {Freq: 520, Millis: 60},
			SoundLand:    {Freq: 180, Millis: 40},
			SoundHurt:    {Freq: 110, Millis: 200},
			SoundCoin:    {Freq: 990, Millis: 80},
			SoundKey:     {Freq: 740, Millis: 150},
			SoundBook:    {Freq: 660, Millis: 120},
			SoundMessage: {Freq: 440, Millis: 50},
			SoundExit:    {Freq: 330, Millis: 300},
		},
		Music: map[uint8]Tone{
			1: {Freq: 196},
			2: {Freq: 98},
			3: {Freq: 147},
			4: {Freq: 123},
		},
	}
}
