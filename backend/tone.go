package backend

import (
	"encoding/binary"
	"math"

	"github.com/automoto/jlvl/config"
)

// TonePCM renders a tone as 16-bit little-endian stereo samples. A tone
// with no duration renders one second, sized to loop cleanly as a drone.
// Beeps fade out linearly so they end without a click.
func TonePCM(sampleRate int, t config.Tone, volume float64) []byte {
	frames := sampleRate
	fade := false
	if t.Millis > 0 {
		frames = sampleRate * t.Millis / 1000
		fade = true
	}
	if t.Freq > 0 && !fade {
		// Whole cycles only, so the loop point is silent.
		cycles := math.Max(1, math.Round(t.Freq))
		frames = int(math.Round(cycles * float64(sampleRate) / t.Freq))
	}

	buf := make([]byte, frames*4)
	for i := 0; i < frames; i++ {
		amp := volume
		if fade {
			amp *= 1 - float64(i)/float64(frames)
		}
		v := amp * math.Sin(2*math.Pi*t.Freq*float64(i)/float64(sampleRate))
		s := int16(clampUnit(v) * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(s))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(s))
	}
	return buf
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
