package levelformat

import "math"

// Q44Max is the largest value a Q4.4 byte can hold.
const Q44Max = 255.0 / 16.0

// Q44Encode converts v to Q4.4 by round(v*16). It reports false when v is
// not finite or outside [0, Q44Max].
func Q44Encode(v float64) (uint8, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > Q44Max {
		return 0, false
	}
	return uint8(math.Round(v * 16)), true
}

// Q44Decode converts a Q4.4 byte back to a float.
func Q44Decode(b uint8) float64 {
	return float64(b) / 16
}

// Q78Encode converts v to Q7.8 by round(v*256). It reports false when v is
// not finite or the scaled value does not fit an int16.
func Q78Encode(v float64) (int16, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	scaled := math.Round(v * 256)
	if scaled < math.MinInt16 || scaled > math.MaxInt16 {
		return 0, false
	}
	return int16(scaled), true
}

// Q78Decode converts a Q7.8 value back to a float.
func Q78Decode(v int16) float64 {
	return float64(v) / 256
}
