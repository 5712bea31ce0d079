package gamemath

// ApplyFriction moves a speed toward zero by friction without crossing it.
func ApplyFriction(speed, friction float64) float64 {
	switch {
	case speed > friction:
		return speed - friction
	case speed < -friction:
		return speed + friction
	}
	return 0
}

// ClampSpeed limits a speed to [-max, max].
func ClampSpeed(speed, max float64) float64 {
	return Clamp(speed, -max, max)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Fall applies one tick of gravity to a vertical speed and limits the
// result to [maxRise, maxFall]. Negative speeds move up.
func Fall(vy, gravity, maxRise, maxFall float64) float64 {
	return Clamp(vy+gravity, maxRise, maxFall)
}
