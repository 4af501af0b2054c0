package common

import "math"

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// FrameMillis is the tick length at ebiten's default 60 TPS.
	FrameMillis = 1000.0 / 60.0
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// SmoothingFactor converts a per-millisecond exponential rate into the lerp
// weight for a step of dt milliseconds. The result is always in [0, 1).
func SmoothingFactor(rate, dt float64) float64 {
	if rate <= 0 || dt <= 0 {
		return 0
	}
	return 1 - math.Exp(-rate*dt)
}
