package encounter

import "math"

const (
	// slowStartFactor scales the opening speed against the average speed.
	slowStartFactor = 0.7
	// rampFactor is the speed gained across the whole window, as a share of
	// the average speed. The boss closes at about 1.3x average.
	rampFactor = 0.6

	minTargetTime = 1.0
)

// SpeedProfile is a linear speed ramp that covers Distance by TargetTime.
type SpeedProfile struct {
	Distance     float64
	TargetTime   float64
	BaseSpeed    float64
	Acceleration float64
}

// Calibrate computes a slow-start profile so that
// distance = base*T + 0.5*accel*T^2. The distance is clamped up to
// minDistance first so the base speed is always positive.
func Calibrate(distance, targetTime, minDistance float64) SpeedProfile {
	if minDistance <= 0 {
		minDistance = DefaultMinDistance
	}
	if math.IsNaN(distance) || distance < minDistance {
		distance = minDistance
	}
	if math.IsNaN(targetTime) || targetTime < minTargetTime {
		targetTime = minTargetTime
	}

	avg := distance / targetTime
	return SpeedProfile{
		Distance:     distance,
		TargetTime:   targetTime,
		BaseSpeed:    slowStartFactor * avg,
		Acceleration: rampFactor * avg / targetTime,
	}
}

// SpeedAt returns the calibrated speed after t milliseconds of approach.
func (p SpeedProfile) SpeedAt(t float64) float64 {
	if t < 0 {
		t = 0
	}
	return math.Max(p.BaseSpeed+p.Acceleration*t, 0)
}

// DistanceAt returns the distance covered after t milliseconds.
func (p SpeedProfile) DistanceAt(t float64) float64 {
	if t < 0 {
		t = 0
	}
	return p.BaseSpeed*t + 0.5*p.Acceleration*t*t
}

// BoostedSpeed applies the timer-expiry override max(speed*multiplier, floor).
func BoostedSpeed(speed, multiplier, floor float64) float64 {
	return math.Max(math.Max(speed*multiplier, floor), 0)
}
