package encounter

import (
	"errors"
	"fmt"
	"math"
)

const (
	DefaultMinDistance = 500.0
)

// Config is supplied once per encounter and never modified afterwards.
// Distances are world units, durations are milliseconds.
type Config struct {
	TotalDistance float64
	MinDistance   float64
	TimeBudget    float64
	SafetyMargin  float64

	Direction    float64
	TrackingRate float64

	WarningDistance float64
	ContactDistance float64
	PassMargin      float64
	MinBoundaryGap  float64
	BoundaryMargin  float64

	MeetingDuration   float64
	ArenaFormDuration float64

	TimerMultiplier float64
	TimerSpeedFloor float64

	FightTimeLimit float64

	Theme string
}

func DefaultConfig() Config {
	return Config{
		TotalDistance:     1780,
		MinDistance:       DefaultMinDistance,
		TimeBudget:        180000,
		SafetyMargin:      10000,
		Direction:         1,
		TrackingRate:      0.002,
		WarningDistance:   400,
		ContactDistance:   100,
		PassMargin:        20,
		MinBoundaryGap:    60,
		BoundaryMargin:    80,
		MeetingDuration:   1500,
		ArenaFormDuration: 1500,
		TimerMultiplier:   5,
		TimerSpeedFloor:   0.08,
		FightTimeLimit:    300000,
		Theme:             "ember",
	}
}

// TargetTime is the time budget minus the safety margin.
func (c Config) TargetTime() float64 {
	return math.Max(c.TimeBudget-c.SafetyMargin, minTargetTime)
}

// Validate reports every field that would be clamped or ignored by the
// scheduler. The scheduler itself accepts invalid configs.
func (c Config) Validate() error {
	var errs []error
	nonNegative := []struct {
		name  string
		value float64
	}{
		{"total_distance", c.TotalDistance},
		{"min_distance", c.MinDistance},
		{"safety_margin_ms", c.SafetyMargin},
		{"tracking_rate", c.TrackingRate},
		{"warning_distance", c.WarningDistance},
		{"contact_distance", c.ContactDistance},
		{"pass_margin", c.PassMargin},
		{"min_boundary_gap", c.MinBoundaryGap},
		{"boundary_margin", c.BoundaryMargin},
		{"meeting_duration_ms", c.MeetingDuration},
		{"arena_form_duration_ms", c.ArenaFormDuration},
		{"timer_speed_floor", c.TimerSpeedFloor},
		{"fight_time_limit_ms", c.FightTimeLimit},
	}
	for _, f := range nonNegative {
		if f.value < 0 || math.IsNaN(f.value) {
			errs = append(errs, fmt.Errorf("encounter: %s must be >= 0, got %v", f.name, f.value))
		}
	}
	if c.TimeBudget <= c.SafetyMargin {
		errs = append(errs, fmt.Errorf("encounter: time_budget_ms (%v) must exceed safety_margin_ms (%v)", c.TimeBudget, c.SafetyMargin))
	}
	if c.Direction != 1 && c.Direction != -1 {
		errs = append(errs, fmt.Errorf("encounter: direction must be 1 or -1, got %v", c.Direction))
	}
	if c.TimerMultiplier < 1 {
		errs = append(errs, fmt.Errorf("encounter: timer_multiplier must be >= 1, got %v", c.TimerMultiplier))
	}
	if c.ContactDistance >= c.WarningDistance {
		errs = append(errs, fmt.Errorf("encounter: contact_distance (%v) must be below warning_distance (%v)", c.ContactDistance, c.WarningDistance))
	}
	return errors.Join(errs...)
}

// normalized returns a copy the scheduler can run without further checks.
func (c Config) normalized() Config {
	clampZero := func(v float64) float64 {
		if v < 0 || math.IsNaN(v) {
			return 0
		}
		return v
	}
	if c.MinDistance <= 0 {
		c.MinDistance = DefaultMinDistance
	}
	if c.TotalDistance < c.MinDistance || math.IsNaN(c.TotalDistance) {
		c.TotalDistance = c.MinDistance
	}
	if c.Direction < 0 {
		c.Direction = -1
	} else {
		c.Direction = 1
	}
	c.SafetyMargin = clampZero(c.SafetyMargin)
	c.TrackingRate = clampZero(c.TrackingRate)
	c.WarningDistance = clampZero(c.WarningDistance)
	c.ContactDistance = clampZero(c.ContactDistance)
	c.PassMargin = clampZero(c.PassMargin)
	c.MinBoundaryGap = clampZero(c.MinBoundaryGap)
	c.BoundaryMargin = clampZero(c.BoundaryMargin)
	c.MeetingDuration = clampZero(c.MeetingDuration)
	c.ArenaFormDuration = clampZero(c.ArenaFormDuration)
	c.TimerSpeedFloor = clampZero(c.TimerSpeedFloor)
	c.FightTimeLimit = clampZero(c.FightTimeLimit)
	if c.TimerMultiplier < 1 || math.IsNaN(c.TimerMultiplier) {
		c.TimerMultiplier = 1
	}
	return c
}
