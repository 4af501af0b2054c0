package scroll

import "github.com/milk9111/rendezvous/common"

// AutoAdvance forces the player forward at a minimum speed.
type AutoAdvance struct {
	policy  *common.ActivityPolicy
	blocker Blocker

	direction float64
	speed     float64

	paused  bool
	stopped bool
	held    bool
}

// NewAutoAdvance creates an auto-advance of speed units per millisecond.
func NewAutoAdvance(direction, speed float64, policy *common.ActivityPolicy, blocker Blocker) *AutoAdvance {
	if direction >= 0 {
		direction = 1
	} else {
		direction = -1
	}
	if speed < 0 {
		speed = 0
	}
	return &AutoAdvance{
		policy:    policy,
		blocker:   blocker,
		direction: direction,
		speed:     speed,
	}
}

func (a *AutoAdvance) Active() bool {
	if a.paused || a.stopped || a.held || a.speed == 0 {
		return false
	}
	return a.blocker == nil || !a.blocker.IsBlocking()
}

// Velocity is the forced primary-axis velocity, zero while inactive.
func (a *AutoAdvance) Velocity() float64 {
	if !a.Active() {
		return 0
	}
	return a.direction * a.speed
}

// Apply combines a requested velocity with the forced advance: the player
// may run faster than the advance but never slower.
func (a *AutoAdvance) Apply(requested float64) float64 {
	forced := a.Velocity()
	if forced == 0 {
		return requested
	}
	if (requested-forced)*a.direction < 0 {
		return forced
	}
	return requested
}

func (a *AutoAdvance) Hold() { a.held = true }

func (a *AutoAdvance) Release() { a.held = false }

func (a *AutoAdvance) Pause() bool {
	if !a.policy.CanPause() {
		return false
	}
	a.paused = true
	return true
}

func (a *AutoAdvance) Resume() { a.paused = false }

func (a *AutoAdvance) Stop() bool {
	if !a.policy.CanStop() {
		return false
	}
	a.stopped = true
	return true
}

func (a *AutoAdvance) Restart() {
	a.paused = false
	a.stopped = false
	a.held = false
}

// Holder can be frozen for the rest of an encounter and let go again.
type Holder interface {
	Hold()
	Release()
}

// Holders fans Hold and Release out to several collaborators.
type Holders []Holder

func (h Holders) Hold() {
	for _, holder := range h {
		if holder != nil {
			holder.Hold()
		}
	}
}

func (h Holders) Release() {
	for _, holder := range h {
		if holder != nil {
			holder.Release()
		}
	}
}
