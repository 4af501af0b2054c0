package scroll

import "github.com/milk9111/rendezvous/common"

// Blocker suspends scrolling and auto-advance while it blocks.
type Blocker interface {
	IsBlocking() bool
}

// Boundary is a camera scroll that only ever moves in the travel direction.
// The trailing edge follows the player; the leading edge is the trailing
// edge plus the view width, capped at the end of the level.
type Boundary struct {
	policy  *common.ActivityPolicy
	blocker Blocker

	direction  float64
	viewWidth  float64
	follow     float64
	levelStart float64
	levelEnd   float64

	trailing float64
	paused   bool
	stopped  bool
	held     bool
}

type BoundaryOptions struct {
	Direction  float64
	ViewWidth  float64
	Follow     float64 // trailing edge distance behind the player
	LevelStart float64
	LevelEnd   float64
}

func NewBoundary(opts BoundaryOptions, policy *common.ActivityPolicy, blocker Blocker) *Boundary {
	if opts.Direction >= 0 {
		opts.Direction = 1
	} else {
		opts.Direction = -1
	}
	return &Boundary{
		policy:     policy,
		blocker:    blocker,
		direction:  opts.Direction,
		viewWidth:  opts.ViewWidth,
		follow:     opts.Follow,
		levelStart: opts.LevelStart,
		levelEnd:   opts.LevelEnd,
		trailing:   opts.LevelStart,
	}
}

// Update advances the trailing edge toward the player. It never moves back.
func (b *Boundary) Update(playerPrimary float64) {
	if !b.Active() {
		return
	}
	target := playerPrimary - b.direction*b.follow
	if (target-b.trailing)*b.direction > 0 {
		b.trailing = target
	}
	maxTrailing := b.levelEnd - b.direction*b.viewWidth
	if (b.trailing-maxTrailing)*b.direction > 0 {
		b.trailing = maxTrailing
	}
	if (b.levelStart-b.trailing)*b.direction > 0 {
		b.trailing = b.levelStart
	}
}

// Active reports whether Update moves the boundary.
func (b *Boundary) Active() bool {
	if b.paused || b.stopped || b.held {
		return false
	}
	return b.blocker == nil || !b.blocker.IsBlocking()
}

// Trailing is the camera edge the player cannot scroll back past.
func (b *Boundary) Trailing() float64 { return b.trailing }

// Limit is the leading edge on the primary axis.
func (b *Boundary) Limit() (float64, bool) {
	if b.stopped {
		return 0, false
	}
	limit := b.trailing + b.direction*b.viewWidth
	if (limit-b.levelEnd)*b.direction > 0 {
		limit = b.levelEnd
	}
	return limit, true
}

// CameraX is the left edge of the view in world space.
func (b *Boundary) CameraX() float64 {
	if b.direction > 0 {
		return b.trailing
	}
	return b.trailing - b.viewWidth
}

// Hold freezes the boundary for the rest of the encounter.
func (b *Boundary) Hold() { b.held = true }

// Release lets the boundary scroll again.
func (b *Boundary) Release() { b.held = false }

func (b *Boundary) Held() bool { return b.held }

func (b *Boundary) Pause() bool {
	if !b.policy.CanPause() {
		return false
	}
	b.paused = true
	return true
}

func (b *Boundary) Resume() { b.paused = false }

// Stop disables the boundary until Restart.
func (b *Boundary) Stop() bool {
	if !b.policy.CanStop() {
		return false
	}
	b.stopped = true
	return true
}

// Restart returns the boundary to the start of the level.
func (b *Boundary) Restart() {
	b.trailing = b.levelStart
	b.paused = false
	b.stopped = false
	b.held = false
}
