package scroll

import "math"

// Countdown is the level timer. onExpire fires once when it reaches zero.
type Countdown struct {
	remaining float64
	fired     bool
	onExpire  func()
}

func NewCountdown(duration float64, onExpire func()) *Countdown {
	return &Countdown{remaining: math.Max(duration, 0), onExpire: onExpire}
}

func (c *Countdown) Tick(dt float64) {
	if c.fired || dt <= 0 {
		return
	}
	c.remaining = math.Max(c.remaining-dt, 0)
	if c.remaining == 0 {
		c.fired = true
		if c.onExpire != nil {
			c.onExpire()
		}
	}
}

func (c *Countdown) Remaining() float64 { return c.remaining }

func (c *Countdown) Expired() bool { return c.fired }
