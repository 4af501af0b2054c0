package encounter

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rendezvous/common"
)

// Boss is the pursuing actor. X is the primary axis: the boss advances along
// it at the scheduled speed. Y tracks the player with exponential smoothing
// so the boss converges sideways without ever overtaking the player's lane.
type Boss struct {
	start        cp.Vector
	position     cp.Vector
	speed        float64
	direction    float64
	trackingRate float64
}

func newBoss(start cp.Vector, direction, trackingRate float64) *Boss {
	return &Boss{
		start:        start,
		position:     start,
		direction:    direction,
		trackingRate: trackingRate,
	}
}

func (b *Boss) Position() cp.Vector { return b.position }

// Speed is the speed used by the most recent advance.
func (b *Boss) Speed() float64 { return b.speed }

// Advance moves the boss speed*dt along the primary axis and smooths Y
// toward target.
func (b *Boss) Advance(speed, dt float64, target cp.Vector) {
	if speed < 0 {
		speed = 0
	}
	b.speed = speed
	if dt <= 0 {
		return
	}
	b.position.X += b.direction * speed * dt
	b.position.Y = common.Lerp(b.position.Y, target.Y, common.SmoothingFactor(b.trackingRate, dt))
}

func (b *Boss) reset() {
	b.position = b.start
	b.speed = 0
}
