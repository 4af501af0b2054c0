package encounter

import (
	"math"

	"github.com/milk9111/rendezvous/common"
)

// ArenaTimer reports arena formation progress over a fixed duration.
type ArenaTimer struct {
	duration float64
	elapsed  float64
}

func NewArenaTimer(duration float64) *ArenaTimer {
	return &ArenaTimer{duration: duration}
}

func (t *ArenaTimer) Tick(dt float64) {
	if dt > 0 {
		t.elapsed += dt
	}
}

// Progress is elapsed/duration clamped to [0, 1].
func (t *ArenaTimer) Progress() float64 {
	if t.duration <= 0 {
		return 1
	}
	return common.Clamp01(t.elapsed / t.duration)
}

func (t *ArenaTimer) Remaining() float64 {
	return math.Max(t.duration-t.elapsed, 0)
}

func (t *ArenaTimer) Done() bool { return t.elapsed >= t.duration }

func (t *ArenaTimer) Reset() { t.elapsed = 0 }
