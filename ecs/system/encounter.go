package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rendezvous/ecs"
	"github.com/milk9111/rendezvous/ecs/component"
	"github.com/milk9111/rendezvous/encounter"
	"github.com/milk9111/rendezvous/scroll"
)

// Camera shake queued when the boss and player meet.
const (
	MeetingShakeDuration  = 450.0
	MeetingShakeIntensity = 6.0
)

// EncounterSystem ticks the boss encounter and the level countdown that
// feeds its timer boost.
type EncounterSystem struct {
	sched     *encounter.Scheduler
	countdown *scroll.Countdown
}

// NewEncounterSystem wires a countdown of countdownMS to the scheduler's
// OnTimerEnd. A non-positive countdown disables the boost.
func NewEncounterSystem(sched *encounter.Scheduler, countdownMS float64) *EncounterSystem {
	es := &EncounterSystem{sched: sched}
	if countdownMS > 0 {
		es.countdown = scroll.NewCountdown(countdownMS, sched.OnTimerEnd)
	}
	return es
}

func (es *EncounterSystem) Update(w *ecs.World, dt float64) {
	if es.countdown != nil && es.sched.Running() && !es.sched.IsBlocking() && !es.sched.IsInBossPhase() {
		es.countdown.Tick(dt)
	}
	before := es.sched.Phase()
	es.sched.Update(dt)
	if before != encounter.PhaseMeeting && es.sched.Phase() == encounter.PhaseMeeting {
		RequestCameraShake(w, MeetingShakeDuration, MeetingShakeIntensity)
	}
}

func (es *EncounterSystem) Scheduler() *encounter.Scheduler { return es.sched }

// Countdown is nil when the level has no time limit.
func (es *EncounterSystem) Countdown() *scroll.Countdown { return es.countdown }

// PlayerPosition returns a reader of the player's transform. Once the player
// is gone it keeps reporting the last known position.
func PlayerPosition(w *ecs.World) func() cp.Vector {
	var last cp.Vector
	return func() cp.Vector {
		if _, t, ok := playerTransform(w); ok {
			last = cp.Vector{X: t.X, Y: t.Y}
		}
		return last
	}
}

// ClearHostiles destroys every hostile along with its physics body and
// returns how many were removed.
func ClearHostiles(w *ecs.World, physics *PhysicsSystem) int {
	var doomed []ecs.Entity
	ecs.ForEach(w, component.HostileTagComponent.Kind(), func(e ecs.Entity, _ *component.HostileTag) {
		doomed = append(doomed, e)
	})
	for _, e := range doomed {
		physics.Remove(e)
		ecs.DestroyEntity(w, e)
	}
	if len(doomed) > 0 {
		w.Events().Push(ecs.Event{Type: ecs.EventHostilesClear, Data: len(doomed)})
	}
	return len(doomed)
}
