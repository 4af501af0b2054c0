package system

import (
	"log/slog"

	"github.com/milk9111/rendezvous/ecs"
	"github.com/milk9111/rendezvous/ecs/component"
	"github.com/milk9111/rendezvous/ecs/entity"
)

// EncounterState is the part of the encounter that gameplay systems defer to.
type EncounterState interface {
	IsBlocking() bool
	IsInBossPhase() bool
}

var spawnOffsets = []float64{0, -140, 140, -70, 70}

type SpawnSystem struct {
	state     EncounterState
	direction float64
	log       *slog.Logger
}

func NewSpawnSystem(state EncounterState, direction float64, logger *slog.Logger) *SpawnSystem {
	if logger == nil {
		logger = slog.Default()
	}
	if direction >= 0 {
		direction = 1
	} else {
		direction = -1
	}
	return &SpawnSystem{state: state, direction: direction, log: logger.With("system", "spawn")}
}

// Suspended reports whether the encounter currently forbids spawning.
func (s *SpawnSystem) Suspended() bool {
	return s.state != nil && (s.state.IsBlocking() || s.state.IsInBossPhase())
}

func (s *SpawnSystem) Update(w *ecs.World, dt float64) {
	if s.Suspended() || dt <= 0 {
		return
	}
	_, player, ok := playerTransform(w)
	if !ok {
		return
	}
	alive := ecs.Count(w, component.HostileTagComponent.Kind())

	ecs.ForEach(w, component.SpawnerComponent.Kind(), func(_ ecs.Entity, sp *component.Spawner) {
		if sp.Interval <= 0 {
			return
		}
		sp.Countdown -= dt
		for sp.Countdown <= 0 {
			sp.Countdown += sp.Interval
			if alive >= sp.MaxAlive {
				continue
			}
			x := player.X + s.direction*sp.Ahead
			y := player.Y + spawnOffsets[sp.Spawned%len(spawnOffsets)]
			e, err := entity.NewHostileAt(w, x, y, sp.Radius, sp.Speed)
			if err != nil {
				s.log.Error("spawn hostile", "err", err)
				return
			}
			sp.Spawned++
			alive++
			w.Events().Push(ecs.Event{Type: ecs.EventHostileSpawned, Data: e})
		}
	})
}
