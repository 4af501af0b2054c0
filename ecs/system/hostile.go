package system

import (
	"math"

	"github.com/milk9111/rendezvous/ecs"
	"github.com/milk9111/rendezvous/ecs/component"
)

// HostileSystem steers every hostile straight at the player.
type HostileSystem struct{}

func NewHostileSystem() *HostileSystem {
	return &HostileSystem{}
}

func (h *HostileSystem) Update(w *ecs.World, _ float64) {
	_, player, ok := playerTransform(w)
	if !ok {
		return
	}
	ecs.ForEach3(w, component.HostileComponent.Kind(), component.TransformComponent.Kind(), component.VelocityComponent.Kind(),
		func(_ ecs.Entity, hostile *component.Hostile, t *component.Transform, vel *component.Velocity) {
			dx := player.X - t.X
			dy := player.Y - t.Y
			n := math.Hypot(dx, dy)
			if n < 1e-6 {
				vel.X, vel.Y = 0, 0
				return
			}
			vel.X = dx / n * hostile.Speed
			vel.Y = dy / n * hostile.Speed
		})
}

func playerTransform(w *ecs.World) (ecs.Entity, *component.Transform, bool) {
	e, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return 0, nil, false
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return 0, nil, false
	}
	return e, t, true
}
