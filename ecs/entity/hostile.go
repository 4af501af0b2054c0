package entity

import (
	"fmt"

	"github.com/milk9111/rendezvous/ecs"
	"github.com/milk9111/rendezvous/ecs/component"
)

func NewHostileAt(w *ecs.World, x, y, radius, speed float64) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	err := addAll(w, e,
		func() error { return ecs.Add(w, e, component.HostileTagComponent.Kind(), &component.HostileTag{}) },
		func() error { return ecs.Add(w, e, component.HostileComponent.Kind(), &component.Hostile{Speed: speed}) },
		func() error { return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}) },
		func() error { return ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}) },
		func() error {
			return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Radius: radius, Mass: 1, Friction: 0.2})
		},
	)
	if err != nil {
		return 0, fmt.Errorf("hostile: %w", err)
	}
	return e, nil
}
