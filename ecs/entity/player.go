package entity

import (
	"fmt"

	"github.com/milk9111/rendezvous/ecs"
	"github.com/milk9111/rendezvous/ecs/component"
	"github.com/milk9111/rendezvous/prefabs"
)

// NewPlayer creates the controllable player at the spec position.
func NewPlayer(w *ecs.World, spec prefabs.PlayerSpec) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	err := addAll(w, e,
		func() error { return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}) },
		func() error {
			return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{MoveSpeed: spec.MoveSpeed})
		},
		func() error { return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}) },
		func() error {
			return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: spec.X, Y: spec.Y})
		},
		func() error { return ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}) },
		func() error {
			return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Radius: spec.Radius, Mass: 1})
		},
	)
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	return e, nil
}

func addAll(w *ecs.World, e ecs.Entity, steps ...func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			ecs.DestroyEntity(w, e)
			return err
		}
	}
	return nil
}
