package entity

import (
	"fmt"

	"github.com/milk9111/rendezvous/ecs"
	"github.com/milk9111/rendezvous/ecs/component"
	"github.com/milk9111/rendezvous/prefabs"
)

// NewSpawner creates the hostile spawner. The first spawn waits one interval.
func NewSpawner(w *ecs.World, spec prefabs.SpawnerSpec) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	s := &component.Spawner{
		Interval:  spec.Interval,
		Ahead:     spec.Ahead,
		MaxAlive:  spec.MaxAlive,
		Speed:     spec.Speed,
		Radius:    spec.Radius,
		Countdown: spec.Interval,
	}
	if err := ecs.Add(w, e, component.SpawnerComponent.Kind(), s); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("spawner: %w", err)
	}
	return e, nil
}

func NewCamera(w *ecs.World, x, y, smoothness float64) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{X: x, Y: y, Smoothness: smoothness}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("camera: %w", err)
	}
	return e, nil
}

// BuildLevel populates an empty world from an encounter spec and returns
// the player.
func BuildLevel(w *ecs.World, spec *prefabs.EncounterSpec) (ecs.Entity, error) {
	player, err := NewPlayer(w, spec.Player)
	if err != nil {
		return 0, err
	}
	if spec.Spawner.MaxAlive > 0 {
		if _, err := NewSpawner(w, spec.Spawner); err != nil {
			return 0, err
		}
	}
	if _, err := NewCamera(w, spec.Level.Start, 0, 0.004); err != nil {
		return 0, err
	}
	return player, nil
}
