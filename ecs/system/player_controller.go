package system

import (
	"github.com/milk9111/rendezvous/ecs"
	"github.com/milk9111/rendezvous/ecs/component"
	"github.com/milk9111/rendezvous/scroll"
)

// PlayerControllerSystem turns input into velocity, with the forced
// auto-advance applied on the primary axis. The player stands still while
// the encounter blocks.
type PlayerControllerSystem struct {
	advance *scroll.AutoAdvance
	state   EncounterState
}

func NewPlayerControllerSystem(advance *scroll.AutoAdvance, state EncounterState) *PlayerControllerSystem {
	return &PlayerControllerSystem{advance: advance, state: state}
}

func (p *PlayerControllerSystem) Update(w *ecs.World, _ float64) {
	frozen := p.state != nil && p.state.IsBlocking()
	ecs.ForEach3(w, component.InputComponent.Kind(), component.PlayerComponent.Kind(), component.VelocityComponent.Kind(),
		func(_ ecs.Entity, input *component.Input, player *component.Player, vel *component.Velocity) {
			if frozen {
				vel.X, vel.Y = 0, 0
				return
			}
			vx := input.MoveX * player.MoveSpeed
			if p.advance != nil {
				vx = p.advance.Apply(vx)
			}
			vel.X = vx
			vel.Y = input.MoveY * player.MoveSpeed
		})
}
