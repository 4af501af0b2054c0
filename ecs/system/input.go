package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/rendezvous/ecs"
	"github.com/milk9111/rendezvous/ecs/component"
)

type InputSystem struct {
	pressed  func(ebiten.Key) bool
	gamepads bool
}

func NewInputSystem() *InputSystem {
	return &InputSystem{pressed: ebiten.IsKeyPressed, gamepads: true}
}

// NewKeyInputSystem reads keys from pressed instead of the live keyboard and
// ignores gamepads.
func NewKeyInputSystem(pressed func(ebiten.Key) bool) *InputSystem {
	return &InputSystem{pressed: pressed}
}

func (i *InputSystem) Update(w *ecs.World, _ float64) {
	if w == nil || i.pressed == nil {
		return
	}

	const stickDeadzone = 0.2

	moveX := axis(i.pressed(ebiten.KeyA) || i.pressed(ebiten.KeyArrowLeft), i.pressed(ebiten.KeyD) || i.pressed(ebiten.KeyArrowRight))
	moveY := axis(i.pressed(ebiten.KeyW) || i.pressed(ebiten.KeyArrowUp), i.pressed(ebiten.KeyS) || i.pressed(ebiten.KeyArrowDown))

	if i.gamepads {
		if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
			id := gamepads[0]
			lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
			ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
			if math.Hypot(lx, ly) > stickDeadzone {
				moveX, moveY = lx, ly
			}
		}
	}

	if n := math.Hypot(moveX, moveY); n > 1 {
		moveX /= n
		moveY /= n
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		input.MoveX = moveX
		input.MoveY = moveY
	})
}

func axis(negative, positive bool) float64 {
	v := 0.0
	if negative {
		v -= 1
	}
	if positive {
		v += 1
	}
	return v
}
