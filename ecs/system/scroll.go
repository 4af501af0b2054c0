package system

import (
	"math"

	"github.com/milk9111/rendezvous/common"
	"github.com/milk9111/rendezvous/ecs"
	"github.com/milk9111/rendezvous/ecs/component"
	"github.com/milk9111/rendezvous/scroll"
)

// ScrollSystem advances the camera boundary and keeps the player between
// the furthest trailing limit and the leading edge.
type ScrollSystem struct {
	boundary  *scroll.Boundary
	gate      scroll.ForwardGate
	physics   *PhysicsSystem
	direction float64
}

// NewScrollSystem gates the player behind the boundary's trailing edge and
// every extra limit, such as the encounter boundary.
func NewScrollSystem(direction float64, boundary *scroll.Boundary, physics *PhysicsSystem, limits ...func() float64) *ScrollSystem {
	if direction >= 0 {
		direction = 1
	} else {
		direction = -1
	}
	all := append([]func() float64{boundary.Trailing}, limits...)
	return &ScrollSystem{
		boundary:  boundary,
		gate:      scroll.NewForwardGate(direction, all...),
		physics:   physics,
		direction: direction,
	}
}

func (s *ScrollSystem) Update(w *ecs.World, dt float64) {
	e, t, ok := playerTransform(w)
	if !ok {
		return
	}
	s.boundary.Update(t.X)

	x, clamped := s.gate.Clamp(t.X)
	if limit, ok := s.boundary.Limit(); ok && (x-limit)*s.direction > 0 {
		x = limit
		clamped = true
	}
	if clamped {
		t.X = x
		s.physics.Place(e, t.X, t.Y)
		w.Events().Push(ecs.Event{Type: ecs.EventPlayerClamped, Data: x})
	}

	ecs.ForEach(w, component.CameraComponent.Kind(), func(ce ecs.Entity, cam *component.Camera) {
		cam.X = s.boundary.CameraX()
		targetY := t.Y - common.BaseHeight/2
		cam.Y = common.Lerp(cam.Y, targetY, common.SmoothingFactor(cam.Smoothness, dt))

		if req, ok := ecs.Get(w, ce, component.CameraShakeRequestComponent.Kind()); ok {
			cam.ShakeDuration = req.Duration
			cam.ShakeRemaining = req.Duration
			cam.ShakeIntensity = req.Intensity
			ecs.Remove(w, ce, component.CameraShakeRequestComponent.Kind())
		}
		updateShake(cam, dt)
	})
}

// updateShake runs a decaying wobble; offsets are zero once it ends.
func updateShake(cam *component.Camera, dt float64) {
	if cam.ShakeRemaining <= 0 || cam.ShakeDuration <= 0 {
		cam.ShakeRemaining = 0
		cam.ShakeX, cam.ShakeY = 0, 0
		return
	}
	cam.ShakeRemaining = math.Max(cam.ShakeRemaining-dt, 0)
	elapsed := cam.ShakeDuration - cam.ShakeRemaining
	amp := cam.ShakeIntensity * cam.ShakeRemaining / cam.ShakeDuration
	cam.ShakeX = amp * math.Sin(elapsed*0.09)
	cam.ShakeY = amp * math.Cos(elapsed*0.07)
}

// RequestCameraShake queues a shake on the first camera. It reports false
// when the world has no camera.
func RequestCameraShake(w *ecs.World, duration, intensity float64) bool {
	cam, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return false
	}
	return ecs.Add(w, cam, component.CameraShakeRequestComponent.Kind(), &component.CameraShakeRequest{Duration: duration, Intensity: intensity}) == nil
}
