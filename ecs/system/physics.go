package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rendezvous/ecs"
	"github.com/milk9111/rendezvous/ecs/component"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypeHostile
)

const defaultBodyRadius = 8

// PhysicsSystem owns a gravity-free Chipmunk space. The player is a
// kinematic body driven by its velocity; hostiles are dynamic and get
// shoved aside by it.
type PhysicsSystem struct {
	space  *cp.Space
	bodies map[ecs.Entity]*bodyInfo
}

type bodyInfo struct {
	body  *cp.Body
	shape *cp.Shape
}

func NewPhysicsSystem() *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})
	return &PhysicsSystem{
		space:  space,
		bodies: make(map[ecs.Entity]*bodyInfo),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// Update steps the space by dt milliseconds.
func (ps *PhysicsSystem) Update(w *ecs.World, dt float64) {
	if ps == nil || w == nil || dt <= 0 {
		return
	}
	ps.cleanupEntities(w)
	ps.syncEntities(w)
	ps.space.Step(dt)
	ps.syncTransforms(w)
}

// Place moves an entity's body, keeping its velocity.
func (ps *PhysicsSystem) Place(e ecs.Entity, x, y float64) {
	if ps == nil {
		return
	}
	if info, ok := ps.bodies[e]; ok {
		info.body.SetPosition(cp.Vector{X: x, Y: y})
	}
}

// Remove drops an entity's body and shape from the space.
func (ps *PhysicsSystem) Remove(e ecs.Entity) {
	if ps == nil {
		return
	}
	info, ok := ps.bodies[e]
	if !ok {
		return
	}
	ps.space.RemoveShape(info.shape)
	ps.space.RemoveBody(info.body)
	delete(ps.bodies, e)
}

// Bodies is the number of bodies in the space.
func (ps *PhysicsSystem) Bodies() int {
	if ps == nil {
		return 0
	}
	return len(ps.bodies)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
			info, ok := ps.bodies[e]
			if !ok {
				info = ps.createBody(pb, t, ecs.Has(w, e, component.PlayerTagComponent.Kind()))
				ps.bodies[e] = info
				pb.Body = info.body
				pb.Shape = info.shape
			}
			if vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
				info.body.SetVelocityVector(cp.Vector{X: vel.X, Y: vel.Y})
			}
		})
}

func (ps *PhysicsSystem) createBody(pb *component.PhysicsBody, t *component.Transform, isPlayer bool) *bodyInfo {
	radius := pb.Radius
	if radius <= 0 {
		radius = defaultBodyRadius
	}

	var body *cp.Body
	if isPlayer {
		body = cp.NewKinematicBody()
	} else {
		mass := pb.Mass
		if mass <= 0 {
			mass = 1
		}
		body = cp.NewBody(mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{}))
	}
	body.SetPosition(cp.Vector{X: t.X, Y: t.Y})

	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFriction(pb.Friction)
	if isPlayer {
		shape.SetCollisionType(collisionTypePlayer)
	} else {
		shape.SetCollisionType(collisionTypeHostile)
	}

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	return &bodyInfo{body: body, shape: shape}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.bodies {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := info.body.Position()
		t.X = pos.X
		t.Y = pos.Y
		if vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			v := info.body.Velocity()
			vel.X = v.X
			vel.Y = v.Y
		}
	}
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e := range ps.bodies {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		ps.Remove(e)
	}
}
