package main

import (
	"fmt"
	"log/slog"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rendezvous/common"
	"github.com/milk9111/rendezvous/ecs"
	"github.com/milk9111/rendezvous/ecs/component"
	"github.com/milk9111/rendezvous/ecs/entity"
	"github.com/milk9111/rendezvous/ecs/system"
	"github.com/milk9111/rendezvous/encounter"
	"github.com/milk9111/rendezvous/fight"
	"github.com/milk9111/rendezvous/prefabs"
	"github.com/milk9111/rendezvous/scroll"
)

// blockingFunc adapts a closure to scroll.Blocker.
type blockingFunc func() bool

func (f blockingFunc) IsBlocking() bool { return f() }

type phaseChange struct {
	From encounter.Phase
	To   encounter.Phase
}

// session is one run of a level from spawn to the end of the boss fight.
type session struct {
	spec   *prefabs.EncounterSpec
	policy *common.ActivityPolicy

	world    *ecs.World
	systems  *ecs.Scheduler
	physics  *system.PhysicsSystem
	boundary *scroll.Boundary
	advance  *scroll.AutoAdvance
	enc      *system.EncounterSystem
	sched    *encounter.Scheduler
	fight    *fight.Scripted
	player   ecs.Entity
}

func newSession(spec *prefabs.EncounterSpec, alwaysActive bool, logger *slog.Logger) (*session, error) {
	s := &session{
		spec:    spec,
		policy:  common.NewActivityPolicy(alwaysActive || spec.AlwaysActive),
		world:   ecs.NewWorld(),
		physics: system.NewPhysicsSystem(),
	}

	player, err := entity.BuildLevel(s.world, spec)
	if err != nil {
		return nil, fmt.Errorf("session: build level: %w", err)
	}
	s.player = player

	cfg := spec.Config()
	var fightDep encounter.Fight
	if spec.FightScript != "" {
		f, err := fight.Load(spec.FightScript, logger)
		if err != nil {
			return nil, fmt.Errorf("session: %w", err)
		}
		f.SetCamera(s.cameraOrigin)
		s.fight = f
		fightDep = f
	}

	blocker := blockingFunc(func() bool { return s.sched != nil && s.sched.IsBlocking() })
	s.boundary = scroll.NewBoundary(scroll.BoundaryOptions{
		Direction:  cfg.Direction,
		ViewWidth:  spec.Level.ViewWidth,
		Follow:     spec.Level.Follow,
		LevelStart: spec.Level.Start,
		LevelEnd:   spec.Level.End,
	}, s.policy, blocker)
	s.advance = scroll.NewAutoAdvance(cfg.Direction, spec.Player.AdvanceSpeed, s.policy, blocker)

	s.sched = encounter.New(cfg, cp.Vector{X: spec.Boss.X, Y: spec.Boss.Y}, s.policy, encounter.Deps{
		Player:        system.PlayerPosition(s.world),
		Scroll:        s.boundary,
		Pusher:        scroll.Holders{s.boundary, s.advance},
		ClearHostiles: func() int { return system.ClearHostiles(s.world, s.physics) },
		Fight:         fightDep,
		OnPhaseChange: func(from, to encounter.Phase) {
			s.world.Events().Push(ecs.Event{Type: ecs.EventPhaseChanged, Data: phaseChange{From: from, To: to}})
		},
		Logger: logger,
	})
	s.enc = system.NewEncounterSystem(s.sched, spec.Level.Countdown)

	s.systems = ecs.NewScheduler(
		system.NewInputSystem(),
		system.NewPlayerControllerSystem(s.advance, s.sched),
		system.NewSpawnSystem(s.sched, cfg.Direction, logger),
		system.NewHostileSystem(),
		s.physics,
		system.NewScrollSystem(cfg.Direction, s.boundary, s.physics, s.sched.Boundary),
		s.enc,
	)

	s.sched.Start()
	return s, nil
}

func (s *session) update(dt float64) {
	s.systems.Update(s.world, dt)
}

// pause reports false when the encounter is always active.
func (s *session) pause() bool {
	if !s.sched.Pause() {
		return false
	}
	s.boundary.Pause()
	s.advance.Pause()
	return true
}

func (s *session) resume() {
	s.sched.Resume()
	s.boundary.Resume()
	s.advance.Resume()
}

// cameraOrigin is the world position of the screen's top-left corner.
func (s *session) cameraOrigin() cp.Vector {
	e, ok := ecs.First(s.world, component.CameraComponent.Kind())
	if !ok {
		return cp.Vector{}
	}
	cam, _ := ecs.Get(s.world, e, component.CameraComponent.Kind())
	return cp.Vector{X: cam.X + cam.ShakeX, Y: cam.Y + cam.ShakeY}
}

func (s *session) playerPosition() (cp.Vector, bool) {
	t, ok := ecs.Get(s.world, s.player, component.TransformComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	return cp.Vector{X: t.X, Y: t.Y}, true
}

// snapshot is what the debug copy key puts on the clipboard.
type snapshot struct {
	Spec      string             `yaml:"spec"`
	Encounter encounter.Snapshot `yaml:"encounter"`
	PlayerX   float64            `yaml:"player_x"`
	PlayerY   float64            `yaml:"player_y"`
	Trailing  float64            `yaml:"scroll_trailing"`
	Countdown float64            `yaml:"countdown_ms,omitempty"`
	Hostiles  int                `yaml:"hostiles"`
}

func (s *session) snapshot() snapshot {
	p, _ := s.playerPosition()
	snap := snapshot{
		Spec:      s.spec.Name,
		Encounter: s.sched.Snapshot(),
		PlayerX:   p.X,
		PlayerY:   p.Y,
		Trailing:  s.boundary.Trailing(),
		Hostiles:  ecs.Count(s.world, component.HostileTagComponent.Kind()),
	}
	if c := s.enc.Countdown(); c != nil {
		snap.Countdown = c.Remaining()
	}
	return snap
}
