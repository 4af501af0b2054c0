package system

import (
	"log/slog"
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rendezvous/ecs"
	"github.com/milk9111/rendezvous/ecs/component"
	"github.com/milk9111/rendezvous/ecs/entity"
	"github.com/milk9111/rendezvous/encounter"
	"github.com/milk9111/rendezvous/prefabs"
	"github.com/milk9111/rendezvous/scroll"
)

type fakeState struct {
	blocking bool
	boss     bool
}

func (s *fakeState) IsBlocking() bool    { return s.blocking }
func (s *fakeState) IsInBossPhase() bool { return s.boss }

func newPlayerWorld(t *testing.T, x, y float64) (*ecs.World, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()
	p, err := entity.NewPlayer(w, prefabs.PlayerSpec{X: x, Y: y, Radius: 10, MoveSpeed: 0.2})
	if err != nil {
		t.Fatalf("player: %v", err)
	}
	return w, p
}

func mustGet[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T]) *T {
	t.Helper()
	v, ok := ecs.Get(w, e, kind)
	if !ok {
		t.Fatalf("entity %s missing component", e)
	}
	return v
}

func TestInputSystemNormalizesDiagonal(t *testing.T) {
	w, p := newPlayerWorld(t, 0, 0)
	held := map[ebiten.Key]bool{ebiten.KeyD: true, ebiten.KeyW: true}
	NewKeyInputSystem(func(k ebiten.Key) bool { return held[k] }).Update(w, 16)

	in := mustGet(t, w, p, component.InputComponent.Kind())
	want := 1 / math.Sqrt2
	if math.Abs(in.MoveX-want) > 1e-9 || math.Abs(in.MoveY+want) > 1e-9 {
		t.Fatalf("expected (%v,%v), got (%v,%v)", want, -want, in.MoveX, in.MoveY)
	}
}

func TestPlayerControllerAppliesAutoAdvance(t *testing.T) {
	tests := []struct {
		name       string
		moveX      float64
		advanceOff bool
		encounter  *fakeState
		want       float64
		wantY      float64
	}{
		{"idle_is_pushed", 0, false, nil, 0.005, 0.2},
		{"forward_is_faster", 1, false, nil, 0.2, 0.2},
		{"backward_is_held_at_advance", -1, false, nil, 0.005, 0.2},
		{"advance_blocked_moves_freely", -1, true, nil, -0.2, 0.2},
		{"boss_phase_moves_freely", -1, true, &fakeState{boss: true}, -0.2, 0.2},
		{"meeting_freezes_player", 1, true, &fakeState{blocking: true}, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, p := newPlayerWorld(t, 0, 0)
			advance := scroll.NewAutoAdvance(1, 0.005, nil, &fakeState{blocking: tc.advanceOff})
			in := mustGet(t, w, p, component.InputComponent.Kind())
			in.MoveX, in.MoveY = tc.moveX, 1

			var state EncounterState
			if tc.encounter != nil {
				state = tc.encounter
			}
			NewPlayerControllerSystem(advance, state).Update(w, 16)

			vel := mustGet(t, w, p, component.VelocityComponent.Kind())
			if math.Abs(vel.X-tc.want) > 1e-12 || math.Abs(vel.Y-tc.wantY) > 1e-12 {
				t.Fatalf("expected (%v,%v), got (%v,%v)", tc.want, tc.wantY, vel.X, vel.Y)
			}
		})
	}
}

func TestSpawnSystemRespectsIntervalAndCap(t *testing.T) {
	w, _ := newPlayerWorld(t, 100, 300)
	if _, err := entity.NewSpawner(w, prefabs.SpawnerSpec{Interval: 100, Ahead: 500, MaxAlive: 2, Speed: 0.1, Radius: 5}); err != nil {
		t.Fatalf("spawner: %v", err)
	}
	state := &fakeState{}
	spawn := NewSpawnSystem(state, 1, slog.New(slog.DiscardHandler))

	spawn.Update(w, 99)
	if n := ecs.Count(w, component.HostileTagComponent.Kind()); n != 0 {
		t.Fatalf("expected no spawn before the interval, got %d", n)
	}
	spawn.Update(w, 1)
	hostile, ok := ecs.First(w, component.HostileTagComponent.Kind())
	if !ok {
		t.Fatalf("expected a hostile after one interval")
	}
	if tr := mustGet(t, w, hostile, component.TransformComponent.Kind()); tr.X != 600 || tr.Y != 300 {
		t.Fatalf("expected spawn ahead of the player at (600,300), got (%v,%v)", tr.X, tr.Y)
	}

	spawn.Update(w, 250)
	spawn.Update(w, 100)
	if n := ecs.Count(w, component.HostileTagComponent.Kind()); n != 2 {
		t.Fatalf("expected cap of 2 hostiles, got %d", n)
	}
}

func TestSpawnSystemSuspended(t *testing.T) {
	for _, state := range []*fakeState{{blocking: true}, {boss: true}} {
		w, _ := newPlayerWorld(t, 0, 0)
		if _, err := entity.NewSpawner(w, prefabs.SpawnerSpec{Interval: 10, MaxAlive: 5}); err != nil {
			t.Fatalf("spawner: %v", err)
		}
		spawn := NewSpawnSystem(state, 1, slog.New(slog.DiscardHandler))
		spawn.Update(w, 1000)
		if !spawn.Suspended() || ecs.Count(w, component.HostileTagComponent.Kind()) != 0 {
			t.Fatalf("expected no spawns while suspended (%+v)", *state)
		}
	}
}

func TestHostileSystemSteersAtPlayer(t *testing.T) {
	w, _ := newPlayerWorld(t, 100, 200)
	h, err := entity.NewHostileAt(w, 200, 200, 5, 0.1)
	if err != nil {
		t.Fatalf("hostile: %v", err)
	}
	NewHostileSystem().Update(w, 16)

	vel := mustGet(t, w, h, component.VelocityComponent.Kind())
	if math.Abs(vel.X+0.1) > 1e-12 || vel.Y != 0 {
		t.Fatalf("expected (-0.1,0), got (%v,%v)", vel.X, vel.Y)
	}
}

func TestPhysicsSystemIntegratesVelocity(t *testing.T) {
	w, p := newPlayerWorld(t, 100, 200)
	h, err := entity.NewHostileAt(w, 300, 200, 12, 0.1)
	if err != nil {
		t.Fatalf("hostile: %v", err)
	}
	mustGet(t, w, p, component.VelocityComponent.Kind()).X = 0.2
	mustGet(t, w, h, component.VelocityComponent.Kind()).X = -0.1

	physics := NewPhysicsSystem()
	physics.Update(w, 10)

	if x := mustGet(t, w, p, component.TransformComponent.Kind()).X; math.Abs(x-102) > 1e-6 {
		t.Fatalf("expected player at 102, got %v", x)
	}
	if x := mustGet(t, w, h, component.TransformComponent.Kind()).X; math.Abs(x-299) > 1e-6 {
		t.Fatalf("expected hostile at 299, got %v", x)
	}
	if pb := mustGet(t, w, p, component.PhysicsBodyComponent.Kind()); pb.Body == nil || pb.Body.GetType() != cp.BODY_KINEMATIC {
		t.Fatalf("expected a kinematic player body")
	}

	ecs.DestroyEntity(w, h)
	physics.Update(w, 10)
	if physics.Bodies() != 1 {
		t.Fatalf("expected destroyed hostile's body removed, got %d bodies", physics.Bodies())
	}
}

func TestScrollSystemGatesPlayer(t *testing.T) {
	w, p := newPlayerWorld(t, 100, 400)
	cam, err := entity.NewCamera(w, 0, 40, 0)
	if err != nil {
		t.Fatalf("camera: %v", err)
	}
	boundary := scroll.NewBoundary(scroll.BoundaryOptions{
		Direction:  1,
		ViewWidth:  500,
		Follow:     100,
		LevelStart: 0,
		LevelEnd:   2000,
	}, nil, nil)
	encounterBoundary := 150.0
	sys := NewScrollSystem(1, boundary, nil, func() float64 { return encounterBoundary })
	tr := mustGet(t, w, p, component.TransformComponent.Kind())

	steps := []struct {
		name    string
		x       float64
		hold    bool
		want    float64
		clamped bool
	}{
		{"behind_encounter_boundary", 100, false, 150, true},
		{"free_ahead", 900, false, 900, false},
		{"cannot_retreat_past_trailing_edge", 700, false, 800, true},
		{"held_leading_edge", 2000, true, 1300, true},
	}
	for _, step := range steps {
		t.Run(step.name, func(t *testing.T) {
			if step.hold {
				boundary.Hold()
			}
			tr.X = step.x
			w.Events().Drain()
			sys.Update(w, 16)

			if tr.X != step.want {
				t.Fatalf("expected x %v, got %v", step.want, tr.X)
			}
			events := w.Events().Drain()
			if got := len(events) == 1 && events[0].Type == ecs.EventPlayerClamped; got != step.clamped {
				t.Fatalf("expected clamped=%v, events %v", step.clamped, events)
			}
		})
	}

	c := mustGet(t, w, cam, component.CameraComponent.Kind())
	if c.X != boundary.CameraX() || c.Y != 40 {
		t.Fatalf("unexpected camera (%v,%v)", c.X, c.Y)
	}
}

func TestEncounterSystemDrivesTimerBoost(t *testing.T) {
	w, _ := newPlayerWorld(t, 5000, 0)
	sched := encounter.New(encounter.DefaultConfig(), cp.Vector{X: 0, Y: 0}, nil, encounter.Deps{
		Player: PlayerPosition(w),
		Logger: slog.New(slog.DiscardHandler),
	})
	sys := NewEncounterSystem(sched, 100)

	sys.Update(w, 200)
	if sys.Countdown().Remaining() != 100 {
		t.Fatalf("countdown should not run before the encounter starts")
	}

	sched.Start()
	sys.Update(w, 60)
	sys.Update(w, 60)
	if !sys.Countdown().Expired() || !sched.TimerExpired() {
		t.Fatalf("expected countdown to expire and boost the boss")
	}
	if sched.Speed() < encounter.DefaultConfig().TimerSpeedFloor {
		t.Fatalf("expected boosted speed, got %v", sched.Speed())
	}
}

func TestMeetingClearsHostilesAndSuspendsSpawns(t *testing.T) {
	w, _ := newPlayerWorld(t, 150, 0)
	physics := NewPhysicsSystem()
	for i := 0; i < 3; i++ {
		if _, err := entity.NewHostileAt(w, 400+float64(i)*50, 0, 5, 0); err != nil {
			t.Fatalf("hostile: %v", err)
		}
	}
	physics.Update(w, 1)

	var cleared int
	sched := encounter.New(encounter.DefaultConfig(), cp.Vector{X: 100, Y: 0}, nil, encounter.Deps{
		Player:        PlayerPosition(w),
		ClearHostiles: func() int { cleared = ClearHostiles(w, physics); return cleared },
		Logger:        slog.New(slog.DiscardHandler),
	})
	sched.Start()
	NewEncounterSystem(sched, 0).Update(w, 16)

	if sched.Phase() != encounter.PhaseMeeting {
		t.Fatalf("expected meeting, got %s", sched.Phase())
	}
	if cleared != 3 || ecs.Count(w, component.HostileTagComponent.Kind()) != 0 {
		t.Fatalf("expected 3 hostiles cleared, got %d", cleared)
	}
	if physics.Bodies() != 1 {
		t.Fatalf("expected only the player body left, got %d", physics.Bodies())
	}
	if !NewSpawnSystem(sched, 1, nil).Suspended() {
		t.Fatalf("expected spawning suspended during the meeting")
	}
}

func TestMeetingRequestsCameraShake(t *testing.T) {
	w, _ := newPlayerWorld(t, 150, 0)
	cam, err := entity.NewCamera(w, 0, 0, 0)
	if err != nil {
		t.Fatalf("camera: %v", err)
	}
	sched := encounter.New(encounter.DefaultConfig(), cp.Vector{X: 100, Y: 0}, nil, encounter.Deps{
		Player: PlayerPosition(w),
		Logger: slog.New(slog.DiscardHandler),
	})
	sched.Start()
	sys := NewEncounterSystem(sched, 0)

	sys.Update(w, 16)
	req, ok := ecs.Get(w, cam, component.CameraShakeRequestComponent.Kind())
	if !ok {
		t.Fatalf("expected a shake request on meeting")
	}
	if req.Duration != MeetingShakeDuration || req.Intensity != MeetingShakeIntensity {
		t.Fatalf("unexpected request %+v", *req)
	}

	ecs.Remove(w, cam, component.CameraShakeRequestComponent.Kind())
	sys.Update(w, 16)
	if ecs.Has(w, cam, component.CameraShakeRequestComponent.Kind()) {
		t.Fatalf("shake should only be requested on meeting entry")
	}
}

func TestScrollSystemAppliesCameraShake(t *testing.T) {
	w, _ := newPlayerWorld(t, 300, 400)
	cam, err := entity.NewCamera(w, 0, 0, 0)
	if err != nil {
		t.Fatalf("camera: %v", err)
	}
	boundary := scroll.NewBoundary(scroll.BoundaryOptions{
		Direction:  1,
		ViewWidth:  500,
		Follow:     100,
		LevelStart: 0,
		LevelEnd:   2000,
	}, nil, nil)
	sys := NewScrollSystem(1, boundary, nil)

	if !RequestCameraShake(w, 100, 8) {
		t.Fatalf("expected the request to land on the camera")
	}
	sys.Update(w, 16)
	c := mustGet(t, w, cam, component.CameraComponent.Kind())
	if ecs.Has(w, cam, component.CameraShakeRequestComponent.Kind()) {
		t.Fatalf("request should be consumed")
	}
	if c.ShakeRemaining != 84 || (c.ShakeX == 0 && c.ShakeY == 0) {
		t.Fatalf("expected a running shake, got %+v", *c)
	}
	if math.Abs(c.ShakeX) > 8 || math.Abs(c.ShakeY) > 8 {
		t.Fatalf("shake exceeds its intensity: %+v", *c)
	}

	sys.Update(w, 100)
	if c.ShakeRemaining != 0 || c.ShakeX != 0 || c.ShakeY != 0 {
		t.Fatalf("expected the shake to settle, got %+v", *c)
	}
	if c.X != boundary.CameraX() {
		t.Fatalf("shake must not move the base camera, got %v", c.X)
	}
}

func TestRequestCameraShakeWithoutCamera(t *testing.T) {
	w, _ := newPlayerWorld(t, 0, 0)
	if RequestCameraShake(w, 100, 1) {
		t.Fatalf("expected false without a camera")
	}
}
