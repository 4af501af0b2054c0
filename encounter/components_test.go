package encounter

import (
	"math"
	"strings"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestMeetingDetector(t *testing.T) {
	d := MeetingDetector{ContactDistance: 100, PassMargin: 20, MinBoundaryGap: 60, Direction: 1}

	cases := []struct {
		name     string
		det      MeetingDetector
		boss     cp.Vector
		player   cp.Vector
		limit    float64
		hasLimit bool
		want     MeetingCause
	}{
		{"literal_contact", d, cp.Vector{X: 500, Y: 500}, cp.Vector{X: 560, Y: 540}, 0, false, CauseContact},
		{"far_apart", d, cp.Vector{X: 0, Y: 500}, cp.Vector{X: 600, Y: 500}, 0, false, CauseNone},
		{"head_on_pass_wide_lane", d, cp.Vector{X: 1000, Y: 0}, cp.Vector{X: 1010, Y: 400}, 0, false, CauseCrossed},
		{"boss_already_past", d, cp.Vector{X: 1200, Y: 0}, cp.Vector{X: 1000, Y: 400}, 0, false, CauseCrossed},
		{"squeeze", d, cp.Vector{X: 1000, Y: 0}, cp.Vector{X: 1300, Y: 0}, 1040, true, CauseSqueeze},
		{"limit_ignored_when_absent", d, cp.Vector{X: 1000, Y: 0}, cp.Vector{X: 1300, Y: 0}, 1040, false, CauseNone},
		{"limit_far_enough", d, cp.Vector{X: 1000, Y: 0}, cp.Vector{X: 1300, Y: 0}, 1400, true, CauseNone},
		{
			"reverse_direction_crossed",
			MeetingDetector{ContactDistance: 100, PassMargin: 20, MinBoundaryGap: 60, Direction: -1},
			cp.Vector{X: 1000, Y: 0}, cp.Vector{X: 990, Y: 400}, 0, false, CauseCrossed,
		},
		{
			"reverse_direction_squeeze",
			MeetingDetector{ContactDistance: 100, PassMargin: 20, MinBoundaryGap: 60, Direction: -1},
			cp.Vector{X: 1000, Y: 0}, cp.Vector{X: 600, Y: 0}, 950, true, CauseSqueeze,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.det.Check(c.boss, c.player, c.limit, c.hasLimit); got != c.want {
				t.Fatalf("Check = %v, want %v", got, c.want)
			}
		})
	}
}

func TestArenaTimer(t *testing.T) {
	timer := NewArenaTimer(1500)
	if timer.Progress() != 0 || timer.Remaining() != 1500 || timer.Done() {
		t.Fatalf("fresh timer should be at zero")
	}

	timer.Tick(750)
	if timer.Progress() != 0.5 {
		t.Fatalf("expected progress 0.5, got %v", timer.Progress())
	}
	if timer.Remaining() != 750 {
		t.Fatalf("expected 750 remaining, got %v", timer.Remaining())
	}

	timer.Tick(-100)
	if timer.Progress() != 0.5 {
		t.Fatalf("negative dt must not move progress backwards, got %v", timer.Progress())
	}

	timer.Tick(1250)
	if timer.Progress() != 1 || !timer.Done() || timer.Remaining() != 0 {
		t.Fatalf("overshoot should clamp, progress=%v remaining=%v", timer.Progress(), timer.Remaining())
	}

	timer.Reset()
	if timer.Progress() != 0 {
		t.Fatalf("reset should zero progress")
	}

	if NewArenaTimer(0).Progress() != 1 {
		t.Fatalf("zero duration should report full progress")
	}
}

func TestBossTracksOrthogonalAxis(t *testing.T) {
	b := newBoss(cp.Vector{X: 0, Y: 0}, 1, 0.002)
	target := cp.Vector{X: 5000, Y: 300}

	prevY := b.Position().Y
	for i := 0; i < 600; i++ {
		b.Advance(0.01, 1000.0/60.0, target)
		y := b.Position().Y
		if y < prevY {
			t.Fatalf("tracking moved away from target at step %d: %v < %v", i, y, prevY)
		}
		if y > target.Y {
			t.Fatalf("tracking overshot target at step %d: %v", i, y)
		}
		prevY = y
	}
	if math.Abs(prevY-target.Y) > 1 {
		t.Fatalf("expected boss to converge on y=%v, got %v", target.Y, prevY)
	}
	if want := 0.01 * 1000.0 / 60.0 * 600; math.Abs(b.Position().X-want) > 1e-6 {
		t.Fatalf("primary axis advance %v, want %v", b.Position().X, want)
	}
}

func TestBossNeverMovesBackwards(t *testing.T) {
	b := newBoss(cp.Vector{X: 100, Y: 0}, 1, 0)
	b.Advance(-5, 16, cp.Vector{})
	if b.Position().X != 100 || b.Speed() != 0 {
		t.Fatalf("negative speed must clamp to zero, pos=%v speed=%v", b.Position(), b.Speed())
	}
}

func TestBoundary(t *testing.T) {
	forward := newBoundary(80, 1, 1000)
	if forward.Value() != 920 {
		t.Fatalf("expected 920, got %v", forward.Value())
	}
	forward.Recompute(1100)
	if forward.Value() != 1020 {
		t.Fatalf("expected 1020, got %v", forward.Value())
	}

	reverse := newBoundary(80, -1, 1000)
	if reverse.Value() != 1080 {
		t.Fatalf("expected 1080 for reverse travel, got %v", reverse.Value())
	}
}

func TestPhaseString(t *testing.T) {
	cases := map[Phase]string{
		PhaseDormant:      "dormant",
		PhaseWarning:      "warning",
		PhaseArenaForming: "arena_forming",
		PhaseComplete:     "complete",
		Phase(42):         "unknown",
	}
	for p, want := range cases {
		if p.String() != want {
			t.Fatalf("Phase(%d).String() = %q, want %q", int(p), p.String(), want)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if got := DefaultConfig().TargetTime(); got != 170000 {
		t.Fatalf("expected default target time 170000, got %v", got)
	}

	bad := DefaultConfig()
	bad.MeetingDuration = -1
	bad.Direction = 0
	bad.TimerMultiplier = 0.5
	bad.SafetyMargin = bad.TimeBudget
	err := bad.Validate()
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	for _, field := range []string{"meeting_duration_ms", "direction", "timer_multiplier", "safety_margin_ms"} {
		if !strings.Contains(err.Error(), field) {
			t.Fatalf("expected %q in %q", field, err.Error())
		}
	}
}

func TestConfigNormalized(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TotalDistance = -10
	cfg.Direction = -3
	cfg.MeetingDuration = -50
	cfg.TimerMultiplier = 0

	n := cfg.normalized()
	if n.TotalDistance != n.MinDistance {
		t.Fatalf("distance should clamp to floor, got %v", n.TotalDistance)
	}
	if n.Direction != -1 {
		t.Fatalf("direction should normalize to -1, got %v", n.Direction)
	}
	if n.MeetingDuration != 0 {
		t.Fatalf("negative duration should clamp to 0, got %v", n.MeetingDuration)
	}
	if n.TimerMultiplier != 1 {
		t.Fatalf("multiplier below 1 should clamp to 1, got %v", n.TimerMultiplier)
	}
}
