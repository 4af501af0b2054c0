package prefabs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadEmbeddedEncounterSpec(t *testing.T) {
	spec, err := LoadEncounterSpec("")
	if err != nil {
		t.Fatalf("load embedded spec: %v", err)
	}
	if spec.Name != "ember_gate" {
		t.Fatalf("expected ember_gate, got %q", spec.Name)
	}
	cfg := spec.Config()
	if cfg.TotalDistance != 1780 {
		t.Fatalf("expected distance derived from level geometry, got %v", cfg.TotalDistance)
	}
	if cfg.Theme != "ember" || cfg.TargetTime() != 170000 {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestParseKeepsDefaultsForMissingKeys(t *testing.T) {
	spec, err := ParseEncounterSpec([]byte("arena:\n  theme: frost\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	def := DefaultEncounterSpec()
	if spec.Arena.Theme != "frost" {
		t.Fatalf("expected override, got %q", spec.Arena.Theme)
	}
	if spec.Arena.MeetingDuration != def.Arena.MeetingDuration {
		t.Fatalf("expected default meeting duration, got %v", spec.Arena.MeetingDuration)
	}
	if spec.Player != def.Player {
		t.Fatalf("expected default player, got %+v", spec.Player)
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*EncounterSpec)
		want   []string
	}{
		{"valid", func(*EncounterSpec) {}, nil},
		{
			name: "level_reversed",
			mutate: func(s *EncounterSpec) {
				s.Level.End = -10
			},
			want: []string{"level.end"},
		},
		{
			name: "boss_ahead_and_bad_player",
			mutate: func(s *EncounterSpec) {
				s.Boss.X = 900
				s.Player.MoveSpeed = 0
			},
			want: []string{"boss.x", "player.move_speed"},
		},
		{
			name: "encounter_config",
			mutate: func(s *EncounterSpec) {
				s.Encounter.TimerMultiplier = 0.5
				s.Spawner.Interval = 0
			},
			want: []string{"timer_multiplier", "spawner.interval_ms"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spec := DefaultEncounterSpec()
			tc.mutate(&spec)
			err := spec.Validate()
			if len(tc.want) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error mentioning %v", tc.want)
			}
			for _, w := range tc.want {
				if !strings.Contains(err.Error(), w) {
					t.Fatalf("error %q does not mention %q", err, w)
				}
			}
		})
	}
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	prev := Dir
	Dir = dir
	t.Cleanup(func() { Dir = prev })

	data := []byte("name: override\nlevel:\n  countdown_ms: 5000\n")
	if err := os.WriteFile(filepath.Join(dir, "encounter.yaml"), data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	spec, err := LoadEncounterSpec("prefabs/encounter.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if spec.Name != "override" || spec.Level.Countdown != 5000 {
		t.Fatalf("expected disk copy, got %+v", spec)
	}
	if _, ok := ModTime("encounter.yaml"); !ok {
		t.Fatalf("expected mod time for disk copy")
	}
}

func TestLoadSpecDecodesOverSeed(t *testing.T) {
	type named struct {
		Name  string  `yaml:"name"`
		Extra float64 `yaml:"extra"`
	}
	got, err := LoadSpec(DefaultEncounterFile, named{Name: "seed", Extra: 7})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Name != "ember_gate" || got.Extra != 7 {
		t.Fatalf("expected file name over seeded extra, got %+v", got)
	}

	seed := named{Name: "seed"}
	got, err = LoadSpec("missing.yaml", seed)
	if err == nil || !strings.Contains(err.Error(), "missing.yaml") {
		t.Fatalf("expected load error naming missing.yaml, got %v", err)
	}
	if got != seed {
		t.Fatalf("failed load should return the seed, got %+v", got)
	}
}

func TestLoadEncounterSpecRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	prev := Dir
	Dir = dir
	t.Cleanup(func() { Dir = prev })

	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("encounter:\n  direction: 3\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := LoadEncounterSpec("bad.yaml")
	if err == nil || !strings.Contains(err.Error(), "bad.yaml") {
		t.Fatalf("expected error naming bad.yaml, got %v", err)
	}
	if _, err := LoadEncounterSpec("missing.yaml"); err == nil {
		t.Fatalf("expected error for missing spec")
	}
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"fight.tengo", "scripts/fight.tengo", "prefabs/scripts/fight.tengo"} {
		t.Run(name, func(t *testing.T) {
			data, err := LoadScript(name)
			if err != nil {
				t.Fatalf("load %s: %v", name, err)
			}
			if !strings.Contains(string(data), "done") {
				t.Fatalf("unexpected script contents")
			}
		})
	}
}

func TestWatcherPendingErrors(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer w.Close()

	if got := w.PendingErrors(); len(got) != 0 {
		t.Fatalf("expected no errors, got %v", got)
	}
	w.Errors <- errors.New("overflow")
	w.Errors <- errors.New("removed")
	got := w.PendingErrors()
	if len(got) != 2 || got[0].Error() != "overflow" {
		t.Fatalf("expected both errors in order, got %v", got)
	}
	if len(w.PendingErrors()) != 0 {
		t.Fatalf("errors should be drained")
	}
}

func TestWatcherReportsSpecEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "encounter.yaml"), []byte("name: x\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case name := <-w.Events:
		if name != "encounter.yaml" {
			t.Fatalf("expected encounter.yaml, got %q", name)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no change reported")
	}
}
