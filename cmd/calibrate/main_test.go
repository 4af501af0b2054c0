package main

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/milk9111/rendezvous/encounter"
)

func TestBuildReportConverges(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		budget   float64
	}{
		{"default", 1780, 180000},
		{"short_level_floored", 100, 60000},
		{"long_level", 6000, 300000},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := encounter.DefaultConfig()
			cfg.TotalDistance = tc.distance
			cfg.TimeBudget = tc.budget
			r := buildReport(cfg, 5)

			if math.Abs(r.ArrivalError) > 0.01 {
				t.Fatalf("arrival %v ms misses target %v ms", r.ArrivalMS, r.TargetTimeMS)
			}
			if len(r.Samples) != 5 {
				t.Fatalf("expected 5 samples, got %d", len(r.Samples))
			}
			last := r.Samples[len(r.Samples)-1]
			if math.Abs(last.Distance-r.Distance) > 1e-6 {
				t.Fatalf("expected full distance at target time, got %v of %v", last.Distance, r.Distance)
			}
		})
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	if err := writeTable(&buf, buildReport(encounter.DefaultConfig(), 3)); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"distance", "base speed", "170000"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
}
