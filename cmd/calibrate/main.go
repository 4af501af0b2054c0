package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/milk9111/rendezvous/common"
	"github.com/milk9111/rendezvous/encounter"
	"github.com/milk9111/rendezvous/prefabs"
	"gopkg.in/yaml.v3"
)

type report struct {
	Distance     float64  `yaml:"distance"`
	TargetTimeMS float64  `yaml:"target_time_ms"`
	BaseSpeed    float64  `yaml:"base_speed"`
	Acceleration float64  `yaml:"acceleration"`
	ArrivalMS    float64  `yaml:"arrival_ms"`
	ArrivalError float64  `yaml:"arrival_error"`
	Samples      []sample `yaml:"samples"`
}

type sample struct {
	TimeMS   float64 `yaml:"time_ms"`
	Speed    float64 `yaml:"speed"`
	Distance float64 `yaml:"distance"`
}

func main() {
	def := encounter.DefaultConfig()
	distance := flag.Float64("distance", def.TotalDistance, "distance the boss must cover")
	budget := flag.Float64("budget", def.TimeBudget, "time budget in milliseconds")
	margin := flag.Float64("margin", def.SafetyMargin, "safety margin in milliseconds")
	minDistance := flag.Float64("min", def.MinDistance, "distance floor")
	specName := flag.String("spec", "", "read distance and timing from an encounter spec in prefabs/ instead")
	samples := flag.Int("samples", 10, "number of rows in the speed table")
	asYAML := flag.Bool("yaml", false, "print the report as yaml")
	flag.Parse()

	cfg := def
	cfg.TotalDistance = *distance
	cfg.TimeBudget = *budget
	cfg.SafetyMargin = *margin
	cfg.MinDistance = *minDistance
	if *specName != "" {
		spec, err := prefabs.LoadEncounterSpec(*specName)
		if err != nil {
			slog.Error("load spec", "err", err)
			os.Exit(1)
		}
		cfg = spec.Config()
	}
	if err := cfg.Validate(); err != nil {
		slog.Warn("config will be clamped", "err", err)
	}

	r := buildReport(cfg, *samples)
	var err error
	if *asYAML {
		err = yaml.NewEncoder(os.Stdout).Encode(r)
	} else {
		err = writeTable(os.Stdout, r)
	}
	if err != nil {
		slog.Error("write report", "err", err)
		os.Exit(1)
	}
}

func buildReport(cfg encounter.Config, samples int) report {
	profile := encounter.Calibrate(cfg.TotalDistance, cfg.TargetTime(), cfg.MinDistance)
	arrival := simulateArrival(profile, common.FrameMillis)
	r := report{
		Distance:     profile.Distance,
		TargetTimeMS: profile.TargetTime,
		BaseSpeed:    profile.BaseSpeed,
		Acceleration: profile.Acceleration,
		ArrivalMS:    arrival,
		ArrivalError: (arrival - profile.TargetTime) / profile.TargetTime,
	}
	if samples < 2 {
		samples = 2
	}
	for i := 0; i < samples; i++ {
		t := profile.TargetTime * float64(i) / float64(samples-1)
		r.Samples = append(r.Samples, sample{TimeMS: t, Speed: profile.SpeedAt(t), Distance: profile.DistanceAt(t)})
	}
	return r
}

// simulateArrival steps the profile the way the running encounter does and
// returns when the distance is covered.
func simulateArrival(p encounter.SpeedProfile, step float64) float64 {
	covered, t := 0.0, 0.0
	limit := p.TargetTime * 10
	for covered < p.Distance && t < limit {
		t += step
		covered += p.SpeedAt(t) * step
	}
	return t
}

func writeTable(out io.Writer, r report) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "distance\t%.1f\n", r.Distance)
	fmt.Fprintf(tw, "target\t%.0f ms\n", r.TargetTimeMS)
	fmt.Fprintf(tw, "base speed\t%.6f u/ms\n", r.BaseSpeed)
	fmt.Fprintf(tw, "acceleration\t%.3e u/ms²\n", r.Acceleration)
	fmt.Fprintf(tw, "arrival\t%.0f ms (%+.2f%%)\n\n", r.ArrivalMS, r.ArrivalError*100)
	fmt.Fprintln(tw, "t (ms)\tspeed\tdistance")
	for _, s := range r.Samples {
		fmt.Fprintf(tw, "%.0f\t%.6f\t%.1f\n", s.TimeMS, s.Speed, s.Distance)
	}
	return tw.Flush()
}
