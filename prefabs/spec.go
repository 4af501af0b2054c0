package prefabs

import (
	"errors"
	"fmt"
	"math"

	"github.com/milk9111/rendezvous/encounter"
	"gopkg.in/yaml.v3"
)

const DefaultEncounterFile = "encounter.yaml"

// EncounterSpec is the on-disk description of one level's boss encounter.
type EncounterSpec struct {
	Name         string      `yaml:"name"`
	Encounter    TuningSpec  `yaml:"encounter"`
	Arena        ArenaSpec   `yaml:"arena"`
	Level        LevelSpec   `yaml:"level"`
	Player       PlayerSpec  `yaml:"player"`
	Boss         PointSpec   `yaml:"boss"`
	Spawner      SpawnerSpec `yaml:"spawner"`
	AlwaysActive bool        `yaml:"always_active"`
	FightScript  string      `yaml:"fight_script"`
}

// TuningSpec mirrors the approach half of encounter.Config. A zero
// total_distance is derived from the level geometry.
type TuningSpec struct {
	TotalDistance   float64 `yaml:"total_distance"`
	MinDistance     float64 `yaml:"min_distance"`
	TimeBudget      float64 `yaml:"time_budget_ms"`
	SafetyMargin    float64 `yaml:"safety_margin_ms"`
	Direction       float64 `yaml:"direction"`
	TrackingRate    float64 `yaml:"tracking_rate"`
	WarningDistance float64 `yaml:"warning_distance"`
	ContactDistance float64 `yaml:"contact_distance"`
	PassMargin      float64 `yaml:"pass_margin"`
	MinBoundaryGap  float64 `yaml:"min_boundary_gap"`
	BoundaryMargin  float64 `yaml:"boundary_margin"`
	TimerMultiplier float64 `yaml:"timer_multiplier"`
	TimerSpeedFloor float64 `yaml:"timer_speed_floor"`
}

type ArenaSpec struct {
	MeetingDuration   float64 `yaml:"meeting_duration_ms"`
	ArenaFormDuration float64 `yaml:"arena_form_duration_ms"`
	FightTimeLimit    float64 `yaml:"fight_time_limit_ms"`
	Theme             string  `yaml:"theme"`
}

type LevelSpec struct {
	Start     float64 `yaml:"start"`
	End       float64 `yaml:"end"`
	ViewWidth float64 `yaml:"view_width"`
	Follow    float64 `yaml:"follow"`
	Countdown float64 `yaml:"countdown_ms"`
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type PlayerSpec struct {
	X            float64 `yaml:"x"`
	Y            float64 `yaml:"y"`
	Radius       float64 `yaml:"radius"`
	MoveSpeed    float64 `yaml:"move_speed"`
	AdvanceSpeed float64 `yaml:"advance_speed"`
}

type SpawnerSpec struct {
	Interval float64 `yaml:"interval_ms"`
	Ahead    float64 `yaml:"ahead"`
	MaxAlive int     `yaml:"max_alive"`
	Speed    float64 `yaml:"speed"`
	Radius   float64 `yaml:"radius"`
}

// DefaultEncounterSpec is the baseline that yaml files override key by key.
func DefaultEncounterSpec() EncounterSpec {
	cfg := encounter.DefaultConfig()
	return EncounterSpec{
		Name: "default",
		Encounter: TuningSpec{
			TotalDistance:   cfg.TotalDistance,
			MinDistance:     cfg.MinDistance,
			TimeBudget:      cfg.TimeBudget,
			SafetyMargin:    cfg.SafetyMargin,
			Direction:       cfg.Direction,
			TrackingRate:    cfg.TrackingRate,
			WarningDistance: cfg.WarningDistance,
			ContactDistance: cfg.ContactDistance,
			PassMargin:      cfg.PassMargin,
			MinBoundaryGap:  cfg.MinBoundaryGap,
			BoundaryMargin:  cfg.BoundaryMargin,
			TimerMultiplier: cfg.TimerMultiplier,
			TimerSpeedFloor: cfg.TimerSpeedFloor,
		},
		Arena: ArenaSpec{
			MeetingDuration:   cfg.MeetingDuration,
			ArenaFormDuration: cfg.ArenaFormDuration,
			FightTimeLimit:    cfg.FightTimeLimit,
			Theme:             cfg.Theme,
		},
		Level: LevelSpec{
			Start:     0,
			End:       1980,
			ViewWidth: 1280,
			Follow:    320,
			Countdown: 150000,
		},
		Player:  PlayerSpec{X: 400, Y: 360, Radius: 16, MoveSpeed: 0.25, AdvanceSpeed: 0.005},
		Boss:    PointSpec{X: 200, Y: 360},
		Spawner: SpawnerSpec{Interval: 4000, Ahead: 700, MaxAlive: 6, Speed: 0.06, Radius: 12},
	}
}

// LoadSpec decodes the yaml file filename over seed, so fields the file
// leaves out keep their seeded values.
func LoadSpec[T any](filename string, seed T) (T, error) {
	data, err := Load(filename)
	if err != nil {
		return seed, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	spec, err := decodeSpec(data, seed)
	if err != nil {
		return seed, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return spec, nil
}

func decodeSpec[T any](data []byte, seed T) (T, error) {
	spec := seed
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return seed, fmt.Errorf("unmarshal: %w", err)
	}
	return spec, nil
}

// LoadEncounterSpec reads name (DefaultEncounterFile when empty) over the
// defaults and validates the result.
func LoadEncounterSpec(name string) (*EncounterSpec, error) {
	if name == "" {
		name = DefaultEncounterFile
	}
	spec, err := LoadSpec(name, DefaultEncounterSpec())
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", name, err)
	}
	return &spec, nil
}

func ParseEncounterSpec(data []byte) (*EncounterSpec, error) {
	spec, err := decodeSpec(data, DefaultEncounterSpec())
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Config builds the encounter configuration.
func (s EncounterSpec) Config() encounter.Config {
	distance := s.Encounter.TotalDistance
	if distance <= 0 {
		distance = math.Abs(s.Level.End - s.Boss.X)
	}
	return encounter.Config{
		TotalDistance:     distance,
		MinDistance:       s.Encounter.MinDistance,
		TimeBudget:        s.Encounter.TimeBudget,
		SafetyMargin:      s.Encounter.SafetyMargin,
		Direction:         s.Encounter.Direction,
		TrackingRate:      s.Encounter.TrackingRate,
		WarningDistance:   s.Encounter.WarningDistance,
		ContactDistance:   s.Encounter.ContactDistance,
		PassMargin:        s.Encounter.PassMargin,
		MinBoundaryGap:    s.Encounter.MinBoundaryGap,
		BoundaryMargin:    s.Encounter.BoundaryMargin,
		MeetingDuration:   s.Arena.MeetingDuration,
		ArenaFormDuration: s.Arena.ArenaFormDuration,
		TimerMultiplier:   s.Encounter.TimerMultiplier,
		TimerSpeedFloor:   s.Encounter.TimerSpeedFloor,
		FightTimeLimit:    s.Arena.FightTimeLimit,
		Theme:             s.Arena.Theme,
	}
}

// Validate reports every problem with the spec at once.
func (s EncounterSpec) Validate() error {
	var errs []error
	if err := s.Config().Validate(); err != nil {
		errs = append(errs, err)
	}

	dir := s.Encounter.Direction
	if (s.Level.End-s.Level.Start)*dir <= 0 {
		errs = append(errs, fmt.Errorf("level.end %v must lie ahead of level.start %v", s.Level.End, s.Level.Start))
	}
	if s.Level.ViewWidth <= 0 {
		errs = append(errs, errors.New("level.view_width must be positive"))
	}
	if s.Level.Countdown < 0 {
		errs = append(errs, errors.New("level.countdown_ms must be non-negative"))
	}
	if (s.Player.X-s.Boss.X)*dir <= 0 {
		errs = append(errs, fmt.Errorf("boss.x %v must start behind player.x %v", s.Boss.X, s.Player.X))
	}
	if s.Player.MoveSpeed <= 0 {
		errs = append(errs, errors.New("player.move_speed must be positive"))
	}
	if s.Player.AdvanceSpeed < 0 {
		errs = append(errs, errors.New("player.advance_speed must be non-negative"))
	}
	if s.Spawner.MaxAlive < 0 {
		errs = append(errs, errors.New("spawner.max_alive must be non-negative"))
	}
	if s.Spawner.MaxAlive > 0 && s.Spawner.Interval <= 0 {
		errs = append(errs, errors.New("spawner.interval_ms must be positive when spawning is enabled"))
	}
	return errors.Join(errs...)
}
