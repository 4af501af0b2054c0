package encounter

import (
	"log/slog"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rendezvous/common"
)

// Deps are the narrow handles the scheduler reads from and drives. Every
// field is optional.
type Deps struct {
	// Player returns the player position; it is read once per tick.
	Player func() cp.Vector
	// Scroll reports the sibling scroll boundary used by the squeeze check.
	Scroll ScrollLimiter
	// Pusher is held when the meeting begins.
	Pusher Pusher
	// ClearHostiles removes hostile entities left in the arena on meeting
	// and returns how many were removed.
	ClearHostiles func() int
	Fight         Fight
	OnPhaseChange func(from, to Phase)
	Logger        *slog.Logger
}

// Scheduler drives one boss encounter from dormant to complete.
type Scheduler struct {
	cfg    Config
	policy *common.ActivityPolicy
	deps   Deps
	log    *slog.Logger

	profile  SpeedProfile
	boss     *Boss
	boundary *Boundary
	detector MeetingDetector
	arena    *ArenaTimer

	phase        Phase
	paused       bool
	elapsed      float64
	speed        float64
	timerExpired bool
	phaseTimer   float64

	meetingPoint cp.Vector
	hasMeeting   bool
	cause        MeetingCause
}

// New builds an encounter with the boss placed at bossStart. The speed
// profile is calibrated here, once.
func New(cfg Config, bossStart cp.Vector, policy *common.ActivityPolicy, deps Deps) *Scheduler {
	cfg = cfg.normalized()
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Scheduler{
		cfg:      cfg,
		policy:   policy,
		deps:     deps,
		log:      logger.With("system", "encounter"),
		profile:  Calibrate(cfg.TotalDistance, cfg.TargetTime(), cfg.MinDistance),
		boss:     newBoss(bossStart, cfg.Direction, cfg.TrackingRate),
		boundary: newBoundary(cfg.BoundaryMargin, cfg.Direction, bossStart.X),
		detector: MeetingDetector{
			ContactDistance: cfg.ContactDistance,
			PassMargin:      cfg.PassMargin,
			MinBoundaryGap:  cfg.MinBoundaryGap,
			Direction:       cfg.Direction,
		},
		arena: NewArenaTimer(cfg.ArenaFormDuration),
	}
	s.log.Debug("encounter calibrated",
		"distance", s.profile.Distance,
		"target_ms", s.profile.TargetTime,
		"base_speed", s.profile.BaseSpeed,
		"acceleration", s.profile.Acceleration,
	)
	return s
}

// Start begins the approach. It only has an effect while dormant.
func (s *Scheduler) Start() {
	if s.phase != PhaseDormant {
		return
	}
	s.speed = s.profile.SpeedAt(0)
	s.enter(PhaseApproaching)
}

// Stop returns the encounter to dormant. It reports false when the shared
// policy keeps the encounter always active.
func (s *Scheduler) Stop() bool {
	if !s.policy.CanStop() {
		return false
	}
	prev := s.phase
	s.phase = PhaseDormant
	s.paused = false
	s.elapsed = 0
	s.speed = 0
	s.phaseTimer = 0
	s.hasMeeting = false
	s.meetingPoint = cp.Vector{}
	s.cause = CauseNone
	s.boss.reset()
	s.boundary.Recompute(s.boss.Position().X)
	s.arena.Reset()
	if s.deps.Pusher != nil {
		s.deps.Pusher.Release()
	}
	if prev != PhaseDormant {
		s.log.Info("encounter stopped", "from", prev)
		if s.deps.OnPhaseChange != nil {
			s.deps.OnPhaseChange(prev, PhaseDormant)
		}
	}
	return true
}

// Pause freezes all ticking. It reports false under an always-active policy.
func (s *Scheduler) Pause() bool {
	if !s.policy.CanPause() {
		return false
	}
	s.paused = true
	return true
}

func (s *Scheduler) Resume() { s.paused = false }

// OnTimerEnd marks the level countdown as expired. From then on the boss
// speed is max(speed*multiplier, floor). Repeated calls have no effect.
func (s *Scheduler) OnTimerEnd() {
	if s.timerExpired {
		return
	}
	s.timerExpired = true
	if s.phase.approaching() {
		s.speed = BoostedSpeed(s.speed, s.cfg.TimerMultiplier, s.cfg.TimerSpeedFloor)
	}
	s.log.Info("encounter timer expired", "phase", s.phase, "speed", s.speed)
}

// Update advances the encounter by dt milliseconds.
func (s *Scheduler) Update(dt float64) {
	if s.paused || dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return
	}

	switch s.phase {
	case PhaseApproaching, PhaseWarning:
		s.updateApproach(dt)
	case PhaseMeeting:
		s.phaseTimer += dt
		if s.phaseTimer >= s.cfg.MeetingDuration {
			s.beginArena()
		}
	case PhaseArenaForming:
		s.phaseTimer += dt
		s.arena.Tick(dt)
		if s.arena.Done() {
			s.enter(PhaseBossFight)
		}
	case PhaseBossFight:
		s.phaseTimer += dt
		if s.deps.Fight != nil {
			s.deps.Fight.Update(dt)
		}
		s.checkFightOver()
	}
}

// Draw hands the screen to the fight subsystem during the boss fight.
func (s *Scheduler) Draw(screen *ebiten.Image) {
	if s.phase == PhaseBossFight && s.deps.Fight != nil {
		s.deps.Fight.Draw(screen)
	}
}

func (s *Scheduler) updateApproach(dt float64) {
	s.elapsed += dt

	speed := s.profile.SpeedAt(s.elapsed)
	if s.timerExpired {
		speed = BoostedSpeed(speed, s.cfg.TimerMultiplier, s.cfg.TimerSpeedFloor)
	}
	s.speed = speed

	player, hasPlayer := s.playerPosition()
	target := player
	if !hasPlayer {
		target = s.boss.Position()
	}
	s.boss.Advance(speed, dt, target)
	s.boundary.Recompute(s.boss.Position().X)

	if !hasPlayer {
		return
	}

	limit, hasLimit := s.scrollLimit()
	if cause := s.detector.Check(s.boss.Position(), player, limit, hasLimit); cause != CauseNone {
		s.beginMeeting(player, cause)
		return
	}

	if s.phase == PhaseApproaching && s.boss.Position().Distance(player) <= s.cfg.WarningDistance {
		s.enter(PhaseWarning)
	}
}

// beginMeeting freezes the meeting point and runs the meeting side effects.
// It reports false when the meeting already started.
func (s *Scheduler) beginMeeting(player cp.Vector, cause MeetingCause) bool {
	if !s.phase.approaching() {
		return false
	}

	s.meetingPoint = s.boss.Position().Add(player).Mult(0.5)
	s.hasMeeting = true
	s.cause = cause
	s.enter(PhaseMeeting)

	if s.deps.Pusher != nil {
		s.deps.Pusher.Hold()
	}
	cleared := 0
	if s.deps.ClearHostiles != nil {
		cleared = s.deps.ClearHostiles()
	}
	s.log.Info("encounter meeting",
		"cause", cause,
		"x", s.meetingPoint.X,
		"y", s.meetingPoint.Y,
		"elapsed_ms", s.elapsed,
		"hostiles_cleared", cleared,
	)
	return true
}

func (s *Scheduler) beginArena() {
	s.arena.Reset()
	s.enter(PhaseArenaForming)
	if s.deps.Fight != nil {
		s.deps.Fight.ActivateAtPosition(s.meetingPoint, s.cfg.Theme)
	}
}

func (s *Scheduler) checkFightOver() {
	switch {
	case s.deps.Fight == nil:
		s.enter(PhaseComplete)
	case s.deps.Fight.Completed():
		s.enter(PhaseComplete)
	case s.phaseTimer >= s.cfg.FightTimeLimit:
		s.log.Warn("encounter fight time limit reached", "limit_ms", s.cfg.FightTimeLimit)
		s.enter(PhaseComplete)
	}
}

// enter moves to next if it is ahead of the current phase.
func (s *Scheduler) enter(next Phase) {
	if next <= s.phase {
		return
	}
	prev := s.phase
	s.phase = next
	s.phaseTimer = 0
	s.log.Info("encounter phase", "from", prev, "to", next, "elapsed_ms", s.elapsed)
	if s.deps.OnPhaseChange != nil {
		s.deps.OnPhaseChange(prev, next)
	}
}

func (s *Scheduler) playerPosition() (cp.Vector, bool) {
	if s.deps.Player == nil {
		return cp.Vector{}, false
	}
	return s.deps.Player(), true
}

func (s *Scheduler) scrollLimit() (float64, bool) {
	if s.deps.Scroll == nil {
		return 0, false
	}
	return s.deps.Scroll.Limit()
}

func (s *Scheduler) Phase() Phase { return s.phase }

// Boundary is the limit the player may not retreat past. It only moves
// while the boss is approaching.
func (s *Scheduler) Boundary() float64 { return s.boundary.Value() }

// IsBlocking reports whether unrelated gameplay such as spawning should be
// suspended.
func (s *Scheduler) IsBlocking() bool {
	return s.phase == PhaseMeeting || s.phase == PhaseArenaForming
}

func (s *Scheduler) IsInBossPhase() bool { return s.phase >= PhaseBossFight }

// Running reports whether Update currently has any effect.
func (s *Scheduler) Running() bool {
	return !s.paused && s.phase != PhaseDormant && s.phase != PhaseComplete
}

func (s *Scheduler) Paused() bool { return s.paused }

func (s *Scheduler) Boss() *Boss { return s.boss }

func (s *Scheduler) Profile() SpeedProfile { return s.profile }

func (s *Scheduler) Speed() float64 { return s.speed }

func (s *Scheduler) Elapsed() float64 { return s.elapsed }

func (s *Scheduler) TimerExpired() bool { return s.timerExpired }

// MeetingPoint is valid once the meeting has begun.
func (s *Scheduler) MeetingPoint() (cp.Vector, bool) { return s.meetingPoint, s.hasMeeting }

func (s *Scheduler) MeetingCause() MeetingCause { return s.cause }

func (s *Scheduler) ArenaProgress() float64 { return s.arena.Progress() }

func (s *Scheduler) ArenaRemaining() float64 { return s.arena.Remaining() }

// Snapshot is a read-only view for debug tooling.
type Snapshot struct {
	Phase        string  `yaml:"phase"`
	ElapsedMS    float64 `yaml:"elapsed_ms"`
	Speed        float64 `yaml:"speed"`
	TimerExpired bool    `yaml:"timer_expired"`
	BossX        float64 `yaml:"boss_x"`
	BossY        float64 `yaml:"boss_y"`
	Boundary     float64 `yaml:"boundary"`
	MeetingX     float64 `yaml:"meeting_x,omitempty"`
	MeetingY     float64 `yaml:"meeting_y,omitempty"`
	Cause        string  `yaml:"cause,omitempty"`
	ArenaForm    float64 `yaml:"arena_progress"`
	BaseSpeed    float64 `yaml:"base_speed"`
	Acceleration float64 `yaml:"acceleration"`
}

func (s *Scheduler) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:        s.phase.String(),
		ElapsedMS:    s.elapsed,
		Speed:        s.speed,
		TimerExpired: s.timerExpired,
		BossX:        s.boss.Position().X,
		BossY:        s.boss.Position().Y,
		Boundary:     s.boundary.Value(),
		ArenaForm:    s.arena.Progress(),
		BaseSpeed:    s.profile.BaseSpeed,
		Acceleration: s.profile.Acceleration,
	}
	if s.hasMeeting {
		snap.MeetingX = s.meetingPoint.X
		snap.MeetingY = s.meetingPoint.Y
		snap.Cause = s.cause.String()
	}
	return snap
}
