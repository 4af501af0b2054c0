package encounter

// Phase is the encounter state. Phases are ordered; the scheduler only ever
// moves to a greater one, except Stop which returns to PhaseDormant.
type Phase int

const (
	PhaseDormant Phase = iota
	PhaseApproaching
	PhaseWarning
	PhaseMeeting
	PhaseArenaForming
	PhaseBossFight
	PhaseComplete
)

var phaseNames = [...]string{
	PhaseDormant:      "dormant",
	PhaseApproaching:  "approaching",
	PhaseWarning:      "warning",
	PhaseMeeting:      "meeting",
	PhaseArenaForming: "arena_forming",
	PhaseBossFight:    "boss_fight",
	PhaseComplete:     "complete",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// approaching reports whether p runs the boss movement step.
func (p Phase) approaching() bool {
	return p == PhaseApproaching || p == PhaseWarning
}
