package encounter

import "github.com/jakecoffman/cp"

// MeetingCause names the condition that ended the approach.
type MeetingCause int

const (
	CauseNone MeetingCause = iota
	// CauseContact: boss and player are within the contact distance.
	CauseContact
	// CauseCrossed: the boss reached or passed the player on the primary axis.
	CauseCrossed
	// CauseSqueeze: the scroll limit closed in on the boss.
	CauseSqueeze
)

func (c MeetingCause) String() string {
	switch c {
	case CauseContact:
		return "contact"
	case CauseCrossed:
		return "crossed"
	case CauseSqueeze:
		return "squeeze"
	default:
		return "none"
	}
}

// MeetingDetector decides whether the approach should end this tick.
type MeetingDetector struct {
	ContactDistance float64
	PassMargin      float64
	MinBoundaryGap  float64
	Direction       float64
}

// Check returns the first condition that holds, or CauseNone.
func (d MeetingDetector) Check(boss, player cp.Vector, limit float64, hasLimit bool) MeetingCause {
	if boss.Distance(player) < d.ContactDistance {
		return CauseContact
	}
	if (player.X-boss.X)*d.Direction < d.PassMargin {
		return CauseCrossed
	}
	if hasLimit && (limit-boss.X)*d.Direction < d.MinBoundaryGap {
		return CauseSqueeze
	}
	return CauseNone
}
