package common

// ActivityPolicy is shared by every system that can be paused or stopped.
// Under an always-active policy pause and stop requests are refused.
type ActivityPolicy struct {
	alwaysActive bool
}

func NewActivityPolicy(alwaysActive bool) *ActivityPolicy {
	return &ActivityPolicy{alwaysActive: alwaysActive}
}

// AlwaysActive reports whether pause and stop are disabled. A nil policy is
// a normal, pausable one.
func (p *ActivityPolicy) AlwaysActive() bool {
	return p != nil && p.alwaysActive
}

func (p *ActivityPolicy) CanPause() bool { return !p.AlwaysActive() }

func (p *ActivityPolicy) CanStop() bool { return !p.AlwaysActive() }
