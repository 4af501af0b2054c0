package scroll

// ForwardGate keeps a primary-axis coordinate at or ahead of every limit it
// is given.
type ForwardGate struct {
	direction float64
	limits    []func() float64
}

func NewForwardGate(direction float64, limits ...func() float64) ForwardGate {
	if direction >= 0 {
		direction = 1
	} else {
		direction = -1
	}
	return ForwardGate{direction: direction, limits: limits}
}

// Clamp returns x moved up to the furthest limit, and whether it moved.
func (g ForwardGate) Clamp(x float64) (float64, bool) {
	clamped := false
	for _, limit := range g.limits {
		if limit == nil {
			continue
		}
		l := limit()
		if (l-x)*g.direction > 0 {
			x = l
			clamped = true
		}
	}
	return x, clamped
}
