package encounter

// Boundary is the one-directional limit trailing the boss. A forward
// progress gate reads it so the player cannot retreat past ground the boss
// has already covered.
type Boundary struct {
	margin    float64
	direction float64
	value     float64
}

func newBoundary(margin, direction, bossPrimary float64) *Boundary {
	b := &Boundary{margin: margin, direction: direction}
	b.Recompute(bossPrimary)
	return b
}

// Recompute sets the boundary from the boss's primary-axis coordinate.
func (b *Boundary) Recompute(bossPrimary float64) {
	b.value = bossPrimary - b.direction*b.margin
}

func (b *Boundary) Value() float64 { return b.value }
