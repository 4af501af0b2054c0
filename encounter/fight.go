package encounter

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
)

// Fight is the combat subsystem the encounter hands off to.
type Fight interface {
	// ActivateAtPosition is called once, on ARENA_FORMING entry.
	ActivateAtPosition(point cp.Vector, themeKey string)
	Update(dt float64)
	Draw(screen *ebiten.Image)
	Completed() bool
}

// ScrollLimiter exposes the scroll boundary's forward limit on the primary
// axis. ok is false while no limit applies.
type ScrollLimiter interface {
	Limit() (limit float64, ok bool)
}

// Pusher is the collaborator that forces forward progress. It is held once
// the boss and player meet and released when the encounter stops.
type Pusher interface {
	Hold()
	Release()
}
