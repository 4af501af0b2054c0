package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type HostileTag struct{}

var HostileTagComponent = NewComponent[HostileTag]()

// Hostile drifts toward the player at Speed units per millisecond.
type Hostile struct {
	Speed float64
}

var HostileComponent = NewComponent[Hostile]()
