package component

// Player holds movement tuning in units per millisecond.
type Player struct {
	MoveSpeed float64
}

var PlayerComponent = NewComponent[Player]()
