package component

// Spawner emits hostiles ahead of the player every Interval milliseconds.
type Spawner struct {
	Interval  float64
	Ahead     float64
	MaxAlive  int
	Speed     float64
	Radius    float64
	Countdown float64
	Spawned   int
}

var SpawnerComponent = NewComponent[Spawner]()
