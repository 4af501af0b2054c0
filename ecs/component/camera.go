package component

// Camera is the top-left corner of the view. ShakeX and ShakeY are added on
// top while a shake runs.
type Camera struct {
	X          float64
	Y          float64
	Smoothness float64

	ShakeX         float64
	ShakeY         float64
	ShakeRemaining float64
	ShakeDuration  float64
	ShakeIntensity float64
}

var CameraComponent = NewComponent[Camera]()
