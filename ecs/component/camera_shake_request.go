package component

// CameraShakeRequest asks the scroll system to shake the camera. Duration is
// in milliseconds, Intensity in world units.
type CameraShakeRequest struct {
	Duration  float64
	Intensity float64
}

var CameraShakeRequestComponent = NewComponent[CameraShakeRequest]()
