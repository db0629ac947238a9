package component

type Camera struct {
	TargetName string
	Zoom       float64 // pixels per world unit
	Smoothness float64 // lerp factor per tick, 0 snaps
}

var CameraComponent = NewComponent[Camera]()
