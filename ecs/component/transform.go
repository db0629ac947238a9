package component

// Transform is a world-space pose: Y up, Z is depth, Yaw 0 faces +Z.
type Transform struct {
	X   float64
	Y   float64
	Z   float64
	Yaw float64
}

var TransformComponent = NewComponent[Transform]()
