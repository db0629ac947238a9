package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Width and Height are world units; the body is centered Height/2 above the
// entity's feet.
type PhysicsBody struct {
	Body        *cp.Body
	Shape       *cp.Shape
	GroundShape *cp.Shape
	Width       float64
	Height      float64
	Friction    float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
