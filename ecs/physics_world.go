package ecs

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/jackrabbit/ecs/component"
	"github.com/milk9111/jackrabbit/movement"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypePlayer
	collisionTypeGroundSensor
)

// groundSensorReach is how far below the feet the ground sensor extends.
const groundSensorReach = 0.05

// PhysicsWorld owns the Chipmunk space. It runs without gravity: vertical
// motion comes from the movement controller, the space only resolves
// contacts in the XY plane. Depth (Z) is integrated here and clamped to the
// level depth.
type PhysicsWorld struct {
	space         *cp.Space
	depth         float64
	handlersReady bool

	bodies         map[Entity]*bodyState
	groundToEntity map[*cp.Shape]Entity
}

type bodyState struct {
	body       *cp.Body
	shape      *cp.Shape
	ground     *cp.Shape
	halfHeight float64
	z          float64
	contacts   int
}

// NewPhysicsWorld creates an empty space. depth <= 0 leaves Z unbounded.
func NewPhysicsWorld(depth float64) *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})

	pw := &PhysicsWorld{
		space:          space,
		depth:          depth,
		bodies:         make(map[Entity]*bodyState),
		groundToEntity: make(map[*cp.Shape]Entity),
	}
	pw.setupHandlers()
	return pw
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// AddSolid adds a static box anchored at its bottom-left corner.
func (pw *PhysicsWorld) AddSolid(s component.Solid) *cp.Shape {
	if pw == nil || pw.space == nil || s.Width <= 0 || s.Height <= 0 {
		return nil
	}
	bb := cp.BB{L: s.X, B: s.Y, R: s.X + s.Width, T: s.Y + s.Height}
	shape := cp.NewBox2(pw.space.StaticBody, bb, 0)
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeSolid)
	pw.space.AddShape(shape)
	return shape
}

// AddBody creates a non-rotating dynamic box for e with a ground sensor just
// below its feet.
func (pw *PhysicsWorld) AddBody(e Entity, feet mgl64.Vec3, width, height, friction float64) component.PhysicsBody {
	out := component.PhysicsBody{Width: width, Height: height, Friction: friction}
	if pw == nil || pw.space == nil || width <= 0 || height <= 0 {
		return out
	}
	pw.RemoveBody(e)

	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(cp.Vector{X: feet.X(), Y: feet.Y() + height/2})
	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(friction)
	shape.SetCollisionType(collisionTypePlayer)

	bb := cp.BB{
		L: -width * 0.45,
		B: -height/2 - groundSensorReach,
		R: width * 0.45,
		T: -height/2 + groundSensorReach,
	}
	ground := cp.NewBox2(body, bb, 0)
	ground.SetSensor(true)
	ground.SetCollisionType(collisionTypeGroundSensor)

	pw.space.AddBody(body)
	pw.space.AddShape(shape)
	pw.space.AddShape(ground)

	pw.bodies[e] = &bodyState{
		body:       body,
		shape:      shape,
		ground:     ground,
		halfHeight: height / 2,
		z:          pw.clampDepth(feet.Z()),
	}
	pw.groundToEntity[ground] = e

	out.Body = body
	out.Shape = shape
	out.GroundShape = ground
	return out
}

// RemoveBody drops e's body and shapes from the space.
func (pw *PhysicsWorld) RemoveBody(e Entity) {
	if pw == nil {
		return
	}
	st, ok := pw.bodies[e]
	if !ok {
		return
	}
	pw.space.RemoveShape(st.ground)
	pw.space.RemoveShape(st.shape)
	pw.space.RemoveBody(st.body)
	delete(pw.groundToEntity, st.ground)
	delete(pw.bodies, e)
}

// Mover returns a movement.BodyMover that drives e's body. The velocity is
// applied on the next Step.
func (pw *PhysicsWorld) Mover(e Entity) movement.BodyMover {
	return movement.BodyMoverFunc(func(velocity mgl64.Vec3, dt float64) {
		st, ok := pw.bodies[e]
		if !ok {
			return
		}
		st.body.SetVelocity(velocity.X(), velocity.Y())
		st.z = pw.clampDepth(st.z + velocity.Z()*dt)
	})
}

// Grounded reports whether e's ground sensor touched a solid during the last
// Step, and how many solids it touched.
func (pw *PhysicsWorld) Grounded(e Entity) (bool, int) {
	if pw == nil {
		return false, 0
	}
	st, ok := pw.bodies[e]
	if !ok {
		return false, 0
	}
	return st.contacts > 0, st.contacts
}

// Feet returns the resolved position of e's feet.
func (pw *PhysicsWorld) Feet(e Entity) (mgl64.Vec3, bool) {
	if pw == nil {
		return mgl64.Vec3{}, false
	}
	st, ok := pw.bodies[e]
	if !ok {
		return mgl64.Vec3{}, false
	}
	p := st.body.Position()
	return mgl64.Vec3{p.X, p.Y - st.halfHeight, st.z}, true
}

// Step advances the simulation and refreshes ground contacts.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil || dt <= 0 {
		return
	}
	for _, st := range pw.bodies {
		st.contacts = 0
	}
	pw.space.Step(dt)
}

func (pw *PhysicsWorld) clampDepth(z float64) float64 {
	if pw.depth <= 0 {
		return z
	}
	half := pw.depth / 2
	return math.Max(-half, math.Min(half, z))
}

func (pw *PhysicsWorld) setupHandlers() {
	if pw == nil || pw.handlersReady || pw.space == nil {
		return
	}

	groundHandler := pw.space.NewCollisionHandler(collisionTypeGroundSensor, collisionTypeSolid)
	groundHandler.UserData = pw
	groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*PhysicsWorld)
		if !ok || world == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		e, okA := world.groundToEntity[shapeA]
		if !okA {
			var okB bool
			e, okB = world.groundToEntity[shapeB]
			if !okB {
				return true
			}
		}
		if st := world.bodies[e]; st != nil {
			st.contacts++
		}
		return true
	}

	pw.handlersReady = true
}
