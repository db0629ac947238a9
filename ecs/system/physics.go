package system

import (
	"github.com/milk9111/jackrabbit/ecs"
	"github.com/milk9111/jackrabbit/ecs/component"
)

// PhysicsSystem steps the Chipmunk space and copies resolved positions and
// ground contacts back into the world and the player controllers.
type PhysicsSystem struct {
	pw *ecs.PhysicsWorld
	dt float64
}

func NewPhysicsSystem(pw *ecs.PhysicsWorld, dt float64) *PhysicsSystem {
	return &PhysicsSystem{pw: pw, dt: dt}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || ps.pw == nil || w == nil {
		return
	}

	ps.pw.Step(ps.dt)

	ecs.ForEach2(w, component.PhysicsBodyComponent, component.TransformComponent, func(e ecs.Entity, _ *component.PhysicsBody, t *component.Transform) {
		feet, ok := ps.pw.Feet(e)
		if !ok {
			return
		}
		t.X, t.Y, t.Z = feet.X(), feet.Y(), feet.Z()

		if player, ok := ecs.Get(w, e, component.PlayerComponent); ok && player.Controller != nil {
			player.Controller.SyncPosition(feet)
			t.Yaw = player.Controller.Body().Yaw
		}
	})

	ecs.ForEach(w, component.PlayerCollisionComponent, func(e ecs.Entity, pc *component.PlayerCollision) {
		pc.Grounded, pc.Contacts = ps.pw.Grounded(e)
	})
}
