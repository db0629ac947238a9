package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/jackrabbit/ecs"
	"github.com/milk9111/jackrabbit/ecs/component"
	"github.com/milk9111/jackrabbit/movement"
	"github.com/milk9111/jackrabbit/prefabs"
	"go.uber.org/zap"
)

const (
	defaultColliderWidth  = 0.8
	defaultColliderHeight = 1.6
)

// NewPlayer spawns the player at spawn (feet position). The controller reads
// the entity's Input and PlayerCollision components and drives its physics
// body. Controller events are pushed onto the world event queue.
func NewPlayer(w *ecs.World, pw *ecs.PhysicsWorld, spec *prefabs.PlayerSpec, spawn mgl64.Vec3, log *zap.Logger) (ecs.Entity, error) {
	if spec == nil || pw == nil {
		return 0, fmt.Errorf("player: nil spec or physics world")
	}

	e := w.CreateEntity()
	fail := func(step string, err error) (ecs.Entity, error) {
		pw.RemoveBody(e)
		w.DestroyEntity(e)
		return 0, fmt.Errorf("player: %s: %w", step, err)
	}

	if err := ecs.Add(w, e, component.PlayerTagComponent, component.PlayerTag{}); err != nil {
		return fail("add player tag", err)
	}
	if err := ecs.Add(w, e, component.InputComponent, component.Input{}); err != nil {
		return fail("add input", err)
	}
	if err := ecs.Add(w, e, component.PlayerCollisionComponent, component.PlayerCollision{}); err != nil {
		return fail("add player collision", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent, component.Transform{X: spawn.X(), Y: spawn.Y(), Z: spawn.Z()}); err != nil {
		return fail("add transform", err)
	}

	width, height := spec.Collider.Width, spec.Collider.Height
	if width <= 0 {
		width = defaultColliderWidth
	}
	if height <= 0 {
		height = defaultColliderHeight
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent, pw.AddBody(e, spawn, width, height, spec.Collider.Friction)); err != nil {
		return fail("add physics body", err)
	}

	ctl, err := movement.New(spec.Config(),
		movement.WithInputSource(movement.InputSourceFunc(func() movement.Input {
			in, _ := ecs.Get(w, e, component.InputComponent)
			return in.Movement()
		})),
		movement.WithGroundProbe(movement.GroundProbeFunc(func() bool {
			pc, _ := ecs.Get(w, e, component.PlayerCollisionComponent)
			return pc.Grounded
		})),
		movement.WithBodyMover(pw.Mover(e)),
		movement.WithInitialPosition(spawn),
		movement.WithLogger(log),
	)
	if err != nil {
		return fail("build controller", err)
	}

	sub := ctl.Subscribe(func(evt movement.Event) {
		w.Events().Push(ecs.Event{Type: ecs.EventMovement, Entity: e, Data: evt})
	})
	if err := ecs.Add(w, e, component.PlayerComponent, component.Player{Controller: ctl, Subscription: sub}); err != nil {
		sub.Close()
		return fail("add player", err)
	}
	return e, nil
}

// DestroyPlayer releases the controller subscription and the physics body.
func DestroyPlayer(w *ecs.World, pw *ecs.PhysicsWorld, e ecs.Entity) {
	if p, ok := ecs.Get(w, e, component.PlayerComponent); ok && p.Subscription != nil {
		p.Subscription.Close()
	}
	pw.RemoveBody(e)
	w.DestroyEntity(e)
}
