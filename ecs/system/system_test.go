package system

import (
	"math"
	"testing"

	"github.com/milk9111/jackrabbit/ecs"
	"github.com/milk9111/jackrabbit/ecs/component"
	"github.com/milk9111/jackrabbit/ecs/entity"
	"github.com/milk9111/jackrabbit/movement"
	"github.com/milk9111/jackrabbit/prefabs"
)

const testDT = 1.0 / 60

type playground struct {
	w      *ecs.World
	pw     *ecs.PhysicsWorld
	sched  *ecs.Scheduler
	player ecs.Entity
	camera ecs.Entity
}

func newPlayground(t *testing.T) *playground {
	t.Helper()
	prev := prefabs.DiskRoot
	prefabs.DiskRoot = t.TempDir()
	t.Cleanup(func() { prefabs.DiskRoot = prev })

	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		t.Fatalf("LoadPlayerSpec: %v", err)
	}
	lvl := &prefabs.LevelSpec{
		Depth:  10,
		Spawn:  prefabs.PointSpec{X: 3, Y: 2},
		Solids: []prefabs.RectSpec{{X: -20, Y: -1, Width: 40, Height: 1}},
	}

	w := ecs.NewWorld()
	pw := ecs.NewPhysicsWorld(lvl.Depth)
	spawn, err := entity.LoadLevelToWorld(w, pw, lvl)
	if err != nil {
		t.Fatalf("LoadLevelToWorld: %v", err)
	}
	player, err := entity.NewPlayer(w, pw, spec, spawn, nil)
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	camera, err := entity.NewCamera(w, 0, 0)
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}

	sched := ecs.NewScheduler(
		NewPlayerControllerSystem(testDT, nil),
		NewPhysicsSystem(pw, testDT),
		NewCameraSystem(),
	)
	return &playground{w: w, pw: pw, sched: sched, player: player, camera: camera}
}

func (p *playground) run(n int) {
	for i := 0; i < n; i++ {
		p.sched.Update(p.w)
	}
}

func (p *playground) setInput(in component.Input) {
	_ = ecs.Add(p.w, p.player, component.InputComponent, in)
}

func (p *playground) controller(t *testing.T) *movement.Controller {
	t.Helper()
	player, ok := ecs.Get(p.w, p.player, component.PlayerComponent)
	if !ok || player.Controller == nil {
		t.Fatalf("player has no controller")
	}
	return player.Controller
}

func movementEvents(w *ecs.World) []movement.Event {
	var out []movement.Event
	for _, evt := range w.Events().Drain() {
		if evt.Type != ecs.EventMovement {
			continue
		}
		if me, ok := evt.Data.(movement.Event); ok {
			out = append(out, me)
		}
	}
	return out
}

func TestPlayerFallsAndLands(t *testing.T) {
	p := newPlayground(t)
	p.run(120)

	ctl := p.controller(t)
	if ctl.State() != movement.StateIdle {
		t.Fatalf("expected idle after landing, got %s", ctl.State())
	}
	if ctl.Body().JumpsRemaining != ctl.Config().MaxJumpCharges {
		t.Fatalf("charges not reset on landing: %d", ctl.Body().JumpsRemaining)
	}
	tr, _ := ecs.Get(p.w, p.player, component.TransformComponent)
	if math.Abs(tr.Y) > 0.15 {
		t.Fatalf("expected feet on the floor, got y=%v", tr.Y)
	}
	if ctl.Body().Position.Y() != tr.Y {
		t.Fatalf("controller position not synced: %v vs %v", ctl.Body().Position, tr)
	}
	pc, _ := ecs.Get(p.w, p.player, component.PlayerCollisionComponent)
	if !pc.Grounded || pc.Contacts == 0 {
		t.Fatalf("expected ground contact, got %+v", pc)
	}

	kinds := map[movement.EventKind]int{}
	for _, evt := range movementEvents(p.w) {
		kinds[evt.Kind]++
	}
	if kinds[movement.EventLanded] != 1 {
		t.Fatalf("expected one landing event, got %v", kinds)
	}
}

func TestPlayerJumpsFromFloor(t *testing.T) {
	p := newPlayground(t)
	p.run(120)
	movementEvents(p.w)

	p.setInput(component.Input{Jump: true, JumpPressed: true})
	p.run(1)
	p.setInput(component.Input{})

	ctl := p.controller(t)
	if ctl.State() != movement.StateJump {
		t.Fatalf("expected jump, got %s", ctl.State())
	}
	jumped := false
	for _, evt := range movementEvents(p.w) {
		if evt.Kind == movement.EventJumped && !evt.Air {
			jumped = true
		}
	}
	if !jumped {
		t.Fatalf("expected a ground jump event")
	}

	p.run(10)
	tr, _ := ecs.Get(p.w, p.player, component.TransformComponent)
	if tr.Y < 0.5 {
		t.Fatalf("expected the body to rise, got y=%v", tr.Y)
	}
}

func TestPlayerWalksAndSprints(t *testing.T) {
	p := newPlayground(t)
	p.run(120)
	start, _ := ecs.Get(p.w, p.player, component.TransformComponent)

	p.setInput(component.Input{MoveX: 1})
	p.run(30)
	walked, _ := ecs.Get(p.w, p.player, component.TransformComponent)

	p.setInput(component.Input{MoveX: 1, Sprint: true})
	p.run(30)
	sprinted, _ := ecs.Get(p.w, p.player, component.TransformComponent)

	walk := walked.X - start.X
	sprint := sprinted.X - walked.X
	if walk <= 0 || sprint <= walk {
		t.Fatalf("expected sprint to cover more ground: walk=%v sprint=%v", walk, sprint)
	}
	if p.controller(t).State() != movement.StateMove {
		t.Fatalf("expected move state, got %s", p.controller(t).State())
	}
	if math.Abs(walked.Yaw-math.Pi/2) > 0.01 {
		t.Fatalf("expected to face +X, yaw=%v", walked.Yaw)
	}
}

func TestCameraFollowsPlayer(t *testing.T) {
	p := newPlayground(t)
	p.run(240)

	cam, _ := ecs.Get(p.w, p.camera, component.TransformComponent)
	tr, _ := ecs.Get(p.w, p.player, component.TransformComponent)
	if math.Abs(cam.X-tr.X) > 0.05 || math.Abs(cam.Y-tr.Y) > 0.05 {
		t.Fatalf("camera did not settle on the player: cam=%+v player=%+v", cam, tr)
	}
}

func TestDestroyPlayerReleasesBody(t *testing.T) {
	p := newPlayground(t)
	entity.DestroyPlayer(p.w, p.pw, p.player)
	if p.w.IsAlive(p.player) {
		t.Fatalf("player should be destroyed")
	}
	if _, ok := p.pw.Feet(p.player); ok {
		t.Fatalf("physics body should be removed")
	}
	p.run(5)
}
