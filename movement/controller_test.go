package movement

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const testDT = 0.01

var (
	noInput   = Input{}
	jumpPress = Input{JumpPressed: true, JumpHeld: true}
)

func newTestController(t *testing.T, mutate func(*Config)) *Controller {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	ctl, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return ctl
}

// run steps n ticks with the same input and returns the last result.
func run(c *Controller, n int, in Input, grounded bool) StepResult {
	var res StepResult
	for i := 0; i < n; i++ {
		res = c.Step(testDT, in, grounded)
	}
	return res
}

// near compares vectors component-wise with an absolute tolerance.
func near(got, want []float64) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			return false
		}
	}
	return true
}

func countJumps(c *Controller) *int {
	n := new(int)
	c.Subscribe(func(evt Event) {
		if evt.Kind == EventJumped {
			*n++
		}
	})
	return n
}

func TestControllerStartsIdle(t *testing.T) {
	ctl := newTestController(t, nil)
	if ctl.State() != StateIdle {
		t.Fatalf("initial state = %s, want idle", ctl.State())
	}
	if ctl.Body().JumpsRemaining != ctl.Config().MaxJumpCharges {
		t.Fatalf("expected full jump charges")
	}
	res := run(ctl, 3, noInput, true)
	if res.State != StateIdle || !res.Grounded {
		t.Fatalf("grounded without input should stay idle, got %+v", res)
	}
}

func TestControllerTransitions(t *testing.T) {
	cases := []struct {
		name     string
		start    state
		vy       float64
		in       Input
		grounded bool
		want     StateName
	}{
		{"idle_to_move", stateIdle, 0, Input{MoveX: 1}, true, StateMove},
		{"idle_to_fall", stateIdle, 0, noInput, false, StateFall},
		{"idle_deadzone_stays", stateIdle, 0, Input{MoveX: 0.05}, true, StateIdle},
		{"move_to_idle", stateMove, 0, noInput, true, StateIdle},
		{"move_to_fall", stateMove, 0, Input{MoveY: 1}, false, StateFall},
		{"move_to_jump", stateMove, 0, Input{MoveY: 1, JumpPressed: true}, true, StateJump},
		{"jump_to_fall", stateJump, -1, noInput, false, StateFall},
		{"jump_stays_rising", stateJump, 5, noInput, false, StateJump},
		{"jump_lands_idle", stateJump, 0, noInput, true, StateIdle},
		{"jump_lands_moving", stateJump, 0, Input{MoveX: -1}, true, StateMove},
		{"fall_lands_idle", stateFall, -3, noInput, true, StateIdle},
		{"fall_lands_moving", stateFall, -3, Input{MoveX: 1}, true, StateMove},
		{"fall_stays", stateFall, -3, noInput, false, StateFall},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctl := newTestController(t, nil)
			ctl.current = c.start
			ctl.body.VerticalVelocity = c.vy
			ctl.body.Grounded = c.grounded
			res := ctl.Step(testDT, c.in, c.grounded)
			if res.State != c.want {
				t.Fatalf("state = %s, want %s", res.State, c.want)
			}
		})
	}
}

func TestGroundedClampsVerticalVelocity(t *testing.T) {
	for _, start := range []state{stateIdle, stateMove, stateFall} {
		t.Run(string(start.Name()), func(t *testing.T) {
			ctl := newTestController(t, nil)
			ctl.current = start
			ctl.body.VerticalVelocity = -7
			res := ctl.Step(testDT, noInput, true)
			if res.VerticalVelocity != 0 {
				t.Fatalf("vertical velocity = %v, want exactly 0", res.VerticalVelocity)
			}
		})
	}
}

func TestVerticalVelocityNeverBelowMaxFallSpeed(t *testing.T) {
	ctl := newTestController(t, nil)
	for i := 0; i < 2000; i++ {
		res := ctl.Step(testDT, Input{MoveX: math.Sin(float64(i))}, i%97 == 0)
		if res.VerticalVelocity < ctl.Config().MaxFallSpeed {
			t.Fatalf("tick %d: vy %v below %v", i, res.VerticalVelocity, ctl.Config().MaxFallSpeed)
		}
	}
}

func TestSettlesInIdle(t *testing.T) {
	for _, start := range []state{stateIdle, stateMove, stateJump, stateFall} {
		t.Run(string(start.Name()), func(t *testing.T) {
			ctl := newTestController(t, nil)
			ctl.current = start
			ctl.body.VerticalVelocity = 6
			settled := false
			for i := 0; i < 200; i++ {
				if ctl.Step(testDT, noInput, true).State == StateIdle {
					settled = true
					break
				}
			}
			if !settled {
				t.Fatalf("controller did not settle in idle, state %s", ctl.State())
			}
		})
	}
}

func TestCoyoteWindow(t *testing.T) {
	cases := []struct {
		name      string
		pressTick int // ticks after leaving ground
		want      StateName
	}{
		{"inside_window", 15, StateJump},
		{"after_window", 25, StateFall},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctl := newTestController(t, func(cfg *Config) {
				cfg.CoyoteWindow = 0.2
				cfg.JumpBufferWindow = 0.1
				cfg.MaxJumpCharges = 1
			})
			run(ctl, 10, noInput, true)

			// leave the ground at t=0 and wait
			run(ctl, c.pressTick, noInput, false)
			if ctl.State() != StateFall {
				t.Fatalf("expected fall before the press, got %s", ctl.State())
			}

			res := ctl.Step(testDT, jumpPress, false)
			if res.State != c.want {
				t.Fatalf("state after press = %s, want %s", res.State, c.want)
			}
		})
	}
}

func TestJumpBuffer(t *testing.T) {
	cases := []struct {
		name      string
		landTick  int // ticks after the press
		wantJumps int
	}{
		{"lands_inside_window", 5, 1},
		{"lands_after_window", 15, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctl := newTestController(t, func(cfg *Config) {
				cfg.CoyoteWindow = 0.2
				cfg.JumpBufferWindow = 0.1
				cfg.MaxJumpCharges = 1
			})
			jumps := countJumps(ctl)

			res := ctl.Step(testDT, jumpPress, false)
			if res.State == StateJump {
				t.Fatalf("press in the air without charges must not jump")
			}
			run(ctl, c.landTick-1, noInput, false)

			res = ctl.Step(testDT, noInput, true)
			if c.wantJumps > 0 && res.State != StateJump {
				t.Fatalf("expected buffered jump on landing, got %s", res.State)
			}
			run(ctl, 10, noInput, true)
			if *jumps != c.wantJumps {
				t.Fatalf("jumps = %d, want %d", *jumps, c.wantJumps)
			}
		})
	}
}

func TestDoubleJump(t *testing.T) {
	ctl := newTestController(t, func(cfg *Config) { cfg.MaxJumpCharges = 2 })
	jumps := countJumps(ctl)

	run(ctl, 5, noInput, true)
	res := ctl.Step(testDT, jumpPress, true)
	if res.State != StateJump || res.JumpsRemaining != 1 {
		t.Fatalf("ground jump: state %s charges %d", res.State, res.JumpsRemaining)
	}
	if res.VerticalVelocity <= 0 {
		t.Fatalf("jump should move upward, vy %v", res.VerticalVelocity)
	}

	run(ctl, 10, noInput, false)
	res = ctl.Step(testDT, jumpPress, false)
	if res.State != StateJump || res.JumpsRemaining != 0 || *jumps != 2 {
		t.Fatalf("air jump: state %s charges %d jumps %d", res.State, res.JumpsRemaining, *jumps)
	}
	airImpulse := ctl.Config().JumpImpulse * ctl.Config().AirJumpFactor
	if res.VerticalVelocity > airImpulse {
		t.Fatalf("air jump vy %v should not exceed scaled impulse %v", res.VerticalVelocity, airImpulse)
	}

	run(ctl, 5, noInput, false)
	res = ctl.Step(testDT, jumpPress, false)
	if *jumps != 2 || res.JumpsRemaining != 0 {
		t.Fatalf("third press must be ignored: jumps %d charges %d", *jumps, res.JumpsRemaining)
	}
}

func TestSinglePressJumpsOnceWhileGroundFlickers(t *testing.T) {
	ctl := newTestController(t, func(cfg *Config) { cfg.JumpBufferWindow = 0.2 })
	jumps := countJumps(ctl)

	run(ctl, 3, noInput, true)
	ctl.Step(testDT, jumpPress, true)
	for i := 0; i < 30; i++ {
		ctl.Step(testDT, noInput, i%2 == 0)
	}
	if *jumps != 1 {
		t.Fatalf("one press produced %d jumps", *jumps)
	}
}

func TestHeldJumpDoesNotRepeat(t *testing.T) {
	ctl := newTestController(t, nil)
	jumps := countJumps(ctl)

	run(ctl, 3, noInput, true)
	ctl.Step(testDT, jumpPress, true)
	run(ctl, 40, Input{JumpPressed: true, JumpHeld: true}, false)
	if *jumps != 1 {
		t.Fatalf("holding jump produced %d jumps", *jumps)
	}
}

func TestLeavingGroundForfeitsGroundJump(t *testing.T) {
	ctl := newTestController(t, func(cfg *Config) {
		cfg.MaxJumpCharges = 2
		cfg.CoyoteWindow = 0.1
	})
	run(ctl, 3, noInput, true)
	run(ctl, 5, noInput, false)
	if ctl.Body().JumpsRemaining != 2 {
		t.Fatalf("charges inside coyote window = %d, want 2", ctl.Body().JumpsRemaining)
	}
	run(ctl, 10, noInput, false)
	if ctl.Body().JumpsRemaining != 1 {
		t.Fatalf("charges after coyote window = %d, want 1", ctl.Body().JumpsRemaining)
	}
	run(ctl, 1, noInput, true)
	if ctl.Body().JumpsRemaining != 2 {
		t.Fatalf("landing should restore charges, got %d", ctl.Body().JumpsRemaining)
	}
}

func TestPlanarMotion(t *testing.T) {
	cases := []struct {
		name    string
		in      Input
		wantVel mgl64.Vec2
	}{
		{"forward", Input{MoveY: 1}, mgl64.Vec2{0, 8}},
		{"right", Input{MoveX: 1}, mgl64.Vec2{8, 0}},
		{"sprint", Input{MoveX: -1, SprintHeld: true}, mgl64.Vec2{-14, 0}},
		{"diagonal_normalized", Input{MoveX: 1, MoveY: 1}, mgl64.Vec2{8 / math.Sqrt2, 8 / math.Sqrt2}},
		{"partial_tilt_full_speed", Input{MoveY: 0.5}, mgl64.Vec2{0, 8}},
		{"deadzone", Input{MoveY: 0.05}, mgl64.Vec2{}},
		{"view_relative", Input{MoveY: 1, ViewYaw: math.Pi / 2}, mgl64.Vec2{8, 0}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctl := newTestController(t, nil)
			res := ctl.Step(testDT, c.in, true)
			if !near(res.HorizontalVelocity[:], c.wantVel[:]) {
				t.Fatalf("horizontal velocity = %v, want %v", res.HorizontalVelocity, c.wantVel)
			}
		})
	}
}

func TestRotationIsBounded(t *testing.T) {
	ctl := newTestController(t, nil)
	step := ctl.Config().RotationRate * testDT

	res := ctl.Step(testDT, Input{MoveX: 1}, true)
	if math.Abs(res.OrientationDelta-step) > 1e-9 {
		t.Fatalf("orientation delta = %v, want %v", res.OrientationDelta, step)
	}

	run(ctl, 100, Input{MoveX: 1}, true)
	if math.Abs(ctl.Body().Yaw-math.Pi/2) > 1e-9 {
		t.Fatalf("yaw = %v, want pi/2", ctl.Body().Yaw)
	}

	res = ctl.Step(testDT, noInput, true)
	if res.OrientationDelta != 0 {
		t.Fatalf("no input should keep facing, delta %v", res.OrientationDelta)
	}
}

func TestStepIgnoresBadDeltaTime(t *testing.T) {
	ctl := newTestController(t, nil)
	ctl.Step(testDT, noInput, false)
	before := ctl.Body()
	for _, dt := range []float64{-1, math.NaN(), math.Inf(1)} {
		ctl.Step(dt, noInput, false)
	}
	after := ctl.Body()
	if after.VerticalVelocity != before.VerticalVelocity || after.Position != before.Position {
		t.Fatalf("bad dt should not advance the body: before %+v after %+v", before, after)
	}
}

func TestTick(t *testing.T) {
	t.Run("requires_input_source", func(t *testing.T) {
		ctl := newTestController(t, nil)
		if _, err := ctl.Tick(testDT); !errors.Is(err, ErrNoInputSource) {
			t.Fatalf("expected ErrNoInputSource, got %v", err)
		}
	})

	t.Run("requires_ground_probe", func(t *testing.T) {
		ctl, err := New(DefaultConfig(), WithInputSource(InputSourceFunc(func() Input { return noInput })))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if _, err := ctl.Tick(testDT); !errors.Is(err, ErrNoGroundProbe) {
			t.Fatalf("expected ErrNoGroundProbe, got %v", err)
		}
	})

	t.Run("moves_body", func(t *testing.T) {
		var moved mgl64.Vec3
		var movedDT float64
		ctl, err := New(DefaultConfig(),
			WithInputSource(InputSourceFunc(func() Input { return Input{MoveY: 1} })),
			WithGroundProbe(GroundProbeFunc(func() bool { return true })),
			WithBodyMover(BodyMoverFunc(func(v mgl64.Vec3, dt float64) {
				moved = v
				movedDT = dt
			})),
			WithInitialPosition(mgl64.Vec3{1, 2, 3}),
		)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		res, err := ctl.Tick(testDT)
		if err != nil {
			t.Fatalf("Tick: %v", err)
		}
		if res.State != StateMove {
			t.Fatalf("state = %s, want move", res.State)
		}
		if want := (mgl64.Vec3{0, 0, 8}); !near(moved[:], want[:]) || movedDT != testDT {
			t.Fatalf("mover got %v dt %v", moved, movedDT)
		}
		if want := (mgl64.Vec3{1, 2, 3.08}); !near(res.Position[:], want[:]) {
			t.Fatalf("position = %v", res.Position)
		}
	})
}

func TestReconfigure(t *testing.T) {
	ctl := newTestController(t, func(cfg *Config) { cfg.MaxJumpCharges = 3 })
	run(ctl, 2, noInput, true)

	bad := ctl.Config()
	bad.CoyoteWindow = -1
	if err := ctl.Reconfigure(bad); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if ctl.Config().CoyoteWindow < 0 {
		t.Fatalf("rejected config must not be applied")
	}

	next := ctl.Config()
	next.MaxJumpCharges = 1
	next.BaseSpeed = 2
	if err := ctl.Reconfigure(next); err != nil {
		t.Fatalf("Reconfigure: %v", err)
	}
	if ctl.Body().JumpsRemaining != 1 {
		t.Fatalf("charges should clamp to new maximum, got %d", ctl.Body().JumpsRemaining)
	}
	res := ctl.Step(testDT, Input{MoveX: 1}, true)
	if math.Abs(res.HorizontalVelocity.X()-2) > 1e-9 {
		t.Fatalf("new base speed not applied: %v", res.HorizontalVelocity)
	}
}

func TestDebugString(t *testing.T) {
	ctl := newTestController(t, nil)
	ctl.Step(testDT, Input{MoveX: 1, SprintHeld: true}, true)
	out := ctl.DebugString()
	for _, want := range []string{"State: move", "Grounded: true", "Sprint Input: true", "Remaining Jumps: 2"} {
		if !strings.Contains(out, want+"\n") {
			t.Fatalf("debug string %q missing %q", out, want)
		}
	}
}
