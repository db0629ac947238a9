package movement

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/jackrabbit/common"
	"go.uber.org/zap"
)

var (
	ErrNoInputSource = errors.New("movement: no input source")
	ErrNoGroundProbe = errors.New("movement: no ground probe")
)

// StepResult is what the host needs after a tick.
type StepResult struct {
	HorizontalVelocity mgl64.Vec2
	VerticalVelocity   float64
	OrientationDelta   float64
	Position           mgl64.Vec3
	State              StateName
	Grounded           bool
	JumpsRemaining     int
}

// Controller runs the Idle/Move/Jump/Fall machine for a single body. It is
// not safe for concurrent use; step it from one goroutine.
type Controller struct {
	cfg        Config
	integrator Integrator
	log        *zap.Logger

	input InputSource
	probe GroundProbe
	mover BodyMover

	sampler  InputSampler
	snapshot Snapshot
	timers   TimerBank
	body     Body
	current  state
	next     state
	ticks    uint64
	dt       float64

	listeners      []listenerEntry
	nextListenerID uint64
	pending        []Event
}

type Option func(*Controller)

func WithInputSource(src InputSource) Option {
	return func(c *Controller) { c.input = src }
}

func WithGroundProbe(probe GroundProbe) Option {
	return func(c *Controller) { c.probe = probe }
}

func WithBodyMover(mover BodyMover) Option {
	return func(c *Controller) { c.mover = mover }
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

func WithInitialPosition(p mgl64.Vec3) Option {
	return func(c *Controller) { c.body.Position = p }
}

func WithInitialYaw(yaw float64) Option {
	return func(c *Controller) { c.body.Yaw = common.WrapAngle(yaw) }
}

// New builds a controller in the Idle state with a full set of jump charges.
func New(cfg Config, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Controller{
		cfg:        cfg,
		integrator: newIntegrator(cfg),
		log:        zap.NewNop(),
		sampler:    *NewInputSampler(),
		timers:     NewTimerBank(cfg.JumpBufferWindow, cfg.CoyoteWindow),
		current:    stateIdle,
	}
	c.body.JumpsRemaining = cfg.MaxJumpCharges
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Step advances the controller by one fixed tick.
func (c *Controller) Step(dt float64, in Input, grounded bool) StepResult {
	dt = common.Finite(dt)
	if dt < 0 {
		dt = 0
	}
	c.dt = dt
	c.ticks++

	c.snapshot = c.sampler.Sample(in)
	c.timers.Tick(dt, grounded, c.snapshot.JumpPressedEdge)
	c.updateGrounding(grounded)

	yawBefore := c.body.Yaw
	c.current.Update(c)
	c.commitTransition()

	c.body.VerticalVelocity = c.integrator.Step(c.body.VerticalVelocity, c.body.Grounded, dt)
	c.body.Position = c.body.Position.Add(c.body.Velocity().Mul(dt))

	c.dispatch()

	return StepResult{
		HorizontalVelocity: c.body.HorizontalVelocity,
		VerticalVelocity:   c.body.VerticalVelocity,
		OrientationDelta:   common.WrapAngle(c.body.Yaw - yawBefore),
		Position:           c.body.Position,
		State:              c.current.Name(),
		Grounded:           c.body.Grounded,
		JumpsRemaining:     c.body.JumpsRemaining,
	}
}

// Tick polls the injected collaborators, steps, and hands the new velocity to
// the body mover if one is set.
func (c *Controller) Tick(dt float64) (StepResult, error) {
	if c.input == nil {
		return StepResult{}, ErrNoInputSource
	}
	if c.probe == nil {
		return StepResult{}, ErrNoGroundProbe
	}
	res := c.Step(dt, c.input.Input(), c.probe.IsGrounded())
	if c.mover != nil {
		c.mover.Move(c.body.Velocity(), c.dt)
	}
	return res, nil
}

// Reconfigure swaps the tuning in place. Timers and the active state carry
// over; charges are clamped to the new maximum.
func (c *Controller) Reconfigure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		c.log.Warn("rejected controller config", zap.Error(err))
		return err
	}
	c.cfg = cfg
	c.integrator = newIntegrator(cfg)
	c.timers.resize(cfg.JumpBufferWindow, cfg.CoyoteWindow)
	if c.body.JumpsRemaining > cfg.MaxJumpCharges {
		c.body.JumpsRemaining = cfg.MaxJumpCharges
	}
	return nil
}

// SyncPosition overwrites the body position with one resolved by the host.
func (c *Controller) SyncPosition(p mgl64.Vec3) {
	c.body.Position = p
}

func (c *Controller) Body() Body         { return c.body }
func (c *Controller) Timers() TimerBank  { return c.timers }
func (c *Controller) Config() Config     { return c.cfg }
func (c *Controller) Ticks() uint64      { return c.ticks }
func (c *Controller) Snapshot() Snapshot { return c.snapshot }
func (c *Controller) State() StateName   { return c.current.Name() }

// DebugString renders the controller for an on-screen overlay.
func (c *Controller) DebugString() string {
	var b strings.Builder
	fmt.Fprintf(&b, "State: %s\n", c.current.Name())
	fmt.Fprintf(&b, "Grounded: %t\n", c.body.Grounded)
	fmt.Fprintf(&b, "Velocity Y: %.2f\n", c.body.VerticalVelocity)
	fmt.Fprintf(&b, "Move Input: (%.2f, %.2f)\n", c.snapshot.Move.X(), c.snapshot.Move.Y())
	fmt.Fprintf(&b, "Sprint Input: %t\n", c.snapshot.SprintHeld)
	fmt.Fprintf(&b, "Jump Buffer: %.2fs\n", c.timers.JumpBufferRemaining())
	fmt.Fprintf(&b, "Coyote: %.2fs\n", c.timers.CoyoteRemaining())
	fmt.Fprintf(&b, "Remaining Jumps: %d\n", c.body.JumpsRemaining)
	return b.String()
}

func (c *Controller) changeState(s state) {
	if c.next == nil {
		c.next = s
	}
}

func (c *Controller) commitTransition() {
	next := c.next
	c.next = nil
	if next == nil {
		return
	}
	prev := c.current
	prev.Exit(c)
	c.current = next
	c.log.Debug("state changed",
		zap.String("from", string(prev.Name())),
		zap.String("to", string(next.Name())),
		zap.Uint64("tick", c.ticks),
	)
	c.emit(Event{Kind: EventStateChanged, From: prev.Name(), To: next.Name(), JumpsRemaining: c.body.JumpsRemaining})
	next.Enter(c)
}

func (c *Controller) updateGrounding(grounded bool) {
	landed := grounded && !c.body.Grounded
	c.body.Grounded = grounded
	full := c.cfg.MaxJumpCharges

	if landed {
		c.body.JumpsRemaining = full
		// the first observation is the spawn, not a landing
		if c.ticks > 1 {
			c.emit(Event{Kind: EventLanded, From: c.current.Name(), To: c.current.Name(), JumpsRemaining: full})
		}
		return
	}
	// Leaving the ground without jumping forfeits the ground jump once the
	// coyote window has run out.
	if !grounded && !c.timers.InCoyoteWindow() && c.body.JumpsRemaining == full {
		c.body.JumpsRemaining = full - 1
	}
}

func (c *Controller) moving() bool {
	return c.snapshot.Move.Len() > c.cfg.InputDeadzone
}

func (c *Controller) canGroundJump() bool {
	return c.timers.HasBufferedJump() && (c.body.Grounded || c.timers.InCoyoteWindow())
}

// moveDirection maps the move input onto the planar axes of the view frame.
func (c *Controller) moveDirection() mgl64.Vec2 {
	if !c.moving() {
		return mgl64.Vec2{}
	}
	m := c.snapshot.Move
	sin, cos := math.Sincos(c.snapshot.ViewYaw)
	forward := mgl64.Vec2{sin, cos}
	right := mgl64.Vec2{cos, -sin}
	dir := forward.Mul(m.Y()).Add(right.Mul(m.X()))
	if dir.Len() == 0 {
		return mgl64.Vec2{}
	}
	return dir.Normalize()
}

func (c *Controller) applyPlanarMotion() {
	dir := c.moveDirection()
	speed := c.cfg.BaseSpeed
	if c.snapshot.SprintHeld {
		speed = c.cfg.SprintSpeed
	}
	c.body.HorizontalVelocity = dir.Mul(speed)

	if dir.Len() == 0 {
		return
	}
	target := math.Atan2(dir.X(), dir.Y())
	c.body.Yaw = common.MoveTowardsAngle(c.body.Yaw, target, c.cfg.RotationRate*c.dt)
}

func (c *Controller) performJump() {
	supported := c.body.Grounded || c.timers.InCoyoteWindow()
	c.timers.ConsumeJump()

	impulse := c.cfg.JumpImpulse
	if supported {
		c.body.JumpsRemaining = c.cfg.MaxJumpCharges - 1
		c.timers.ClearCoyote()
	} else {
		c.body.JumpsRemaining--
		impulse *= c.cfg.AirJumpFactor
	}
	if c.body.JumpsRemaining < 0 {
		c.body.JumpsRemaining = 0
	}
	c.body.VerticalVelocity = impulse

	c.log.Debug("jump",
		zap.Float64("impulse", impulse),
		zap.Int("jumps_remaining", c.body.JumpsRemaining),
		zap.Bool("air", !supported),
	)
	c.emit(Event{Kind: EventJumped, From: StateJump, To: StateJump, JumpsRemaining: c.body.JumpsRemaining, Air: !supported})
}
