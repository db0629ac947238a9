package movement

import "github.com/go-gl/mathgl/mgl64"

// InputSource reports the host input for the current tick.
type InputSource interface {
	Input() Input
}

// GroundProbe reports whether the body is supported this tick. It is refreshed
// by an external collision system and may flicker between ticks.
type GroundProbe interface {
	IsGrounded() bool
}

// BodyMover applies the controller's velocity to the host body. Hosts that
// resolve collisions report the corrected position back through
// Controller.SyncPosition.
type BodyMover interface {
	Move(velocity mgl64.Vec3, dt float64)
}

type InputSourceFunc func() Input

func (f InputSourceFunc) Input() Input { return f() }

type GroundProbeFunc func() bool

func (f GroundProbeFunc) IsGrounded() bool { return f() }

type BodyMoverFunc func(velocity mgl64.Vec3, dt float64)

func (f BodyMoverFunc) Move(velocity mgl64.Vec3, dt float64) { f(velocity, dt) }
