package movement

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Body is the kinematic state owned by a Controller. Y is up; the planar
// axes are X and Z, so HorizontalVelocity holds (x, z).
type Body struct {
	Position           mgl64.Vec3
	HorizontalVelocity mgl64.Vec2
	VerticalVelocity   float64
	// Yaw in radians around +Y. Zero faces +Z.
	Yaw            float64
	Grounded       bool
	JumpsRemaining int
}

func (b Body) Velocity() mgl64.Vec3 {
	return mgl64.Vec3{b.HorizontalVelocity.X(), b.VerticalVelocity, b.HorizontalVelocity.Y()}
}

func (b Body) Forward() mgl64.Vec3 {
	sin, cos := math.Sincos(b.Yaw)
	return mgl64.Vec3{sin, 0, cos}
}
