package replay

import "github.com/go-gl/mathgl/mgl64"

const groundEpsilon = 1e-6

// FlatGround is an endless floor at Height. It moves the body and keeps it
// from sinking through the floor.
type FlatGround struct {
	Height   float64
	position mgl64.Vec3
}

func NewFlatGround(height float64, start mgl64.Vec3) *FlatGround {
	if start.Y() < height {
		start[1] = height
	}
	return &FlatGround{Height: height, position: start}
}

func (g *FlatGround) IsGrounded() bool {
	return g.position.Y() <= g.Height+groundEpsilon
}

func (g *FlatGround) Move(velocity mgl64.Vec3, dt float64) {
	next := g.position.Add(velocity.Mul(dt))
	if next.Y() < g.Height {
		next[1] = g.Height
	}
	g.position = next
}

func (g *FlatGround) Position() mgl64.Vec3 { return g.position }
