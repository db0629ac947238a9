package movement

import "math"

// Integrator accumulates gravity into vertical velocity. It runs once per
// tick whatever state is active.
type Integrator struct {
	Gravity        float64
	FallMultiplier float64
	MaxFallSpeed   float64
}

func newIntegrator(cfg Config) Integrator {
	return Integrator{
		Gravity:        cfg.Gravity,
		FallMultiplier: cfg.FallMultiplier,
		MaxFallSpeed:   cfg.MaxFallSpeed,
	}
}

func (g Integrator) Step(vy float64, grounded bool, dt float64) float64 {
	if grounded && vy <= 0 {
		return 0
	}

	gravity := g.Gravity
	if vy < 0 && g.FallMultiplier > 1 {
		gravity *= g.FallMultiplier
	}
	vy -= gravity * dt

	return math.Max(vy, g.MaxFallSpeed)
}
