package movement

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidConfig = errors.New("movement: invalid config")

// Config holds the tuning constants of a controller. Times are in seconds,
// speeds in units per second and RotationRate in radians per second.
type Config struct {
	BaseSpeed    float64
	SprintSpeed  float64
	RotationRate float64

	Gravity        float64
	FallMultiplier float64
	MaxFallSpeed   float64 // most negative vertical velocity

	JumpImpulse    float64
	AirJumpFactor  float64 // impulse scale for jumps that start in the air
	MaxJumpCharges int

	JumpBufferWindow float64
	CoyoteWindow     float64

	InputDeadzone float64
	FallThreshold float64 // Jump hands over to Fall below this vertical velocity
}

func DefaultConfig() Config {
	return Config{
		BaseSpeed:        8,
		SprintSpeed:      14,
		RotationRate:     10,
		Gravity:          10,
		FallMultiplier:   2,
		MaxFallSpeed:     -20,
		JumpImpulse:      10,
		AirJumpFactor:    0.7,
		MaxJumpCharges:   2,
		JumpBufferWindow: 0.2,
		CoyoteWindow:     0.2,
		InputDeadzone:    0.1,
		FallThreshold:    -0.1,
	}
}

// Validate reports every malformed field at once. The returned error wraps
// ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error
	nonNegative := func(name string, v float64) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("%s must be finite, got %v", name, v))
			return
		}
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %v", name, v))
		}
	}

	nonNegative("base speed", c.BaseSpeed)
	nonNegative("sprint speed", c.SprintSpeed)
	nonNegative("rotation rate", c.RotationRate)
	nonNegative("gravity", c.Gravity)
	nonNegative("jump impulse", c.JumpImpulse)
	nonNegative("jump buffer window", c.JumpBufferWindow)
	nonNegative("coyote window", c.CoyoteWindow)

	if c.SprintSpeed < c.BaseSpeed {
		errs = append(errs, fmt.Errorf("sprint speed %v is below base speed %v", c.SprintSpeed, c.BaseSpeed))
	}
	if math.IsNaN(c.FallMultiplier) || c.FallMultiplier < 1 {
		errs = append(errs, fmt.Errorf("fall multiplier must be at least 1, got %v", c.FallMultiplier))
	}
	if math.IsNaN(c.MaxFallSpeed) || math.IsInf(c.MaxFallSpeed, 0) || c.MaxFallSpeed >= 0 {
		errs = append(errs, fmt.Errorf("max fall speed must be a finite negative value, got %v", c.MaxFallSpeed))
	}
	if math.IsNaN(c.AirJumpFactor) || c.AirJumpFactor <= 0 || c.AirJumpFactor > 1 {
		errs = append(errs, fmt.Errorf("air jump factor must be in (0, 1], got %v", c.AirJumpFactor))
	}
	if c.MaxJumpCharges < 1 {
		errs = append(errs, fmt.Errorf("max jump charges must be at least 1, got %d", c.MaxJumpCharges))
	}
	if math.IsNaN(c.InputDeadzone) || c.InputDeadzone < 0 || c.InputDeadzone >= 1 {
		errs = append(errs, fmt.Errorf("input deadzone must be in [0, 1), got %v", c.InputDeadzone))
	}
	if math.IsNaN(c.FallThreshold) || c.FallThreshold > 0 {
		errs = append(errs, fmt.Errorf("fall threshold must not be positive, got %v", c.FallThreshold))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}
