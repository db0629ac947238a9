package movement

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"negative_buffer_window", func(c *Config) { c.JumpBufferWindow = -0.1 }, "jump buffer window"},
		{"negative_coyote_window", func(c *Config) { c.CoyoteWindow = -1 }, "coyote window"},
		{"nan_gravity", func(c *Config) { c.Gravity = math.NaN() }, "gravity"},
		{"positive_max_fall", func(c *Config) { c.MaxFallSpeed = 5 }, "max fall speed"},
		{"sprint_slower_than_walk", func(c *Config) { c.SprintSpeed = 1 }, "sprint speed"},
		{"no_charges", func(c *Config) { c.MaxJumpCharges = 0 }, "max jump charges"},
		{"deadzone_too_large", func(c *Config) { c.InputDeadzone = 1 }, "input deadzone"},
		{"fall_multiplier_below_one", func(c *Config) { c.FallMultiplier = 0.5 }, "fall multiplier"},
		{"air_jump_factor_zero", func(c *Config) { c.AirJumpFactor = 0 }, "air jump factor"},
		{"positive_fall_threshold", func(c *Config) { c.FallThreshold = 1 }, "fall threshold"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultConfig()
			c.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("error should wrap ErrInvalidConfig: %v", err)
			}
			if !strings.Contains(err.Error(), c.field) {
				t.Fatalf("error %q should mention %q", err, c.field)
			}
		})
	}
}

func TestConfigValidateReportsAllFields(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CoyoteWindow = -1
	cfg.JumpBufferWindow = -1
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected error")
	}
	for _, want := range []string{"coyote window", "jump buffer window"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q should mention %q", err, want)
		}
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CoyoteWindow = -0.2
	ctl, err := New(cfg)
	if err == nil || ctl != nil {
		t.Fatalf("New should reject invalid config, got ctl=%v err=%v", ctl, err)
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}
