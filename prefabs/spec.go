package prefabs

import (
	"fmt"

	"github.com/milk9111/jackrabbit/movement"
	"gopkg.in/yaml.v3"
)

const (
	PlayerFile = "player.yaml"
	LevelFile  = "level.yaml"
	CameraFile = "camera.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if d, ok := any(&spec).(defaulter); ok {
		d.setDefaults()
	}
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// defaulter is implemented by specs whose omitted keys take non-zero
// defaults. The defaults are set before decoding so an explicit 0 survives.
type defaulter interface {
	setDefaults()
}

// PlayerSpec is the tuning of the player controller. Times are seconds,
// rotation_rate is radians per second.
type PlayerSpec struct {
	Name           string       `yaml:"name"`
	MoveSpeed      float64      `yaml:"move_speed"`
	SprintSpeed    float64      `yaml:"sprint_speed"`
	RotationRate   float64      `yaml:"rotation_rate"`
	Gravity        float64      `yaml:"gravity"`
	FallMultiplier float64      `yaml:"fall_multiplier"`
	MaxFallSpeed   float64      `yaml:"max_fall_speed"`
	JumpImpulse    float64      `yaml:"jump_impulse"`
	AirJumpFactor  float64      `yaml:"air_jump_factor"`
	MaxJumps       int          `yaml:"max_jumps"`
	JumpBufferTime float64      `yaml:"jump_buffer_time"`
	CoyoteTime     float64      `yaml:"coyote_time"`
	InputDeadzone  float64      `yaml:"input_deadzone"`
	FallThreshold  float64      `yaml:"fall_threshold"`
	Collider       ColliderSpec `yaml:"collider"`
}

type ColliderSpec struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Friction float64 `yaml:"friction"`
}

func (s *PlayerSpec) setDefaults() {
	cfg := movement.DefaultConfig()
	s.MoveSpeed = cfg.BaseSpeed
	s.SprintSpeed = cfg.SprintSpeed
	s.RotationRate = cfg.RotationRate
	s.Gravity = cfg.Gravity
	s.FallMultiplier = cfg.FallMultiplier
	s.MaxFallSpeed = cfg.MaxFallSpeed
	s.JumpImpulse = cfg.JumpImpulse
	s.AirJumpFactor = cfg.AirJumpFactor
	s.MaxJumps = cfg.MaxJumpCharges
	s.JumpBufferTime = cfg.JumpBufferWindow
	s.CoyoteTime = cfg.CoyoteWindow
	s.InputDeadzone = cfg.InputDeadzone
	s.FallThreshold = cfg.FallThreshold
}

// Config converts the spec into controller tuning. Keys missing from the
// YAML already hold the controller defaults.
func (s PlayerSpec) Config() movement.Config {
	return movement.Config{
		BaseSpeed:        s.MoveSpeed,
		SprintSpeed:      s.SprintSpeed,
		RotationRate:     s.RotationRate,
		Gravity:          s.Gravity,
		FallMultiplier:   s.FallMultiplier,
		MaxFallSpeed:     s.MaxFallSpeed,
		JumpImpulse:      s.JumpImpulse,
		AirJumpFactor:    s.AirJumpFactor,
		MaxJumpCharges:   s.MaxJumps,
		JumpBufferWindow: s.JumpBufferTime,
		CoyoteWindow:     s.CoyoteTime,
		InputDeadzone:    s.InputDeadzone,
		FallThreshold:    s.FallThreshold,
	}
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec](PlayerFile)
	if err != nil {
		return nil, err
	}
	if err := spec.Config().Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", PlayerFile, err)
	}
	return &spec, nil
}

// LevelSpec describes the playground: a spawn point and solid boxes. World
// units, Y up; rectangles are anchored at their bottom-left corner.
type LevelSpec struct {
	Name   string     `yaml:"name"`
	Depth  float64    `yaml:"depth"`
	Spawn  PointSpec  `yaml:"spawn"`
	Solids []RectSpec `yaml:"solids"`
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

type RectSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func LoadLevelSpec() (*LevelSpec, error) {
	spec, err := LoadSpec[LevelSpec](LevelFile)
	if err != nil {
		return nil, err
	}
	if spec.Depth < 0 {
		return nil, fmt.Errorf("prefabs: %s: negative depth", LevelFile)
	}
	for i, r := range spec.Solids {
		if r.Width <= 0 || r.Height <= 0 {
			return nil, fmt.Errorf("prefabs: %s: solid %d has non-positive size", LevelFile, i)
		}
	}
	return &spec, nil
}

type CameraSpec struct {
	Target     string  `yaml:"target"`
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec](CameraFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}
