// Package replay drives a movement controller from scripted input.
package replay

import (
	"context"
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/jackrabbit/movement"
	"github.com/milk9111/jackrabbit/prefabs"
)

var ErrNoInputFunc = errors.New("replay: script does not define input")

// Scripts define `input := func(tick, t) { return {...} }`. The returned map
// may set move_x, move_y, jump, sprint, view_yaw and grounded. A jump key
// reports the button as held; the first held tick counts as the press.
const dispatchScript = `
__out = input(__tick, __t)
`

// Script is a compiled input script. It implements movement.InputSource and
// movement.GroundProbe for the tick most recently passed to Advance.
type Script struct {
	name     string
	compiled *tengo.Compiled

	// Fallback answers IsGrounded on ticks where the script does not set
	// grounded.
	Fallback movement.GroundProbe

	input     movement.Input
	prevJump  bool
	grounded  bool
	hasGround bool
}

func Compile(name string, src []byte) (*Script, error) {
	if err := checkInputFunc(name, src); err != nil {
		return nil, err
	}

	script := tengo.NewScript(append(append([]byte(nil), src...), []byte(dispatchScript)...))
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	for _, v := range []struct {
		name  string
		value any
	}{
		{"__tick", 0},
		{"__t", 0.0},
		{"__out", map[string]any{}},
	} {
		if err := script.Add(v.name, v.value); err != nil {
			return nil, fmt.Errorf("replay: %s: add %s: %w", name, v.name, err)
		}
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("replay: compile %s: %w", name, err)
	}
	return &Script{name: name, compiled: compiled}, nil
}

// checkInputFunc runs the script body on its own; globals only hold values
// after a run, so this is where a missing input function shows up.
func checkInputFunc(name string, src []byte) error {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("replay: compile %s: %w", name, err)
	}
	if err := compiled.Run(); err != nil {
		return fmt.Errorf("replay: %s: %w", name, err)
	}
	if _, ok := compiled.Get("input").Object().(*tengo.CompiledFunction); !ok {
		return fmt.Errorf("%w: %s", ErrNoInputFunc, name)
	}
	return nil
}

// Load compiles a script from prefabs/scripts.
func Load(name string) (*Script, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("replay: load %s: %w", name, err)
	}
	return Compile(name, src)
}

func (s *Script) Name() string { return s.name }

// Advance runs the script for one tick.
func (s *Script) Advance(ctx context.Context, tick int, t float64) error {
	if err := s.compiled.Set("__tick", tick); err != nil {
		return err
	}
	if err := s.compiled.Set("__t", t); err != nil {
		return err
	}
	if err := s.compiled.RunContext(ctx); err != nil {
		return fmt.Errorf("replay: %s tick %d: %w", s.name, tick, err)
	}

	out := s.compiled.Get("__out").Map()
	jump := asBool(out["jump"])
	s.input = movement.Input{
		MoveX:       asFloat(out["move_x"]),
		MoveY:       asFloat(out["move_y"]),
		JumpPressed: jump && !s.prevJump,
		JumpHeld:    jump,
		SprintHeld:  asBool(out["sprint"]),
		ViewYaw:     asFloat(out["view_yaw"]),
	}
	s.prevJump = jump

	g, ok := out["grounded"]
	s.hasGround = ok
	s.grounded = asBool(g)
	return nil
}

func (s *Script) Input() movement.Input { return s.input }

func (s *Script) IsGrounded() bool {
	if s.hasGround || s.Fallback == nil {
		return s.grounded
	}
	return s.Fallback.IsGrounded()
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}

func asBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case int64:
		return b != 0
	default:
		return false
	}
}
