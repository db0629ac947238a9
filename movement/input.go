package movement

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/jackrabbit/common"
)

// Input is the raw per-tick input reported by the host.
type Input struct {
	MoveX       float64
	MoveY       float64
	JumpPressed bool
	JumpHeld    bool
	SprintHeld  bool
	// ViewYaw is the yaw of the frame move input is relative to (usually the
	// camera). Zero means world axes.
	ViewYaw float64
}

// Snapshot is the stable per-tick view of Input consumed by the states.
type Snapshot struct {
	Move            mgl64.Vec2
	JumpPressedEdge bool
	JumpHeld        bool
	SprintHeld      bool
	ViewYaw         float64
}

// InputSampler turns raw input into snapshots. A jump press only produces an
// edge once the button has been seen released since the previous edge.
type InputSampler struct {
	latest      Snapshot
	jumpArmed   bool
	initialized bool
}

func NewInputSampler() *InputSampler {
	return &InputSampler{jumpArmed: true, initialized: true}
}

func (s *InputSampler) Sample(in Input) Snapshot {
	if !s.initialized {
		s.jumpArmed = true
		s.initialized = true
	}

	edge := in.JumpPressed && s.jumpArmed
	if edge {
		s.jumpArmed = false
	}
	if !in.JumpPressed && !in.JumpHeld {
		s.jumpArmed = true
	}

	s.latest = Snapshot{
		Move: mgl64.Vec2{
			common.Clamp(common.Finite(in.MoveX), -1, 1),
			common.Clamp(common.Finite(in.MoveY), -1, 1),
		},
		JumpPressedEdge: edge,
		JumpHeld:        in.JumpHeld || in.JumpPressed,
		SprintHeld:      in.SprintHeld,
		ViewYaw:         common.Finite(in.ViewYaw),
	}
	return s.latest
}

func (s *InputSampler) Latest() Snapshot {
	return s.latest
}
