package component

import "github.com/milk9111/jackrabbit/movement"

// Input stores per-tick input state for an entity.
type Input struct {
	MoveX       float64
	MoveY       float64
	Jump        bool
	JumpPressed bool
	Sprint      bool
	ViewYaw     float64
}

func (in Input) Movement() movement.Input {
	return movement.Input{
		MoveX:       in.MoveX,
		MoveY:       in.MoveY,
		JumpPressed: in.JumpPressed,
		JumpHeld:    in.Jump,
		SprintHeld:  in.Sprint,
		ViewYaw:     in.ViewYaw,
	}
}

var InputComponent = NewComponent[Input]()
