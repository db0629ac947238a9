package movement

import "math"

// TimerBank tracks the jump buffer and coyote countdowns in seconds.
type TimerBank struct {
	bufferWindow float64
	coyoteWindow float64

	jumpBuffer float64
	coyote     float64
}

func NewTimerBank(bufferWindow, coyoteWindow float64) TimerBank {
	return TimerBank{
		bufferWindow: math.Max(0, bufferWindow),
		coyoteWindow: math.Max(0, coyoteWindow),
	}
}

// Tick advances both countdowns by dt. A press restarts the buffer window and
// standing on ground holds the coyote window full.
func (t *TimerBank) Tick(dt float64, grounded, jumpPressedEdge bool) {
	if jumpPressedEdge {
		t.jumpBuffer = t.bufferWindow
	} else {
		t.jumpBuffer = math.Max(0, t.jumpBuffer-dt)
	}

	if grounded {
		t.coyote = t.coyoteWindow
	} else {
		t.coyote = math.Max(0, t.coyote-dt)
	}
}

func (t TimerBank) HasBufferedJump() bool { return t.jumpBuffer > 0 }

func (t TimerBank) InCoyoteWindow() bool { return t.coyote > 0 }

// ConsumeJump drops the buffered press so it can start at most one jump.
func (t *TimerBank) ConsumeJump() { t.jumpBuffer = 0 }

func (t *TimerBank) ClearCoyote() { t.coyote = 0 }

func (t TimerBank) JumpBufferRemaining() float64 { return t.jumpBuffer }

func (t TimerBank) CoyoteRemaining() float64 { return t.coyote }

// resize swaps the windows, keeping running countdowns within the new bounds.
func (t *TimerBank) resize(bufferWindow, coyoteWindow float64) {
	t.bufferWindow = math.Max(0, bufferWindow)
	t.coyoteWindow = math.Max(0, coyoteWindow)
	t.jumpBuffer = math.Min(t.jumpBuffer, t.bufferWindow)
	t.coyote = math.Min(t.coyote, t.coyoteWindow)
}
