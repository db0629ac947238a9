package movement

type StateName string

const (
	StateIdle StateName = "idle"
	StateMove StateName = "move"
	StateJump StateName = "jump"
	StateFall StateName = "fall"
)

// state is one node of the movement graph. Update applies the state's planar
// motion and then requests at most one transition through changeState; the
// controller commits it once Update returns.
type state interface {
	Name() StateName
	Enter(c *Controller)
	Exit(c *Controller)
	Update(c *Controller)
}

// State singletons (avoid allocations on transitions).
var (
	stateIdle state = &idleState{}
	stateMove state = &moveState{}
	stateJump state = &jumpState{}
	stateFall state = &fallState{}
)

type idleState struct{}

type moveState struct{}

type jumpState struct{}

type fallState struct{}

func (idleState) Name() StateName   { return StateIdle }
func (idleState) Enter(*Controller) {}
func (idleState) Exit(*Controller)  {}
func (idleState) Update(c *Controller) {
	c.applyPlanarMotion()
	switch {
	case c.canGroundJump():
		c.changeState(stateJump)
	case c.moving():
		c.changeState(stateMove)
	case !c.body.Grounded:
		c.changeState(stateFall)
	}
}

func (moveState) Name() StateName   { return StateMove }
func (moveState) Enter(*Controller) {}
func (moveState) Exit(*Controller)  {}
func (moveState) Update(c *Controller) {
	c.applyPlanarMotion()
	switch {
	case c.canGroundJump():
		c.changeState(stateJump)
	case !c.body.Grounded:
		c.changeState(stateFall)
	case !c.moving():
		c.changeState(stateIdle)
	}
}

func (jumpState) Name() StateName { return StateJump }
func (jumpState) Enter(c *Controller) {
	c.performJump()
}
func (jumpState) Exit(*Controller) {}
func (jumpState) Update(c *Controller) {
	c.applyPlanarMotion()
	switch {
	case c.timers.HasBufferedJump() && c.body.JumpsRemaining > 0:
		// re-entering Jump spends the next charge
		c.changeState(stateJump)
	case c.body.VerticalVelocity < c.cfg.FallThreshold:
		c.changeState(stateFall)
	case c.body.Grounded && c.moving():
		c.changeState(stateMove)
	case c.body.Grounded:
		c.changeState(stateIdle)
	}
}

func (fallState) Name() StateName   { return StateFall }
func (fallState) Enter(*Controller) {}
func (fallState) Exit(*Controller)  {}
func (fallState) Update(c *Controller) {
	c.applyPlanarMotion()
	switch {
	case c.timers.HasBufferedJump() && c.body.JumpsRemaining > 0:
		c.changeState(stateJump)
	case c.body.Grounded && c.moving():
		c.changeState(stateMove)
	case c.body.Grounded:
		c.changeState(stateIdle)
	}
}
