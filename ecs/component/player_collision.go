package component

// PlayerCollision stores per-player contact state derived from the ground
// sensor during the last physics step.
type PlayerCollision struct {
	Grounded bool
	Contacts int
}

var PlayerCollisionComponent = NewComponent[PlayerCollision]()
