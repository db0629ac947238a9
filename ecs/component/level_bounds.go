package component

// LevelBounds stores the world-space extent of the loaded level. Depth is
// centered on z = 0.
type LevelBounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
	Depth      float64
}

var LevelBoundsComponent = NewComponent[LevelBounds]()

// Solid is a static box anchored at its bottom-left corner.
type Solid struct {
	X, Y          float64
	Width, Height float64
}

var SolidComponent = NewComponent[Solid]()
