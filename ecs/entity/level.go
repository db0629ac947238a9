package entity

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/jackrabbit/ecs"
	"github.com/milk9111/jackrabbit/ecs/component"
	"github.com/milk9111/jackrabbit/prefabs"
)

// LoadLevelToWorld creates a bounds entity and one Solid entity per level
// rectangle, registering each solid with the physics world. It returns the
// spawn point.
func LoadLevelToWorld(w *ecs.World, pw *ecs.PhysicsWorld, lvl *prefabs.LevelSpec) (mgl64.Vec3, error) {
	if lvl == nil {
		return mgl64.Vec3{}, fmt.Errorf("level: nil spec")
	}

	bounds := component.LevelBounds{
		MinX:  math.Inf(1),
		MinY:  math.Inf(1),
		MaxX:  math.Inf(-1),
		MaxY:  math.Inf(-1),
		Depth: lvl.Depth,
	}
	for i, r := range lvl.Solids {
		solid := component.Solid{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
		e := w.CreateEntity()
		if err := ecs.Add(w, e, component.SolidComponent, solid); err != nil {
			return mgl64.Vec3{}, fmt.Errorf("level: add solid %d: %w", i, err)
		}
		pw.AddSolid(solid)

		bounds.MinX = math.Min(bounds.MinX, r.X)
		bounds.MinY = math.Min(bounds.MinY, r.Y)
		bounds.MaxX = math.Max(bounds.MaxX, r.X+r.Width)
		bounds.MaxY = math.Max(bounds.MaxY, r.Y+r.Height)
	}
	if len(lvl.Solids) == 0 {
		bounds = component.LevelBounds{Depth: lvl.Depth}
	}

	boundsEntity := w.CreateEntity()
	if err := ecs.Add(w, boundsEntity, component.LevelBoundsComponent, bounds); err != nil {
		return mgl64.Vec3{}, fmt.Errorf("level: add bounds: %w", err)
	}

	return mgl64.Vec3{lvl.Spawn.X, lvl.Spawn.Y, lvl.Spawn.Z}, nil
}
