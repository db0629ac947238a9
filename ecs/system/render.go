package system

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/jackrabbit/ecs"
	"github.com/milk9111/jackrabbit/ecs/component"
	"github.com/milk9111/jackrabbit/movement"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const (
	defaultZoom = 32.0
	minimapSize = 160.0
	minimapPad  = 12.0
)

var stateColors = map[movement.StateName]color.Color{
	movement.StateIdle: colornames.Lightgreen,
	movement.StateMove: colornames.Skyblue,
	movement.StateJump: colornames.Orange,
	movement.StateFall: colornames.Tomato,
}

// RenderSystem draws a side view (X right, Y up) and a top-down minimap
// (X right, Z up) that shows the player's facing.
type RenderSystem struct {
	camEntity ecs.Entity
	face      ebtext.Face
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{face: ebtext.NewGoXFace(basicfont.Face7x13)}
}

func (r *RenderSystem) Update(w *ecs.World) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	if !w.IsAlive(r.camEntity) {
		if camEntity, ok := w.First(component.CameraComponent.Kind()); ok {
			r.camEntity = camEntity
		}
	}

	camX, camY := 0.0, 0.0
	zoom := defaultZoom
	if camTransform, ok := ecs.Get(w, r.camEntity, component.TransformComponent); ok {
		camX = camTransform.X
		camY = camTransform.Y
	}
	if camComp, ok := ecs.Get(w, r.camEntity, component.CameraComponent); ok && camComp.Zoom > 0 {
		zoom = camComp.Zoom
	}

	bounds := screen.Bounds()
	halfW := float64(bounds.Dx()) / 2
	halfH := float64(bounds.Dy()) / 2
	toScreen := func(x, y float64) (float32, float32) {
		return float32(halfW + (x-camX)*zoom), float32(halfH - (y-camY)*zoom)
	}

	screen.Fill(colornames.Midnightblue)

	ecs.ForEach(w, component.SolidComponent, func(_ ecs.Entity, s *component.Solid) {
		x, y := toScreen(s.X, s.Y+s.Height)
		vector.FillRect(screen, x, y, float32(s.Width*zoom), float32(s.Height*zoom), colornames.Slategray, false)
	})

	ecs.ForEach3(w, component.PlayerComponent, component.TransformComponent, component.PhysicsBodyComponent, func(_ ecs.Entity, p *component.Player, t *component.Transform, b *component.PhysicsBody) {
		if p.Controller == nil {
			return
		}
		clr, ok := stateColors[p.Controller.State()]
		if !ok {
			clr = colornames.White
		}
		x, y := toScreen(t.X-b.Width/2, t.Y+b.Height)
		vector.FillRect(screen, x, y, float32(b.Width*zoom), float32(b.Height*zoom), clr, false)

		// Facing projected onto the side view.
		fwd := p.Controller.Body().Forward()
		cx, cy := toScreen(t.X, t.Y+b.Height*0.75)
		vector.StrokeLine(screen, cx, cy, cx+float32(fwd.X()*b.Width*zoom), cy, 2, colornames.Black, true)

		r.drawMinimap(w, screen, t, fwd, clr)
	})
}

func (r *RenderSystem) drawMinimap(w *ecs.World, screen *ebiten.Image, t *component.Transform, fwd mgl64.Vec3, clr color.Color) {
	bounds, ok := firstBounds(w)
	if !ok || bounds.MaxX <= bounds.MinX {
		return
	}
	depth := bounds.Depth
	if depth <= 0 {
		depth = bounds.MaxX - bounds.MinX
	}

	left := float32(float64(screen.Bounds().Dx()) - minimapSize - minimapPad)
	top := float32(minimapPad)
	vector.FillRect(screen, left, top, minimapSize, minimapSize, color.RGBA{A: 160}, false)
	vector.StrokeRect(screen, left, top, minimapSize, minimapSize, 1, colornames.Lightgrey, false)

	scale := minimapSize / math.Max(bounds.MaxX-bounds.MinX, depth)
	px := left + float32((t.X-bounds.MinX)*scale)
	pz := top + float32(minimapSize/2-t.Z*scale)
	vector.FillCircle(screen, px, pz, 4, clr, true)
	vector.StrokeLine(screen, px, pz, px+float32(fwd.X()*12), pz-float32(fwd.Z()*12), 2, clr, true)

	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(float64(left), float64(top)+minimapSize+4)
	ebtext.Draw(screen, fmt.Sprintf("z %.2f  yaw %.0f°", t.Z, t.Yaw*180/math.Pi), r.face, op)
}

func firstBounds(w *ecs.World) (component.LevelBounds, bool) {
	e, ok := w.First(component.LevelBoundsComponent.Kind())
	if !ok {
		return component.LevelBounds{}, false
	}
	return ecs.Get(w, e, component.LevelBoundsComponent)
}
