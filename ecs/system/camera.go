package system

import (
	"github.com/milk9111/jackrabbit/common"
	"github.com/milk9111/jackrabbit/ecs"
	"github.com/milk9111/jackrabbit/ecs/component"
)

type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Update eases the camera entity's transform toward its target.
func (cs *CameraSystem) Update(w *ecs.World) {
	if !w.IsAlive(cs.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
		cs.targetEntity = 0
	}

	camComp, ok := ecs.Get(w, cs.camEntity, component.CameraComponent)
	if !ok {
		return
	}
	if !w.IsAlive(cs.targetEntity) {
		cs.targetEntity = findEntityByNameOrTag(w, camComp.TargetName)
	}

	target, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent)
	if !ok {
		return
	}
	cam, ok := ecs.Get(w, cs.camEntity, component.TransformComponent)
	if !ok {
		return
	}

	t := float32(1)
	if camComp.Smoothness > 0 {
		t = float32(camComp.Smoothness)
	}
	cam.X = float64(common.Lerp(float32(cam.X), float32(target.X), t))
	cam.Y = float64(common.Lerp(float32(cam.Y), float32(target.Y), t))
	if err := ecs.Add(w, cs.camEntity, component.TransformComponent, cam); err != nil {
		panic("camera system: update transform: " + err.Error())
	}
}

func findEntityByNameOrTag(w *ecs.World, name string) ecs.Entity {
	if name == "player" {
		if e, ok := w.First(component.PlayerTagComponent.Kind()); ok {
			return e
		}
	}
	return 0
}
