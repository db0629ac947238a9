package entity

import (
	"fmt"

	"github.com/milk9111/jackrabbit/ecs"
	"github.com/milk9111/jackrabbit/ecs/component"
	"github.com/milk9111/jackrabbit/prefabs"
)

func NewCamera(w *ecs.World, x, y float64) (ecs.Entity, error) {
	cameraSpec, err := prefabs.LoadCameraSpec()
	if err != nil {
		return 0, fmt.Errorf("camera: load spec: %w", err)
	}

	camera := w.CreateEntity()
	if err := ecs.Add(w, camera, component.CameraTagComponent, component.CameraTag{}); err != nil {
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}
	if err := ecs.Add(w, camera, component.TransformComponent, component.Transform{X: x, Y: y}); err != nil {
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}

	smooth := cameraSpec.Smoothness
	if smooth == 0 {
		smooth = 0.15
	}
	target := cameraSpec.Target
	if target == "" {
		target = "player"
	}
	if err := ecs.Add(w, camera, component.CameraComponent, component.Camera{
		TargetName: target,
		Zoom:       cameraSpec.Zoom,
		Smoothness: smooth,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera: %w", err)
	}
	return camera, nil
}
