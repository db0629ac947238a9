package system

import (
	"github.com/milk9111/jackrabbit/ecs"
	"github.com/milk9111/jackrabbit/ecs/component"
	"go.uber.org/zap"
)

// PlayerControllerSystem ticks every player's movement controller. The
// controller polls its own input source and ground probe and hands the
// resulting velocity to its body mover.
type PlayerControllerSystem struct {
	dt  float64
	log *zap.Logger
}

func NewPlayerControllerSystem(dt float64, log *zap.Logger) *PlayerControllerSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &PlayerControllerSystem{dt: dt, log: log}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, e := range w.Query(component.PlayerTagComponent.Kind(), component.PlayerComponent.Kind()) {
		player, ok := ecs.Get(w, e, component.PlayerComponent)
		if !ok || player.Controller == nil {
			continue
		}
		if _, err := player.Controller.Tick(p.dt); err != nil {
			p.log.Error("player controller tick", zap.Stringer("entity", e), zap.Error(err))
		}
	}
}
