package replay

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/jackrabbit/movement"
	"go.uber.org/zap"
)

var ErrBadRun = errors.New("replay: invalid run parameters")

// Frame is one recorded tick.
type Frame struct {
	Tick   int
	T      float64
	Input  movement.Input
	// Sampled is the input as the controller saw it after clamping and
	// edge gating.
	Sampled movement.Snapshot
	Result  movement.StepResult
}

type Runner struct {
	Script *Script
	Ground *FlatGround
	Log    *zap.Logger
}

// Run builds a controller around the script and the ground and records
// ticks frames. Ground may be nil when the script reports grounded itself.
func (r *Runner) Run(ctx context.Context, cfg movement.Config, ticks int, dt float64) ([]Frame, *movement.Controller, error) {
	if r.Script == nil || ticks < 0 || dt <= 0 {
		return nil, nil, fmt.Errorf("%w: ticks=%d dt=%v", ErrBadRun, ticks, dt)
	}
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}

	opts := []movement.Option{
		movement.WithInputSource(r.Script),
		movement.WithGroundProbe(r.Script),
		movement.WithLogger(log.Named("controller")),
	}
	if r.Ground != nil {
		r.Script.Fallback = r.Ground
		opts = append(opts,
			movement.WithBodyMover(r.Ground),
			movement.WithInitialPosition(r.Ground.Position()),
		)
	}

	ctl, err := movement.New(cfg, opts...)
	if err != nil {
		return nil, nil, err
	}
	sub := ctl.Subscribe(func(evt movement.Event) {
		log.Info(evt.Kind.String(),
			zap.Uint64("tick", evt.Tick),
			zap.String("from", string(evt.From)),
			zap.String("to", string(evt.To)),
			zap.Int("jumps_remaining", evt.JumpsRemaining),
			zap.Bool("air", evt.Air),
		)
	})
	defer sub.Close()

	frames := make([]Frame, 0, ticks)
	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			return frames, ctl, err
		}
		t := float64(i) * dt
		if err := r.Script.Advance(ctx, i, t); err != nil {
			return frames, ctl, err
		}
		res, err := ctl.Tick(dt)
		if err != nil {
			return frames, ctl, err
		}
		if r.Ground != nil {
			ctl.SyncPosition(r.Ground.Position())
			res.Position = r.Ground.Position()
		}
		frames = append(frames, Frame{
			Tick:    i,
			T:       t,
			Input:   r.Script.Input(),
			Sampled: ctl.Snapshot(),
			Result:  res,
		})
	}
	return frames, ctl, nil
}

// Apex returns the highest position reached in frames.
func Apex(frames []Frame) mgl64.Vec3 {
	var best mgl64.Vec3
	for i, f := range frames {
		if i == 0 || f.Result.Position.Y() > best.Y() {
			best = f.Result.Position
		}
	}
	return best
}
