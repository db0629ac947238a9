package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/jackrabbit/logger"
	"github.com/milk9111/jackrabbit/prefabs"
	"github.com/milk9111/jackrabbit/replay"
	"go.uber.org/zap"
)

func main() {
	scriptName := flag.String("script", "double_jump", "input script in prefabs/scripts/ (basename, .tengo optional)")
	ticks := flag.Int("ticks", 240, "number of ticks to simulate")
	dt := flag.Float64("dt", 1.0/60, "fixed tick length in seconds")
	prefabDir := flag.String("prefabs", "prefabs", "directory checked for prefab overrides before the embedded copies")
	floor := flag.Bool("floor", true, "simulate a flat floor at height 0 instead of relying on the script's grounded flag")
	trace := flag.Bool("trace", false, "print every tick instead of only state changes")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	logFile := flag.String("log-file", "", "also write JSON logs to this file")
	flag.Parse()

	if err := logger.Init(*logLevel, *logFile); err != nil {
		log.Fatalf("replay: logger: %v", err)
	}
	defer logger.Sync()

	prefabs.DiskRoot = *prefabDir

	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		logger.Log.Fatal("load player spec", zap.Error(err))
	}
	script, err := replay.Load(*scriptName)
	if err != nil {
		logger.Log.Fatal("load script", zap.String("script", *scriptName), zap.Error(err))
	}

	r := &replay.Runner{Script: script, Log: logger.Named("replay")}
	if *floor {
		r.Ground = replay.NewFlatGround(0, mgl64.Vec3{})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	frames, ctl, err := r.Run(ctx, spec.Config(), *ticks, *dt)
	if err != nil {
		logger.Log.Error("replay stopped", zap.Int("frames", len(frames)), zap.Error(err))
	}

	if *trace {
		for _, f := range frames {
			res := f.Result
			in := f.Sampled
			fmt.Printf("%5d %6.3fs %-5s grounded=%-5t pos=(%6.2f %6.2f %6.2f) vy=%7.2f jumps=%d move=(%5.2f %5.2f) press=%t\n",
				f.Tick, f.T, res.State, res.Grounded,
				res.Position.X(), res.Position.Y(), res.Position.Z(),
				res.VerticalVelocity, res.JumpsRemaining,
				in.Move.X(), in.Move.Y(), in.JumpPressedEdge)
		}
	}

	if ctl == nil {
		logger.Sync()
		os.Exit(1)
	}
	apex := replay.Apex(frames)
	logger.Log.Info("replay finished",
		zap.String("script", script.Name()),
		zap.Int("frames", len(frames)),
		zap.Float64("apex_y", apex.Y()),
		zap.String("final_state", string(ctl.State())),
	)
	fmt.Print(ctl.DebugString())
}
