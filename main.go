package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/jackrabbit/common"
	"github.com/milk9111/jackrabbit/logger"
	"github.com/milk9111/jackrabbit/prefabs"
	"go.uber.org/zap"
)

func main() {
	debug := flag.Bool("debug", false, "show the controller debugger overlay")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	tps := flag.Int("tps", 60, "fixed simulation ticks per second")
	prefabDir := flag.String("prefabs", "prefabs", "directory watched for prefab overrides")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	logFile := flag.String("log-file", "", "also write JSON logs to this file")
	flag.Parse()

	if err := logger.Init(*logLevel, *logFile); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	if *tps <= 0 {
		logger.Log.Fatal("tps must be positive", zap.Int("tps", *tps))
	}
	prefabs.DiskRoot = *prefabDir

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetTPS(*tps)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("jackrabbit")

	game, err := NewGame(*tps, *debug, logger.Named("game"))
	if err != nil {
		logger.Log.Fatal("start game", zap.Error(err))
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		logger.Log.Error("game exited", zap.Error(err))
	}
}
