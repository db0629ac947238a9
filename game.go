package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/jackrabbit/common"
	"github.com/milk9111/jackrabbit/ecs"
	"github.com/milk9111/jackrabbit/ecs/component"
	"github.com/milk9111/jackrabbit/ecs/entity"
	"github.com/milk9111/jackrabbit/ecs/system"
	"github.com/milk9111/jackrabbit/movement"
	"github.com/milk9111/jackrabbit/prefabs"
	"github.com/milk9111/jackrabbit/replay"
	"go.uber.org/zap"
	"golang.design/x/clipboard"
)

type Game struct {
	frames int

	world  *ecs.World
	pw     *ecs.PhysicsWorld
	sched  *ecs.Scheduler
	player ecs.Entity
	camera ecs.Entity

	log     *zap.Logger
	debug   bool
	paused  bool
	quit    bool
	watcher *prefabs.Watcher

	pauseUI   *ebitenui.UI
	debugText *widget.Text
	physDebug *system.PhysicsDebugSystem

	clipboardReady bool
	status         string
}

func NewGame(tps int, debug bool, log *zap.Logger) (*Game, error) {
	dt := 1.0 / float64(tps)

	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, err
	}
	levelSpec, err := prefabs.LoadLevelSpec()
	if err != nil {
		return nil, err
	}

	w := ecs.NewWorld()
	pw := ecs.NewPhysicsWorld(levelSpec.Depth)
	spawn, err := entity.LoadLevelToWorld(w, pw, levelSpec)
	if err != nil {
		return nil, err
	}
	player, err := entity.NewPlayer(w, pw, playerSpec, spawn, log.Named("controller"))
	if err != nil {
		return nil, err
	}
	camera, err := entity.NewCamera(w, spawn.X(), spawn.Y())
	if err != nil {
		return nil, err
	}

	g := &Game{
		world:     w,
		pw:        pw,
		player:    player,
		camera:    camera,
		log:       log,
		debug:     debug,
		physDebug: system.NewPhysicsDebugSystem(pw, debug),
	}
	g.sched = ecs.NewScheduler(
		system.NewInputSystem(),
		system.NewPlayerControllerSystem(dt, log.Named("player")),
		system.NewPhysicsSystem(pw, dt),
		system.NewCameraSystem(),
		system.NewRenderSystem(),
		g.physDebug,
	)

	if err := clipboard.Init(); err != nil {
		log.Warn("clipboard unavailable", zap.Error(err))
	} else {
		g.clipboardReady = true
	}

	if watcher, err := prefabs.NewPrefabWatcher(prefabs.DiskRoot); err != nil {
		log.Warn("prefab hot reload disabled", zap.String("dir", prefabs.DiskRoot), zap.Error(err))
	} else {
		g.watcher = watcher
	}

	g.pauseUI, g.debugText = NewPauseUI(g)

	log.Info("game ready",
		zap.String("level", levelSpec.Name),
		zap.Int("solids", len(levelSpec.Solids)),
		zap.Int("tps", tps),
	)
	return g, nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.copyDebug()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
		g.physDebug.Enabled = g.debug
	}

	g.reloadPrefabs()

	if g.paused {
		g.debugText.Label = g.debugString()
		g.pauseUI.Update()
		return nil
	}

	g.sched.Update(g.world)
	g.logEvents()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.sched.Draw(g.world, screen)

	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f\n%s%s", g.frames, ebiten.ActualFPS(), g.debugString(), g.status))
	}

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Close releases the prefab watcher and the player's subscription.
func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			g.log.Warn("close prefab watcher", zap.Error(err))
		}
	}
	entity.DestroyPlayer(g.world, g.pw, g.player)
}

func (g *Game) controller() *movement.Controller {
	p, ok := ecs.Get(g.world, g.player, component.PlayerComponent)
	if !ok {
		return nil
	}
	return p.Controller
}

func (g *Game) debugString() string {
	ctl := g.controller()
	if ctl == nil {
		return "no player\n"
	}
	return ctl.DebugString()
}

func (g *Game) copyDebug() {
	if !g.clipboardReady {
		g.status = "clipboard unavailable\n"
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(g.debugString()))
	g.status = "copied debug state\n"
	g.log.Debug("copied controller state to clipboard")
}

func (g *Game) logEvents() {
	for _, evt := range g.world.Events().Drain() {
		me, ok := evt.Data.(movement.Event)
		if evt.Type != ecs.EventMovement || !ok {
			continue
		}
		g.log.Debug(me.Kind.String(),
			zap.Stringer("entity", evt.Entity),
			zap.Uint64("tick", me.Tick),
			zap.String("from", string(me.From)),
			zap.String("to", string(me.To)),
			zap.Int("jumps_remaining", me.JumpsRemaining),
		)
	}
}

func (g *Game) reloadPrefabs() {
	if g.watcher == nil {
		return
	}
	for _, name := range g.watcher.Poll() {
		switch name {
		case prefabs.PlayerFile:
			g.reloadPlayer()
		case prefabs.CameraFile:
			g.reloadCamera()
		case prefabs.LevelFile:
			g.log.Info("level changed on disk; restart to apply", zap.String("file", name))
		default:
			if prefabs.IsScriptFile(name) {
				g.checkScript(name)
			}
		}
	}
}

// checkScript compiles an edited replay script so mistakes show up in the
// game log before the next replay run.
func (g *Game) checkScript(name string) {
	if _, err := replay.Load(name); err != nil {
		g.log.Warn("replay script rejected", zap.String("file", name), zap.Error(err))
		return
	}
	g.log.Info("replay script ok", zap.String("file", name))
}

func (g *Game) reloadPlayer() {
	ctl := g.controller()
	if ctl == nil {
		return
	}
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		g.log.Warn("reload player spec", zap.Error(err))
		return
	}
	if err := ctl.Reconfigure(spec.Config()); err != nil {
		g.log.Warn("apply player spec", zap.Error(err))
		return
	}
	g.log.Info("reloaded player spec", zap.String("name", spec.Name))
}

func (g *Game) reloadCamera() {
	spec, err := prefabs.LoadCameraSpec()
	if err != nil {
		g.log.Warn("reload camera spec", zap.Error(err))
		return
	}
	cam, ok := ecs.Get(g.world, g.camera, component.CameraComponent)
	if !ok {
		return
	}
	cam.Zoom = spec.Zoom
	if spec.Smoothness > 0 {
		cam.Smoothness = spec.Smoothness
	}
	if err := ecs.Add(g.world, g.camera, component.CameraComponent, cam); err != nil {
		g.log.Warn("apply camera spec", zap.Error(err))
		return
	}
	g.log.Info("reloaded camera spec")
}
