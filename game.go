package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/rendezvous/common"
	"github.com/milk9111/rendezvous/ecs"
	"github.com/milk9111/rendezvous/prefabs"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
	"gopkg.in/yaml.v3"
)

const toastMillis = 2500

type gameOptions struct {
	debug        bool
	alwaysActive bool
	specName     string
}

type Game struct {
	log  *slog.Logger
	opts gameOptions

	spec    *prefabs.EncounterSpec
	session *session

	watcher   *prefabs.Watcher
	clipboard bool

	paused  bool
	pauseUI *ebitenui.UI
	face    ebtext.Face

	toast      string
	toastTimer float64
}

func NewGame(opts gameOptions, logger *slog.Logger) (*Game, error) {
	spec, err := prefabs.LoadEncounterSpec(opts.specName)
	if err != nil {
		return nil, err
	}
	g := &Game{
		log:  logger,
		opts: opts,
		spec: spec,
		face: ebtext.NewGoXFace(basicfont.Face7x13),
	}
	if err := g.restart(); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)

	if opts.debug {
		if w, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts")); err != nil {
			logger.Warn("prefab hot reload disabled", "err", err)
		} else {
			g.watcher = w
		}
		if err := clipboard.Init(); err != nil {
			logger.Warn("clipboard unavailable", "err", err)
		} else {
			g.clipboard = true
		}
	}
	return g, nil
}

// restart starts a fresh session with the latest loaded spec.
func (g *Game) restart() error {
	s, err := newSession(g.spec, g.opts.alwaysActive, g.log)
	if err != nil {
		return err
	}
	g.session = s
	g.paused = false
	g.log.Info("encounter session started",
		"spec", g.spec.Name,
		"always_active", s.policy.AlwaysActive(),
		"target_ms", s.sched.Profile().TargetTime,
	)
	return nil
}

func (g *Game) Update() error {
	g.pollReload()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.togglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.restart(); err != nil {
			g.log.Error("restart failed", "err", err)
		}
	}
	if g.opts.debug && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copySnapshot()
	}

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.session.update(common.FrameMillis)
	g.handleEvents(g.session.world.Events().Drain())

	if g.toastTimer > 0 {
		g.toastTimer -= common.FrameMillis
	}
	return nil
}

func (g *Game) togglePause() {
	if g.paused {
		g.resume()
		return
	}
	if !g.session.pause() {
		g.log.Debug("pause ignored, encounter is always active")
		return
	}
	g.paused = true
}

func (g *Game) resume() {
	g.session.resume()
	g.paused = false
}

func (g *Game) handleEvents(events []ecs.Event) {
	for _, ev := range events {
		switch ev.Type {
		case ecs.EventPhaseChanged:
			if pc, ok := ev.Data.(phaseChange); ok {
				g.showToast(pc.To.String())
			}
		case ecs.EventHostilesClear:
			g.showToast(fmt.Sprintf("arena cleared of %v hostiles", ev.Data))
		}
	}
}

func (g *Game) showToast(msg string) {
	g.toast = msg
	g.toastTimer = toastMillis
}

// pollReload picks up edited prefabs. A running encounter keeps its config,
// so changes apply on the next restart.
func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for _, err := range g.watcher.PendingErrors() {
		g.log.Warn("prefab watcher", "err", err)
	}
	for _, name := range g.watcher.Pending() {
		spec, err := prefabs.LoadEncounterSpec(g.opts.specName)
		if err != nil {
			g.log.Warn("prefab reload rejected", "file", name, "err", err)
			continue
		}
		g.spec = spec
		g.log.Info("prefab reloaded", "file", name)
		g.showToast("reloaded " + name + ", press R to apply")
	}
}

func (g *Game) copySnapshot() {
	data, err := yaml.Marshal(g.session.snapshot())
	if err != nil {
		g.log.Error("marshal snapshot", "err", err)
		return
	}
	if !g.clipboard {
		g.log.Info("encounter snapshot", "yaml", string(data))
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.showToast("snapshot copied")
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawWorld(screen)
	g.session.sched.Draw(screen)
	g.drawHUD(screen)
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

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}
