package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rendezvous/common"
	"github.com/milk9111/rendezvous/ecs"
	"github.com/milk9111/rendezvous/ecs/component"
	"github.com/milk9111/rendezvous/encounter"
	"github.com/milk9111/rendezvous/fight"
	"golang.org/x/image/colornames"
)

var (
	backgroundColor = color.RGBA{R: 0x14, G: 0x12, B: 0x1c, A: 0xff}
	playerColor     = colornames.Deepskyblue
	hostileColor    = colornames.Crimson
	bossColor       = colornames.Darkorange
	boundaryColor   = color.RGBA{R: 0xff, G: 0x44, B: 0x22, A: 0x90}
	hudColor        = colornames.Whitesmoke
	warningColor    = colornames.Gold
)

const bossRadius = 28

func (g *Game) drawWorld(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	s := g.session
	origin := s.cameraOrigin()
	toScreen := func(p cp.Vector) (float32, float32) {
		return float32(p.X - origin.X), float32(p.Y - origin.Y)
	}

	if end := s.spec.Level.End; end != 0 {
		x, _ := toScreen(cp.Vector{X: end})
		vector.StrokeLine(screen, x, 0, x, common.BaseHeight, 2, colornames.Gray, false)
	}

	bx, _ := toScreen(cp.Vector{X: s.sched.Boundary()})
	vector.StrokeLine(screen, bx, 0, bx, common.BaseHeight, 3, boundaryColor, false)

	ecs.ForEach2(s.world, component.HostileTagComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, _ *component.HostileTag, t *component.Transform) {
			r := float32(8)
			if pb, ok := ecs.Get(s.world, e, component.PhysicsBodyComponent.Kind()); ok && pb.Radius > 0 {
				r = float32(pb.Radius)
			}
			x, y := toScreen(cp.Vector{X: t.X, Y: t.Y})
			vector.FillCircle(screen, x, y, r, hostileColor, true)
		})

	if p, ok := s.playerPosition(); ok {
		x, y := toScreen(p)
		vector.FillCircle(screen, x, y, float32(s.spec.Player.Radius), playerColor, true)
	}

	if !s.sched.IsInBossPhase() {
		x, y := toScreen(s.sched.Boss().Position())
		vector.FillCircle(screen, x, y, bossRadius, bossColor, true)
	}

	if point, ok := s.sched.MeetingPoint(); ok && s.sched.Phase() == encounter.PhaseArenaForming {
		x, y := toScreen(point)
		r := float32(220 * s.sched.ArenaProgress())
		vector.StrokeCircle(screen, x, y, r, 3, fight.ThemeColor(s.spec.Arena.Theme), true)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	s := g.session
	lines := []string{
		fmt.Sprintf("phase: %s", s.sched.Phase()),
		fmt.Sprintf("boss speed: %.4f u/ms", s.sched.Speed()),
		fmt.Sprintf("elapsed: %.1fs / %.1fs", s.sched.Elapsed()/1000, s.sched.Profile().TargetTime/1000),
	}
	if c := s.enc.Countdown(); c != nil {
		lines = append(lines, fmt.Sprintf("time left: %.1fs", c.Remaining()/1000))
	}
	if s.policy.AlwaysActive() {
		lines = append(lines, "always active")
	}
	if g.opts.debug {
		lines = append(lines,
			fmt.Sprintf("FPS: %.1f  bodies: %d", ebiten.ActualFPS(), s.physics.Bodies()),
			fmt.Sprintf("gap to player: %.0f", g.bossGap()),
		)
	}
	for i, line := range lines {
		g.drawText(screen, line, 12, 12+float64(i)*16, hudColor)
	}

	switch s.sched.Phase() {
	case encounter.PhaseWarning:
		g.drawCentered(screen, "SOMETHING APPROACHES", 80, warningColor)
	case encounter.PhaseMeeting:
		g.drawCentered(screen, "THE BOSS HAS CAUGHT UP", 80, warningColor)
	case encounter.PhaseArenaForming:
		g.drawArenaBar(screen, s.sched.ArenaProgress())
	case encounter.PhaseBossFight:
		if s.fight != nil {
			g.drawArenaBar(screen, s.fight.Progress())
		}
	case encounter.PhaseComplete:
		g.drawCentered(screen, "ENCOUNTER COMPLETE  (R to restart)", 80, hudColor)
	}

	if g.toastTimer > 0 && g.toast != "" {
		g.drawCentered(screen, g.toast, common.BaseHeight-40, hudColor)
	}
}

func (g *Game) bossGap() float64 {
	p, ok := g.session.playerPosition()
	if !ok {
		return 0
	}
	return g.session.sched.Boss().Position().Distance(p)
}

func (g *Game) drawArenaBar(screen *ebiten.Image, progress float64) {
	const w, h = 400, 10
	x := float32(common.BaseWidth-w) / 2
	y := float32(60)
	vector.FillRect(screen, x, y, w, h, color.RGBA{A: 0xa0}, false)
	vector.FillRect(screen, x, y, float32(w*common.Clamp01(progress)), h, fight.ThemeColor(g.session.spec.Arena.Theme), false)
	vector.StrokeRect(screen, x, y, w, h, 1, hudColor, false)
}

func (g *Game) drawCentered(screen *ebiten.Image, msg string, y float64, clr color.Color) {
	width, _ := ebtext.Measure(msg, g.face, 0)
	g.drawText(screen, msg, (common.BaseWidth-width)/2, y, clr)
}

func (g *Game) drawText(screen *ebiten.Image, msg string, x, y float64, clr color.Color) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	ebtext.Draw(screen, msg, g.face, op)
}
