package fight

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rendezvous/prefabs"
	"golang.org/x/image/colornames"
)

const arenaRadius = 220

var themeColors = map[string]color.RGBA{
	"ember": colornames.Orangered,
	"frost": colornames.Lightskyblue,
	"storm": colornames.Mediumpurple,
}

// ThemeColor returns the arena color for a theme key.
func ThemeColor(theme string) color.RGBA {
	if c, ok := themeColors[theme]; ok {
		return c
	}
	return colornames.White
}

// Scripted is a boss fight whose completion rule lives in a tengo script.
// Every run the script sees elapsed, dt and theme and sets done and progress.
type Scripted struct {
	log      *slog.Logger
	compiled *tengo.Compiled

	active   bool
	done     bool
	elapsed  float64
	progress float64
	center   cp.Vector
	theme    string

	camera func() cp.Vector
}

// Load compiles a script from the prefabs scripts directory.
func Load(name string, logger *slog.Logger) (*Scripted, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("fight: load %s: %w", name, err)
	}
	f, err := NewScripted(src, logger)
	if err != nil {
		return nil, fmt.Errorf("fight: %s: %w", name, err)
	}
	return f, nil
}

func NewScripted(src []byte, logger *slog.Logger) (*Scripted, error) {
	if logger == nil {
		logger = slog.Default()
	}
	script := tengo.NewScript(src)
	_ = script.Add("elapsed", 0.0)
	_ = script.Add("dt", 0.0)
	_ = script.Add("theme", "")
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return &Scripted{log: logger.With("system", "fight"), compiled: compiled}, nil
}

// SetCamera supplies the world position of the screen's top-left corner.
func (f *Scripted) SetCamera(camera func() cp.Vector) {
	f.camera = camera
}

func (f *Scripted) ActivateAtPosition(p cp.Vector, theme string) {
	f.active = true
	f.done = false
	f.elapsed = 0
	f.progress = 0
	f.center = p
	f.theme = theme
	f.log.Info("fight activated", "x", p.X, "y", p.Y, "theme", theme)
}

func (f *Scripted) Update(dt float64) {
	if !f.active || f.done || dt <= 0 {
		return
	}
	f.elapsed += dt
	if err := f.run(dt); err != nil {
		f.log.Error("fight script failed", "err", err, "elapsed_ms", f.elapsed)
		f.done = true
	}
}

func (f *Scripted) run(dt float64) error {
	if err := f.compiled.Set("elapsed", f.elapsed); err != nil {
		return err
	}
	if err := f.compiled.Set("dt", dt); err != nil {
		return err
	}
	if err := f.compiled.Set("theme", f.theme); err != nil {
		return err
	}
	if err := f.compiled.Run(); err != nil {
		return err
	}
	if f.compiled.IsDefined("progress") {
		f.progress = f.compiled.Get("progress").Float()
	}
	if f.compiled.IsDefined("done") {
		f.done = f.compiled.Get("done").Bool()
	}
	return nil
}

func (f *Scripted) Completed() bool { return f.done }

func (f *Scripted) Active() bool { return f.active }

func (f *Scripted) Progress() float64 { return f.progress }

func (f *Scripted) Draw(screen *ebiten.Image) {
	if screen == nil || !f.active {
		return
	}
	origin := cp.Vector{}
	if f.camera != nil {
		origin = f.camera()
	}
	cx := float32(f.center.X - origin.X)
	cy := float32(f.center.Y - origin.Y)
	clr := ThemeColor(f.theme)

	vector.StrokeCircle(screen, cx, cy, arenaRadius, 4, clr, true)
	inner := float32(arenaRadius * (1 - f.progress))
	if inner > 0 {
		fill := color.NRGBA{R: clr.R, G: clr.G, B: clr.B, A: 0x40}
		vector.FillCircle(screen, cx, cy, inner, fill, true)
	}
}
