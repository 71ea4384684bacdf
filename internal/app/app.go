//go:build ebiten

package app

import (
	"image/color"
	"time"

	"mad-sand/internal/core"
	"mad-sand/internal/element"
	"mad-sand/internal/render"
	"mad-sand/internal/sims/sand"
	"mad-sand/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type paletteProvider interface {
	Palette() []color.RGBA
}

type brushPainter interface {
	Brush() sand.Brush
	SetBrush(sand.Brush)
	Paint(e element.Element, x, y, radius int) int
}

var digitKeys = []ebiten.Key{
	ebiten.KeyDigit0, ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	clock   *core.FixedStep

	scale    int
	hudWidth int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, scale int, seed int64, hudWidth int) *Game {
	if scale <= 0 {
		scale = 1
	}
	gp := render.NewGridPainter(sim.Size().W, sim.Size().H)
	return &Game{
		sim:      sim,
		painter:  gp,
		overlay:  ui.NewOverlay(sim, scale),
		hud:      ui.NewHUD(sim, hudWidth),
		clock:    core.NewFixedStep(0),
		scale:    scale,
		hudWidth: hudWidth,
		seed:     seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	if g.overlay != nil {
		g.overlay.Update()
	}
	if g.hud != nil {
		g.hud.Update(g.sim.Size().W * g.scale)
	}
	g.handleBrush()

	delta := g.clock.Elapsed()
	switch {
	case g.tickOnce:
		g.sim.Step()
		g.tickOnce = false
	case g.paused:
	default:
		if adv, ok := g.sim.(core.Advancer); ok {
			adv.Advance(delta)
		} else {
			g.sim.Step()
		}
	}
	return nil
}

func (g *Game) handleBrush() {
	bp, ok := g.sim.(brushPainter)
	if !ok {
		return
	}
	brush := bp.Brush()
	for i, key := range digitKeys {
		if inpututil.IsKeyJustPressed(key) && i < element.Count {
			brush.Element = element.Element(i)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		brush.Element = element.Element((int(brush.Element) + 1) % element.Count)
	}
	if _, wy := ebiten.Wheel(); wy > 0 {
		brush.Radius++
	} else if wy < 0 && brush.Radius > 0 {
		brush.Radius--
	}
	bp.SetBrush(brush)

	mx, my := ebiten.CursorPosition()
	if g.hud != nil && g.hud.Contains(mx, my) {
		return
	}
	x, y := mx/g.scale, my/g.scale
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		bp.Paint(brush.Element, x, y, brush.Radius)
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		bp.Paint(element.Air, x, y, brush.Radius)
	}
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	var palette []color.RGBA
	if p, ok := g.sim.(paletteProvider); ok {
		palette = p.Palette()
	}
	g.painter.Blit(screen, g.sim.Cells(), palette, g.scale)
	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
	if g.hud != nil {
		g.hud.Draw(screen, g.sim.Size().W*g.scale, g.scale)
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hudWidth, s.H * g.scale
}
