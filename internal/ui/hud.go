//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"mad-sand/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

var (
	panelBG    = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	titleFG    = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelFG    = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimFG      = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	buttonBG   = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	buttonFG   = color.RGBA{R: 230, G: 230, B: 240, A: 255}
	disabledBG = color.RGBA{R: 32, G: 34, B: 40, A: 255}
	disabledFG = color.RGBA{R: 120, G: 120, B: 130, A: 255}
)

// HUD is the parameter panel drawn to the right of the world.
type HUD struct {
	sim   core.Sim
	width int
	title string

	rows []controlRow
	set  setters
	snap core.ParameterSnapshot

	offsetX int
	panel   *ebiten.Image
	pixel   *ebiten.Image
}

// NewHUD builds a panel of the given width for sim. A zero width draws
// nothing.
func NewHUD(sim core.Sim, width int) *HUD {
	h := &HUD{sim: sim, width: max(width, 0), title: "Controls", set: settersOf(sim)}
	if sim != nil && sim.Name() != "" {
		h.title = strings.ToUpper(sim.Name()[:1]) + sim.Name()[1:]
	}
	if p, ok := sim.(core.ParameterControlsProvider); ok && h.width > 0 {
		h.rows = layoutRows(p.ParameterControls(), h.width)
	}
	if h.width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	return h
}

// Update reloads parameter values and applies a click on a +/- button.
// offsetX is the screen column where the panel starts.
func (h *HUD) Update(offsetX int) {
	if h == nil {
		return
	}
	h.offsetX = offsetX
	p, ok := h.sim.(core.ParameterProvider)
	if !ok {
		return
	}
	h.snap = p.Parameters()
	for i := range h.rows {
		h.rows[i].load(h.snap)
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	pt := image.Pt(mx-h.offsetX, my)
	for i := range h.rows {
		switch {
		case pt.In(h.rows[i].minus):
			h.set.nudge(&h.rows[i], -1)
			return
		case pt.In(h.rows[i].plus):
			h.set.nudge(&h.rows[i], 1)
			return
		}
	}
}

// Contains reports whether a screen point falls on the panel.
func (h *HUD) Contains(x, y int) bool {
	return h != nil && h.width > 0 && y >= 0 && x >= h.offsetX && x < h.offsetX+h.width
}

// Draw paints the panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	height := h.sim.Size().H * max(scale, 1)
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(panelBG)

	face := basicfont.Face7x13
	text.Draw(h.panel, h.title, face, panelPadding, panelPadding+headerBaseline, titleFG)
	if len(h.rows) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, panelPadding+headerBaseline+infoSpacing, dimFG)
	}
	for _, r := range h.rows {
		h.drawRow(r)
	}
	h.drawStatus(controlsTop + len(h.rows)*lineHeight + statusSpacing)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawRow(r controlRow) {
	face := basicfont.Face7x13
	y := r.top + labelBaseline
	text.Draw(h.panel, r.ctrl.Label, face, panelPadding, y, labelFG)

	value, fg := r.text(), labelFG
	if !r.known {
		fg = dimFG
	}
	w := text.BoundString(face, value).Dx()
	text.Draw(h.panel, value, face, r.minus.Min.X-buttonGap-w, y, fg)

	settable := h.set.handles(r.ctrl.Type)
	_, down := r.step(-1)
	_, up := r.step(1)
	h.button(r.minus, "-", settable && down)
	h.button(r.plus, "+", settable && up)
}

func (h *HUD) button(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg, fg := buttonBG, buttonFG
	if !enabled {
		bg, fg = disabledBG, disabledFG
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	b := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-b.Dx())/2
	y := rect.Min.Y + (rect.Dy()+b.Dy())/2
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) drawStatus(top int) {
	face := basicfont.Face7x13
	line := 0
	for _, key := range []string{"tick", "workers", "burning"} {
		p, ok := h.snap.Lookup(key)
		if !ok {
			continue
		}
		text.Draw(h.panel, fmt.Sprintf("%s: %s", p.Label, p.Value), face, panelPadding, top+line*statusSpacing, dimFG)
		line++
	}
}
