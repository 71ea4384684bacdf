package main

import (
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"

	"mad-sand/internal/element"
	"mad-sand/internal/sims/sand"
)

// halfBlock paints the upper grid row as foreground and the lower one as
// background, so one terminal row shows two grid rows.
const halfBlock = '▀'

type view struct {
	w      *sand.World
	styles [32]tcell.Color
	status int
}

func newView(w *sand.World) *view {
	v := &view{w: w, status: 1}
	for i, c := range w.Palette() {
		if i >= len(v.styles) {
			break
		}
		v.styles[i] = rgb(c)
	}
	return v
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// gridAt maps a terminal cell to the grid position of its upper half.
func (v *view) gridAt(col, row int) (int, int) {
	return col, row * 2
}

func (v *view) draw(s tcell.Screen) {
	cols, rows := s.Size()
	size := v.w.Size()
	cells := v.w.Cells()
	body := rows - v.status
	for row := 0; row < body; row++ {
		top := row * 2
		if top >= size.H {
			break
		}
		for col := 0; col < cols && col < size.W; col++ {
			fg := v.styles[cells[top*size.W+col]&31]
			bg := fg
			if top+1 < size.H {
				bg = v.styles[cells[(top+1)*size.W+col]&31]
			}
			s.SetContent(col, row, halfBlock, nil, tcell.StyleDefault.Foreground(fg).Background(bg))
		}
	}
	v.drawStatus(s, rows-1, cols)
	s.Show()
}

func (v *view) drawStatus(s tcell.Screen, row, cols int) {
	b := v.w.Brush()
	line := statusLine(v.w.Name(), v.w.Tick(), v.w.Burning(), b)
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	col := 0
	for _, r := range line {
		if col >= cols {
			break
		}
		s.SetContent(col, row, r, nil, style)
		col++
	}
	for ; col < cols; col++ {
		s.SetContent(col, row, ' ', nil, style)
	}
}

func statusLine(scene string, tick uint64, burning int, b sand.Brush) string {
	return fmt.Sprintf("%s  tick %d  burning %d  brush %s r%d  [0-9] element  [+/-] radius  [r] reset  [space] pause  [q] quit",
		scene, tick, burning, b.Element, b.Radius)
}

// elementForKey maps the number row onto the element list; 0 is air.
func elementForKey(r rune) (element.Element, bool) {
	if r < '0' || r > '9' {
		return 0, false
	}
	e := element.Element(r - '0')
	if !e.Valid() {
		return 0, false
	}
	return e, true
}
