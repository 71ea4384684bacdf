package sand

import (
	"mad-sand/internal/core"
	"mad-sand/internal/element"
	pcore "mad-sand/pkg/core"
)

type offset struct{ dx, dy int }

var (
	orthogonal = [4]offset{{0, 1}, {-1, 0}, {0, -1}, {1, 0}}
	moore      = [8]offset{{0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}, {1, 0}, {1, 1}}
)

// runChunk is the scheduler job. Previous temperatures for the chunk are
// refreshed before any cell in it changes.
func (w *World) runChunk(worker int, ch core.Chunk) {
	ws := &w.workers[worker]
	cells := w.cells.Values()
	prev := w.prevTemp.Values()
	for y := ch.BeginY; y < ch.EndY; y++ {
		row := y * w.w
		for x := ch.BeginX; x < ch.EndX; x++ {
			prev[row+x] = cells[row+x].Temperature
		}
	}
	for y := ch.BeginY; y < ch.EndY; y++ {
		for x := ch.BeginX; x < ch.EndX; x++ {
			if w.updateCell(x, y, ws.rng) {
				ws.updated++
			}
		}
	}
}

// updateCell runs the per-cell rule pipeline and reports whether the cell
// was processed this call.
func (w *World) updateCell(x, y int, rng *pcore.Rand) bool {
	c := w.cells.At(x, y)
	if c.Tick >= w.tick {
		return false
	}
	c.Tick = w.tick

	w.conduct(x, y, c)
	if c.Element == element.Air {
		return true
	}

	if c.Health <= 0 {
		*c = w.cat.Respawn(*c, element.Air)
		w.wakeAround(x, y)
		return true
	}

	if c.Movable && !c.Asleep {
		x, y = w.move(x, y, rng)
	}
	w.react(x, y)
	w.applyAttributes(x, y, rng)
	return true
}

// wakeAround clears the sleep flag on the 8 cells around (x, y).
func (w *World) wakeAround(x, y int) {
	for _, o := range moore {
		nx, ny := x+o.dx, y+o.dy
		if w.cells.InBounds(nx, ny) {
			w.cells.At(nx, ny).Asleep = false
		}
	}
}
