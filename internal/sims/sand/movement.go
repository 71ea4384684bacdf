package sand

import (
	"math"

	"mad-sand/internal/element"
	pcore "mad-sand/pkg/core"
)

// Candidate targets per matter state, in the order they are tried. Each
// state has several orderings so no side is favoured.
var (
	solidMoves = [2][]offset{
		{{0, 1}, {-1, 1}, {1, 1}},
		{{0, 1}, {1, 1}, {-1, 1}},
	}
	liquidMoves = [4][]offset{
		{{0, 1}, {-1, 1}, {1, 1}, {-1, 0}, {1, 0}},
		{{0, 1}, {1, 1}, {-1, 1}, {1, 0}, {-1, 0}},
		{{0, 1}, {-1, 1}, {1, 1}, {1, 0}, {-1, 0}},
		{{0, 1}, {1, 1}, {-1, 1}, {-1, 0}, {1, 0}},
	}
	gasMoves = [4][]offset{
		{{0, -1}, {-1, -1}, {1, -1}, {-1, 0}, {1, 0}},
		{{0, -1}, {1, -1}, {-1, -1}, {1, 0}, {-1, 0}},
		{{0, -1}, {-1, -1}, {1, -1}, {1, 0}, {-1, 0}},
		{{0, -1}, {1, -1}, {-1, -1}, {-1, 0}, {1, 0}},
	}
)

// move spends the cell's accumulated impulse on single-slot steps and
// returns where the cell ended up. The first blocked step puts it to sleep.
func (w *World) move(x, y int, rng *pcore.Rand) (int, int) {
	c := w.cells.At(x, y)
	c.Impulse += c.Mass
	steps := float32(math.Floor(float64(c.Impulse)))
	c.Impulse -= steps

	for i := 0; i < int(steps); i++ {
		nx, ny, ok := w.stepOnce(x, y, rng)
		if !ok {
			w.cells.At(x, y).Asleep = true
			break
		}
		x, y = nx, ny
		if c := w.cells.At(x, y); c.State == element.Gas {
			c.Health--
		}
	}
	return x, y
}

func (w *World) stepOnce(x, y int, rng *pcore.Rand) (int, int, bool) {
	c := w.cells.At(x, y)
	var dirs []offset
	switch c.State {
	case element.Solid:
		dirs = solidMoves[rng.Intn(len(solidMoves))]
	case element.Liquid:
		dirs = liquidMoves[rng.Intn(len(liquidMoves))]
	case element.Gas:
		dirs = gasMoves[rng.Intn(len(gasMoves))]
	}
	for _, o := range dirs {
		nx, ny := x+o.dx, y+o.dy
		if !w.cells.InBounds(nx, ny) {
			continue
		}
		t := w.cells.At(nx, ny)
		if !canDisplace(c, t) {
			continue
		}
		w.swap(x, y, nx, ny)
		return nx, ny, true
	}
	return x, y, false
}

// canDisplace reports whether c may trade places with target. Solids and
// liquids sink into anything lighter; gases rise through anything at least
// as dense as themselves.
func canDisplace(c, target *element.Cell) bool {
	if !target.Movable {
		return false
	}
	if c.State == element.Gas {
		return target.Density >= c.Density
	}
	return target.Density < c.Density
}

// swap exchanges two cells along with their previous temperatures and wakes
// both neighbourhoods.
func (w *World) swap(x0, y0, x1, y1 int) {
	a := w.cells.Index(x0, y0)
	b := w.cells.Index(x1, y1)
	w.cells.Swap(a, b)
	w.prevTemp.Swap(a, b)
	w.cells.At(x0, y0).Asleep = false
	w.cells.At(x1, y1).Asleep = false
	w.wakeAround(x0, y0)
	w.wakeAround(x1, y1)
}
