package sand

import (
	"mad-sand/internal/element"
	pcore "mad-sand/pkg/core"
)

// applyAttributes runs the flag-driven rules for a burning cell: dousing,
// explosions, burn damage, spreading to one neighbour and throwing embers.
func (w *World) applyAttributes(x, y int, rng *pcore.Rand) {
	c := w.cells.At(x, y)
	if c.Attrs.Inert() || !c.Burning() {
		return
	}

	for _, o := range orthogonal {
		n := w.neighbour(x, y, o)
		if n != nil && n.Attrs.Has(element.Douses) {
			w.extinguish(x, y)
			return
		}
	}

	if c.Attrs.Has(element.Explosive) {
		w.explode(x, y)
		return
	}

	// Fire already burns down in its own reaction.
	if c.Element != element.Fire {
		c.Health--
	}

	o := orthogonal[rng.Intn(len(orthogonal))]
	n := w.neighbour(x, y, o)
	if n == nil {
		return
	}
	ignite(n)

	// Embers land in the same slot the spread picked.
	if !rng.Chance(w.emberChance) || n.Element != element.Air {
		return
	}
	ember := element.Smoke
	if rng.Bool() {
		ember = element.Fire
	}
	*n = w.cat.Respawn(*n, ember)
	w.wakeAround(x+o.dx, y+o.dy)
}

func (w *World) neighbour(x, y int, o offset) *element.Cell {
	nx, ny := x+o.dx, y+o.dy
	if !w.cells.InBounds(nx, ny) {
		return nil
	}
	return w.cells.At(nx, ny)
}

func ignite(n *element.Cell) bool {
	if !n.Attrs.Has(element.Flammable) || n.Burning() {
		return false
	}
	n.Attrs.Set(element.Ignites)
	n.Asleep = false
	return true
}

// extinguish puts out the cell at (x, y). Fire has nothing left to burn and
// turns to smoke.
func (w *World) extinguish(x, y int) {
	c := w.cells.At(x, y)
	if c.Element == element.Fire {
		*c = w.cat.Respawn(*c, element.Smoke)
	} else {
		c.Attrs.Clear(element.Ignites)
	}
	w.wakeAround(x, y)
}

// explode turns the cell into fire and lights every flammable neighbour.
func (w *World) explode(x, y int) {
	c := w.cells.At(x, y)
	*c = w.cat.Respawn(*c, element.Fire)
	for _, o := range orthogonal {
		if n := w.neighbour(x, y, o); n != nil {
			ignite(n)
		}
	}
	w.wakeAround(x, y)
}
