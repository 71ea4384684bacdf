package sand

import "mad-sand/internal/element"

// react applies the element's own rule at (x, y). Phase changes keep the
// cell's temperature and tick stamp.
func (w *World) react(x, y int) {
	c := w.cells.At(x, y)
	switch c.Element {
	case element.Fire, element.Smoke:
		c.Health--
	case element.Water:
		switch {
		case c.Temperature < 0:
			w.convert(x, y, element.Ice)
		case c.Temperature > 100:
			w.convert(x, y, element.Steam)
		}
	case element.Snow, element.Ice:
		if c.Temperature > 0 {
			w.convert(x, y, element.Water)
		}
	case element.Steam:
		if c.Temperature < 100 {
			w.convert(x, y, element.Water)
		}
	}
}

func (w *World) convert(x, y int, e element.Element) {
	c := w.cells.At(x, y)
	*c = w.cat.Convert(*c, e)
	w.wakeAround(x, y)
}
