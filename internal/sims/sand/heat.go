package sand

import "mad-sand/internal/element"

// conduct moves heat between (x, y) and its four orthogonal neighbours using
// the previous-temperature snapshot. A missing neighbour behaves like a sink
// that takes a quarter of the cell's heat.
func (w *World) conduct(x, y int, c *element.Cell) {
	here := *w.prevTemp.At(x, y)
	var acc float32
	for _, o := range orthogonal {
		nx, ny := x+o.dx, y+o.dy
		if !w.cells.InBounds(nx, ny) {
			acc += here / 4
			continue
		}
		acc += here - *w.prevTemp.At(nx, ny)
	}
	c.Temperature += w.heatRate * c.Conductivity * w.dt * -acc
	c.Temperature = clampTemperature(c.Temperature)
}

func clampTemperature(t float32) float32 {
	if t < minTemperature {
		return minTemperature
	}
	if t > maxTemperature {
		return maxTemperature
	}
	return t
}
