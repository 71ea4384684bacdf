package core

import "fmt"

// Grid stores a 2D grid of values in row-major order.
type Grid[T any] struct {
	W, H int
	data []T
}

// NewGrid allocates a grid with the given dimensions.
func NewGrid[T any](w, h int) *Grid[T] {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid[T]{W: w, H: h, data: make([]T, w*h)}
}

// Values exposes the backing slice so callers can read/write values directly.
func (g *Grid[T]) Values() []T { return g.data }

// Len reports the number of cells.
func (g *Grid[T]) Len() int { return len(g.data) }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid[T]) Index(x, y int) int { return y*g.W + x }

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid[T]) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.W && y < g.H
}

// At returns a pointer to the value at (x, y). Out-of-range coordinates are
// programming errors and panic rather than being clamped or wrapped.
func (g *Grid[T]) At(x, y int) *T {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("grid: coordinate (%d,%d) outside %dx%d", x, y, g.W, g.H))
	}
	return &g.data[y*g.W+x]
}

// Swap exchanges the values stored at two linear indices.
func (g *Grid[T]) Swap(a, b int) {
	g.data[a], g.data[b] = g.data[b], g.data[a]
}

// Fill sets every cell to v.
func (g *Grid[T]) Fill(v T) {
	for i := range g.data {
		g.data[i] = v
	}
}
