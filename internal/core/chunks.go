package core

// Chunk is a rectangular scheduling unit [BeginX,EndX) x [BeginY,EndY).
// CX and CY locate the chunk on the chunk grid.
type Chunk struct {
	BeginX, BeginY int
	EndX, EndY     int
	CX, CY         int
}

// Contains reports whether (x, y) lies inside the chunk.
func (c Chunk) Contains(x, y int) bool {
	return x >= c.BeginX && x < c.EndX && y >= c.BeginY && y < c.EndY
}

// Area returns the number of cells covered by the chunk.
func (c Chunk) Area() int {
	return (c.EndX - c.BeginX) * (c.EndY - c.BeginY)
}

// Touches reports whether two chunks share an edge or a corner.
func (c Chunk) Touches(o Chunk) bool {
	dx := c.CX - o.CX
	dy := c.CY - o.CY
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx <= 1 && dy <= 1 && !(dx == 0 && dy == 0)
}

// PatternCount is the number of batches in one scheduler cycle.
const PatternCount = 8

// PatternOffsets lists the chunk-coordinate parities activated by each
// batch: the four 2x2 checkerboard classes, then the same four in reverse
// draw order so chunk borders are revisited from the other side.
var PatternOffsets = [PatternCount][2]int{
	{0, 0}, {1, 0}, {0, 1}, {1, 1},
	{1, 1}, {0, 1}, {1, 0}, {0, 0},
}

// Partition splits a w x h grid into chunks of edge length size. When size
// does not divide the grid, the last row and column of chunks are shorter.
func Partition(w, h, size int) []Chunk {
	if size <= 0 {
		size = 1
	}
	var chunks []Chunk
	for cy, y := 0, 0; y < h; cy, y = cy+1, y+size {
		for cx, x := 0, 0; x < w; cx, x = cx+1, x+size {
			chunks = append(chunks, Chunk{
				BeginX: x,
				BeginY: y,
				EndX:   min(x+size, w),
				EndY:   min(y+size, h),
				CX:     cx,
				CY:     cy,
			})
		}
	}
	return chunks
}

// Patterns groups chunks into the PatternCount batches described by
// PatternOffsets. Within a batch no two chunks touch.
func Patterns(chunks []Chunk) [PatternCount][]Chunk {
	var out [PatternCount][]Chunk
	for i, off := range PatternOffsets {
		for _, ch := range chunks {
			if ch.CX%2 == off[0] && ch.CY%2 == off[1] {
				out[i] = append(out[i], ch)
			}
		}
	}
	return out
}
