package core

import "testing"

func TestPartitionCoversGrid(t *testing.T) {
	chunks := Partition(100, 70, 32)
	if len(chunks) != 4*3 {
		t.Fatalf("got %d chunks, want 12", len(chunks))
	}
	covered := make([]int, 100*70)
	for _, ch := range chunks {
		for y := ch.BeginY; y < ch.EndY; y++ {
			for x := ch.BeginX; x < ch.EndX; x++ {
				covered[y*100+x]++
			}
		}
	}
	for i, n := range covered {
		if n != 1 {
			t.Fatalf("cell %d covered %d times", i, n)
		}
	}
	last := chunks[len(chunks)-1]
	if last.EndX != 100 || last.EndY != 70 || last.Area() != 4*6 {
		t.Fatalf("remainder chunk %+v", last)
	}
}

func TestPatternsNeverTouch(t *testing.T) {
	chunks := Partition(1280, 768, 64)
	patterns := Patterns(chunks)
	visits := map[Chunk]int{}
	for i, batch := range patterns {
		if len(batch) == 0 {
			t.Fatalf("pattern %d is empty", i)
		}
		for a := range batch {
			visits[batch[a]]++
			for b := a + 1; b < len(batch); b++ {
				if batch[a].Touches(batch[b]) {
					t.Fatalf("pattern %d: chunks %+v and %+v touch", i, batch[a], batch[b])
				}
			}
		}
	}
	for _, ch := range chunks {
		if visits[ch] != 2 {
			t.Fatalf("chunk (%d,%d) visited %d times per cycle, want 2", ch.CX, ch.CY, visits[ch])
		}
	}
}

func TestChunkTouches(t *testing.T) {
	a := Chunk{CX: 2, CY: 2}
	for _, o := range []Chunk{{CX: 3, CY: 2}, {CX: 1, CY: 1}, {CX: 3, CY: 3}, {CX: 2, CY: 1}} {
		if !a.Touches(o) {
			t.Fatalf("%+v should touch %+v", a, o)
		}
	}
	for _, o := range []Chunk{{CX: 2, CY: 2}, {CX: 4, CY: 2}, {CX: 0, CY: 0}} {
		if a.Touches(o) {
			t.Fatalf("%+v should not touch %+v", a, o)
		}
	}
}
