package core

import (
	"slices"
	"testing"
	"time"
)

func TestGridIndexing(t *testing.T) {
	g := NewGrid[int](4, 3)
	*g.At(2, 1) = 7
	if got := g.Values()[g.Index(2, 1)]; got != 7 {
		t.Fatalf("row-major value = %d, want 7", got)
	}
	if g.Index(2, 1) != 6 || g.Len() != 12 {
		t.Fatalf("index %d len %d", g.Index(2, 1), g.Len())
	}
	g.Swap(g.Index(2, 1), 0)
	if *g.At(0, 0) != 7 || *g.At(2, 1) != 0 {
		t.Fatal("Swap did not exchange values")
	}
	g.Fill(3)
	if !slices.Equal(g.Values(), slices.Repeat([]int{3}, 12)) {
		t.Fatalf("Fill left %v", g.Values())
	}
}

func TestGridAtPanicsOutOfRange(t *testing.T) {
	g := NewGrid[uint8](4, 3)
	for _, c := range []Coord{{-1, 0}, {0, -1}, {4, 0}, {0, 3}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("At(%d,%d) did not panic", c.X, c.Y)
				}
			}()
			g.At(c.X, c.Y)
		}()
		if g.InBounds(c.X, c.Y) {
			t.Fatalf("InBounds(%d,%d) = true", c.X, c.Y)
		}
	}
}

func TestFixedStepAdvance(t *testing.T) {
	fs := NewFixedStep(10 * time.Millisecond)
	calls := 0
	tick := func() { calls++ }

	if n := fs.Advance(25*time.Millisecond, tick); n != 2 || calls != 2 {
		t.Fatalf("Advance(25ms) = %d steps (%d calls), want 2", n, calls)
	}
	if fs.Pending() != 5*time.Millisecond {
		t.Fatalf("pending = %s, want 5ms", fs.Pending())
	}
	if n := fs.Advance(5*time.Millisecond, tick); n != 1 {
		t.Fatalf("accumulated remainder gave %d steps, want 1", n)
	}
	if n := fs.Advance(-time.Second, tick); n != 0 {
		t.Fatalf("negative delta ran %d steps", n)
	}

	fs.MaxSteps = 3
	if n := fs.Advance(time.Second+4*time.Millisecond, tick); n != 3 {
		t.Fatalf("capped Advance = %d, want 3", n)
	}
	if fs.Pending() != 4*time.Millisecond {
		t.Fatalf("surplus not dropped: pending %s", fs.Pending())
	}
}

func TestFixedStepDefaults(t *testing.T) {
	fs := NewFixedStep(0)
	if fs.Step() != time.Second/60 {
		t.Fatalf("default step = %s", fs.Step())
	}
	if fs.Elapsed() != 0 {
		t.Fatal("first Elapsed call should be zero")
	}
	if fs.Elapsed() < 0 {
		t.Fatal("Elapsed went backwards")
	}
}
