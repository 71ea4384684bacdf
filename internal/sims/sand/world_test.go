package sand

import (
	"errors"
	"image"
	"slices"
	"testing"
	"time"

	"mad-sand/internal/core"
	"mad-sand/internal/element"
	pcore "mad-sand/pkg/core"
)

func newTestWorld(t *testing.T, w, h, workers int) *World {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.CellSize = 20
	cfg.Workers = workers
	cfg.Params.EmberChance = 0
	world, err := NewWorld(cfg, nil)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	t.Cleanup(world.Close)
	return world
}

func positionsOf(w *World, e element.Element) []core.Coord {
	var out []core.Coord
	for pos, c := range w.All() {
		if c.Element == e {
			out = append(out, pos)
		}
	}
	return out
}

func TestResetBuildsBorder(t *testing.T) {
	w := newTestWorld(t, 32, 24, 0)
	for pos, c := range w.All() {
		edge := pos.X == 0 || pos.Y == 0 || pos.X == 31 || pos.Y == 23
		want := element.Air
		if edge {
			want = element.Concrete
		}
		if c.Element != want {
			t.Fatalf("cell %v = %s, want %s", pos, c.Element, want)
		}
		if c.Tick != 0 {
			t.Fatalf("cell %v has tick %d after reset", pos, c.Tick)
		}
	}
}

func TestResetClearsPreviousState(t *testing.T) {
	w := newTestWorld(t, 32, 32, 0)
	w.FillRect(element.Sand, image.Rect(4, 4, 12, 12))
	w.Step()
	w.Step()
	w.Reset(0)
	if w.Tick() != 0 {
		t.Fatalf("tick = %d after reset", w.Tick())
	}
	if got := w.Census().Of(element.Sand); got != 0 {
		t.Fatalf("sand survived reset: %d cells", got)
	}
}

func TestNewWorldRejectsSmallChunks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 64, 64
	cfg.Workers = 0
	cfg.CellSize = 16
	if _, err := NewWorld(cfg, nil); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("cell size 16: err = %v, want ErrInvalidConfig", err)
	}
	cfg.CellSize = 17
	w, err := NewWorld(cfg, nil)
	if err != nil {
		t.Fatalf("cell size 17: %v", err)
	}
	w.Close()
}

// changedCells runs one chunk job from the given start state and returns the
// indices it wrote. The world is restored afterwards.
func changedCells(w *World, ch core.Chunk, start []element.Cell, prev []float32) map[int]bool {
	copy(w.cells.Values(), start)
	copy(w.prevTemp.Values(), prev)
	w.runChunk(0, ch)
	out := map[int]bool{}
	for i, c := range w.cells.Values() {
		if c != start[i] {
			out[i] = true
		}
	}
	copy(w.cells.Values(), start)
	copy(w.prevTemp.Values(), prev)
	return out
}

func TestSameBatchChunksWriteDisjointCells(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 51, 3
	cfg.CellSize = 17
	cfg.Workers = 0
	cfg.Params.EmberChance = 1
	w, err := NewWorld(cfg, nil)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	defer w.Close()

	// Burning oil on the facing edges of the two outer chunks, free to run
	// into the middle chunk and throw embers from there.
	w.SetScene("edges", func(w *World, _ *pcore.Rand) {
		for _, x := range []int{16, 34} {
			w.SpawnParticle(element.Oil, x, 1)
			w.At(x, 1).Attrs.Set(element.Ignites)
		}
	})
	batch := w.patterns[0]
	if len(batch) != 2 || batch[0].CX != 0 || batch[1].CX != 2 {
		t.Fatalf("unexpected first batch %+v", batch)
	}
	for seed := int64(1); seed <= 300; seed++ {
		w.Reset(seed)
		w.tick = 1
		start := append([]element.Cell(nil), w.cells.Values()...)
		prev := append([]float32(nil), w.prevTemp.Values()...)
		left := changedCells(w, batch[0], start, prev)
		right := changedCells(w, batch[1], start, prev)
		for i := range left {
			if right[i] {
				t.Fatalf("seed %d: both chunks wrote cell %d,%d", seed, i%51, i/51)
			}
		}
	}
}

func TestCellCountConservation(t *testing.T) {
	w := newTestWorld(t, 64, 48, 3)
	w.FillRect(element.Sand, image.Rect(4, 2, 20, 12))
	w.FillRect(element.Water, image.Rect(24, 2, 40, 12))
	w.FillRect(element.Oil, image.Rect(44, 2, 60, 12))
	w.FillRect(element.Sawdust, image.Rect(10, 20, 50, 24))
	w.FillRect(element.Metal, image.Rect(30, 30, 34, 31))

	before := w.Census()
	for i := 0; i < 150; i++ {
		w.Step()
		if got := w.Census(); got != before {
			t.Fatalf("tick %d: census changed from %v to %v", w.Tick(), before, got)
		}
	}
	if before.Total() != 64*48 {
		t.Fatalf("census total = %d, want %d", before.Total(), 64*48)
	}
}

func TestSandSettles(t *testing.T) {
	w := newTestWorld(t, 48, 48, 2)
	w.FillRect(element.Sand, image.Rect(16, 2, 30, 12))
	for i := 0; i < 300; i++ {
		w.Step()
	}
	settled := positionsOf(w, element.Sand)
	for _, pos := range settled {
		c := w.At(pos.X, pos.Y+1)
		if c.Element == element.Air {
			t.Fatalf("sand at %v still has air below it", pos)
		}
		if !w.At(pos.X, pos.Y).Asleep {
			t.Fatalf("settled sand at %v is awake", pos)
		}
	}
	if n := len(settled); n != 14*10 {
		t.Fatalf("sand count = %d, want %d", n, 14*10)
	}
	for i := 0; i < 40; i++ {
		w.Step()
	}
	if after := positionsOf(w, element.Sand); !slices.Equal(after, settled) {
		t.Fatal("settled sand moved again")
	}
}

func TestSandSinksThroughWater(t *testing.T) {
	w := newTestWorld(t, 16, 16, 0)
	for y := 1; y < 15; y++ {
		w.SpawnParticle(element.Concrete, 4, y)
		w.SpawnParticle(element.Concrete, 6, y)
	}
	w.SpawnParticle(element.Water, 5, 14)
	w.SpawnParticle(element.Sand, 5, 13)

	for i := 0; i < 5; i++ {
		w.Step()
	}
	if got := w.At(5, 14).Element; got != element.Sand {
		t.Fatalf("bottom of shaft = %s, want sand", got)
	}
	if got := w.At(5, 13).Element; got != element.Water {
		t.Fatalf("above sand = %s, want water", got)
	}
}

func TestLighterCellsDoNotSink(t *testing.T) {
	w := newTestWorld(t, 16, 16, 0)
	for y := 1; y < 15; y++ {
		w.SpawnParticle(element.Concrete, 4, y)
		w.SpawnParticle(element.Concrete, 6, y)
	}
	w.SpawnParticle(element.Sand, 5, 14)
	w.SpawnParticle(element.Water, 5, 13)
	w.SpawnParticle(element.Metal, 10, 4)

	for i := 0; i < 10; i++ {
		w.Step()
	}
	if got := w.At(5, 13).Element; got != element.Water {
		t.Fatalf("water moved through denser sand: (5,13) = %s", got)
	}
	if got := w.At(10, 4).Element; got != element.Metal {
		t.Fatalf("immovable metal left its slot: (10,4) = %s", got)
	}
	if !w.At(5, 13).Asleep {
		t.Fatal("blocked water should be asleep")
	}
}

func TestSmokeRises(t *testing.T) {
	w := newTestWorld(t, 16, 16, 0)
	w.SpawnParticle(element.Smoke, 8, 12)
	w.Step()
	smoke := positionsOf(w, element.Smoke)
	if len(smoke) != 1 {
		t.Fatalf("smoke cells = %d, want 1", len(smoke))
	}
	if smoke[0].Y >= 12 {
		t.Fatalf("smoke at %v did not rise", smoke[0])
	}
	if h := w.At(smoke[0].X, smoke[0].Y).Health; h >= 60 {
		t.Fatalf("smoke health = %v, want it to decay while moving", h)
	}
}

func TestNoDoubleProcessing(t *testing.T) {
	w := newTestWorld(t, 64, 48, 3)
	total := uint64(64 * 48)
	for i := 0; i < 3; i++ {
		before := w.Updated()
		w.Step()
		if got := w.Updated() - before; got != total {
			t.Fatalf("static tick %d updated %d cells, want %d", w.Tick(), got, total)
		}
		for pos, c := range w.All() {
			if c.Tick != w.Tick() {
				t.Fatalf("cell %v stamped %d, want %d", pos, c.Tick, w.Tick())
			}
		}
	}

	w.FillRect(element.Sand, image.Rect(2, 2, 62, 10))
	w.FillRect(element.Water, image.Rect(2, 12, 62, 20))
	for i := 0; i < 40; i++ {
		before := w.Updated()
		w.Step()
		if got := w.Updated() - before; got > total {
			t.Fatalf("tick %d updated %d cells, more than the %d in the grid", w.Tick(), got, total)
		}
		for pos, c := range w.All() {
			if c.Tick > w.Tick() {
				t.Fatalf("cell %v stamped %d ahead of tick %d", pos, c.Tick, w.Tick())
			}
		}
	}
}

func TestHeatConverges(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 16, 16
	cfg.CellSize = 20
	cfg.Workers = 0
	cfg.RoomTemp = 0
	cfg.Params.EmberChance = 0
	w, err := NewWorld(cfg, nil)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	defer w.Close()

	w.FillRect(element.Sand, image.Rect(1, 1, 15, 15))
	w.At(8, 8).Temperature = 100

	const eps = 1e-3
	prevMax := float32(100)
	for i := 0; i < 200; i++ {
		w.Step()
		lo, hi := float32(1e9), float32(-1e9)
		for _, c := range w.All() {
			lo = min(lo, c.Temperature)
			hi = max(hi, c.Temperature)
		}
		if hi > prevMax+eps {
			t.Fatalf("tick %d: max temperature rose from %v to %v", w.Tick(), prevMax, hi)
		}
		if lo < -eps {
			t.Fatalf("tick %d: temperature fell below ambient: %v", w.Tick(), lo)
		}
		prevMax = hi
	}
	if prevMax >= 100 {
		t.Fatalf("hot cell did not cool: max %v", prevMax)
	}
	if w.At(9, 8).Temperature <= 0 {
		t.Fatal("heat did not reach the neighbouring cell")
	}
}

func TestFireBurnsOut(t *testing.T) {
	w := newTestWorld(t, 16, 16, 0)
	w.SpawnParticle(element.Fire, 8, 8)
	for tick := 1; tick <= 60; tick++ {
		w.Step()
		c := w.At(8, 8)
		if c.Element != element.Fire {
			t.Fatalf("tick %d: cell = %s, want fire", tick, c.Element)
		}
		if want := float32(60 - tick); c.Health != want {
			t.Fatalf("tick %d: health = %v, want %v", tick, c.Health, want)
		}
	}
	w.Step()
	if got := w.At(8, 8).Element; got != element.Air {
		t.Fatalf("burnt out fire = %s, want air", got)
	}
}

func TestEmberUsesSpreadSlot(t *testing.T) {
	w := newTestWorld(t, 16, 16, 0)
	w.emberChance = 1
	embers, ignitions := 0, 0
	for seed := int64(1); seed <= 200; seed++ {
		w.Reset(0)
		w.SpawnParticle(element.Fire, 8, 8)
		for _, p := range []core.Coord{{8, 9}, {7, 8}, {8, 7}} {
			w.SpawnParticle(element.Sawdust, p.X, p.Y)
		}

		w.applyAttributes(8, 8, pcore.Derive(seed, 0))

		lit := 0
		for _, p := range []core.Coord{{8, 9}, {7, 8}, {8, 7}} {
			if w.At(p.X, p.Y).Burning() {
				lit++
			}
		}
		ember := w.At(9, 8).Element != element.Air
		if lit > 1 || (ember && lit > 0) {
			t.Fatalf("seed %d: %d neighbours lit and ember=%v from one spread", seed, lit, ember)
		}
		if ember {
			embers++
		}
		ignitions += lit
	}
	if embers == 0 || ignitions == 0 {
		t.Fatalf("embers %d ignitions %d over 200 seeds", embers, ignitions)
	}
}

func TestWaterFreezesKeepingTemperature(t *testing.T) {
	w := newTestWorld(t, 16, 16, 0)
	w.SpawnParticle(element.Concrete, 7, 14)
	w.SpawnParticle(element.Concrete, 9, 14)
	w.SpawnParticle(element.Water, 8, 14)
	for _, p := range []core.Coord{{8, 14}, {7, 14}, {9, 14}, {8, 15}, {8, 13}} {
		w.At(p.X, p.Y).Temperature = -5
	}

	w.Step()
	c := w.At(8, 14)
	if c.Element != element.Ice {
		t.Fatalf("cold water = %s, want ice", c.Element)
	}
	if c.Temperature != -5 {
		t.Fatalf("ice temperature = %v, want -5", c.Temperature)
	}
	if c.Tick != w.Tick() {
		t.Fatalf("ice tick = %d, want %d", c.Tick, w.Tick())
	}
}

func TestHotWaterBoils(t *testing.T) {
	w := newTestWorld(t, 16, 16, 0)
	w.SpawnParticle(element.Concrete, 7, 14)
	w.SpawnParticle(element.Concrete, 9, 14)
	w.SpawnParticle(element.Water, 8, 14)
	for _, p := range []core.Coord{{8, 14}, {7, 14}, {9, 14}, {8, 15}, {8, 13}} {
		w.At(p.X, p.Y).Temperature = 150
	}

	w.Step()
	c := w.At(8, 14)
	if c.Element != element.Steam {
		t.Fatalf("boiling water = %s, want steam", c.Element)
	}
	if c.Temperature != 150 {
		t.Fatalf("steam temperature = %v, want 150", c.Temperature)
	}
}

func TestWaterDousesFire(t *testing.T) {
	w := newTestWorld(t, 16, 16, 0)
	w.SpawnParticle(element.Fire, 8, 8)
	w.SpawnParticle(element.Water, 9, 8)
	w.Step()
	if got := w.At(8, 8).Element; got != element.Smoke {
		t.Fatalf("doused fire = %s, want smoke", got)
	}
}

func TestFireIgnitesSawdust(t *testing.T) {
	w := newTestWorld(t, 16, 16, 0)
	w.SpawnParticle(element.Sawdust, 8, 14)
	w.SpawnParticle(element.Fire, 8, 13)

	lit := false
	for i := 0; i < 59 && !lit; i++ {
		w.Step()
		lit = w.At(8, 14).Burning()
	}
	if !lit {
		t.Fatal("sawdust under fire never caught")
	}
	c := w.At(8, 14)
	if c.Element != element.Sawdust {
		t.Fatalf("burning cell = %s, want sawdust", c.Element)
	}
	health := c.Health
	w.Step()
	if got := w.At(8, 14).Health; got != health-1 {
		t.Fatalf("burning sawdust health = %v, want %v", got, health-1)
	}
}

func TestBurningExplosiveFlashesToFire(t *testing.T) {
	w := newTestWorld(t, 16, 16, 0)
	w.SpawnParticle(element.Gunpowder, 8, 14)
	w.SpawnParticle(element.Gunpowder, 9, 14)
	w.At(8, 14).Attrs.Set(element.Ignites)

	w.Step()
	for _, x := range []int{8, 9} {
		if got := w.At(x, 14).Element; got != element.Fire {
			t.Fatalf("gunpowder at (%d,14) = %s, want fire", x, got)
		}
	}
}

func TestSpawnParticleKeepsTick(t *testing.T) {
	w := newTestWorld(t, 16, 16, 0)
	w.Step()
	w.Step()
	if !w.SpawnParticle(element.Sand, 5, 5) {
		t.Fatal("SpawnParticle rejected an interior cell")
	}
	c := w.At(5, 5)
	if c.Element != element.Sand || c.Tick != 2 {
		t.Fatalf("spawned cell = %s tick %d, want sand tick 2", c.Element, c.Tick)
	}
	if w.SpawnParticle(element.Sand, -1, 5) || w.SpawnParticle(element.Sand, 16, 0) {
		t.Fatal("SpawnParticle accepted an out of range coordinate")
	}
}

func TestPaintStaysInsideBorder(t *testing.T) {
	w := newTestWorld(t, 16, 16, 0)
	n := w.Paint(element.Water, 0, 0, 3)
	if n == 0 {
		t.Fatal("brush at the corner painted nothing")
	}
	for x := 0; x < 16; x++ {
		if got := w.At(x, 0).Element; got != element.Concrete {
			t.Fatalf("border (%d,0) = %s after painting", x, got)
		}
	}
	if got := w.Census().Of(element.Water); got != n {
		t.Fatalf("water cells = %d, Paint reported %d", got, n)
	}
}

func TestAtPanicsOutsideGrid(t *testing.T) {
	w := newTestWorld(t, 16, 16, 0)
	defer func() {
		if recover() == nil {
			t.Fatal("At(16, 0) did not panic")
		}
	}()
	w.At(16, 0)
}

func TestAllStopsEarly(t *testing.T) {
	w := newTestWorld(t, 16, 16, 0)
	n := 0
	for range w.All() {
		n++
		if n == 10 {
			break
		}
	}
	if n != 10 {
		t.Fatalf("iterated %d cells, want 10", n)
	}
	n = 0
	for range w.All() {
		n++
	}
	if n != 16*16 {
		t.Fatalf("second pass saw %d cells, want %d", n, 16*16)
	}
}

func TestAdvanceRunsWholeSteps(t *testing.T) {
	w := newTestWorld(t, 16, 16, 0)
	step := w.Config().TimeStep
	if got := w.Advance(3*step + step/2); got != 3 {
		t.Fatalf("Advance ran %d steps, want 3", got)
	}
	if got := w.Advance(step / 2); got != 1 {
		t.Fatalf("leftover time ran %d steps, want 1", got)
	}
	if w.Tick() != 4 {
		t.Fatalf("tick = %d, want 4", w.Tick())
	}
	if got := w.Advance(time.Hour); got != 8 {
		t.Fatalf("a long stall ran %d steps, want the cap of 8", got)
	}
}

func TestParallelMatchesCensusOfInline(t *testing.T) {
	build := func(workers int) Census {
		w := newTestWorld(t, 96, 64, workers)
		w.FillRect(element.Sand, image.Rect(10, 2, 80, 20))
		w.FillRect(element.Water, image.Rect(10, 30, 80, 40))
		for i := 0; i < 60; i++ {
			w.Step()
		}
		return w.Census()
	}
	if inline, parallel := build(0), build(4); inline != parallel {
		t.Fatalf("inline census %v differs from parallel %v", inline, parallel)
	}
}
