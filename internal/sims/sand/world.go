package sand

import (
	"fmt"
	"image"
	"iter"
	"time"

	"mad-sand/internal/core"
	"mad-sand/internal/element"
	pcore "mad-sand/pkg/core"
)

const (
	minTemperature = -1000
	maxTemperature = 1_000_000
)

// Scene lays out the starting contents of a freshly reset world. It runs
// after the world has been filled with air and walled in with concrete.
type Scene func(w *World, rng *pcore.Rand)

// Brush is the element and radius front ends paint with.
type Brush struct {
	Element element.Element
	Radius  int
}

type workerState struct {
	rng     *pcore.Rand
	updated uint64
	_       [48]byte
}

// World is a falling-sand grid updated chunk by chunk on a worker pool.
type World struct {
	cfg Config
	cat *element.Catalog

	w, h int

	cells    *core.Grid[element.Cell]
	prevTemp *core.Grid[float32]
	display  []uint8
	dirty    bool

	chunks   []core.Chunk
	patterns [core.PatternCount][]core.Chunk
	sched    *core.Scheduler
	workers  []workerState
	stepper  *core.FixedStep

	tick uint64

	heatRate    float32
	emberChance float64
	dt          float32

	sceneName string
	scene     Scene
	seed      int64
	brush     Brush
}

// NewWorld builds a world from cfg. The catalog is shared and never mutated.
// A nil catalog builds one at cfg.RoomTemp.
func NewWorld(cfg Config, cat *element.Catalog) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cat == nil {
		cat = element.NewCatalog(float32(cfg.RoomTemp))
	}
	// A cell can travel MaxMoves slots, respawn a neighbour as an ember and
	// wake that ember's neighbours, so a job writes up to MaxMoves+2 cells
	// past its chunk. Two chunks of one batch must not reach the same cell.
	reach := cat.MaxMoves() + 2
	if cfg.CellSize <= 2*reach {
		return nil, fmt.Errorf("%w: cell size %d must exceed %d", ErrInvalidConfig, cfg.CellSize, 2*reach)
	}

	workers := cfg.Workers
	if workers < 0 {
		workers = core.DefaultWorkers()
	}

	w := &World{
		cfg:       cfg,
		cat:       cat,
		w:         cfg.Width,
		h:         cfg.Height,
		cells:     core.NewGrid[element.Cell](cfg.Width, cfg.Height),
		prevTemp:  core.NewGrid[float32](cfg.Width, cfg.Height),
		display:   make([]uint8, cfg.Width*cfg.Height),
		chunks:    core.Partition(cfg.Width, cfg.Height, cfg.CellSize),
		stepper:   core.NewFixedStep(cfg.TimeStep),
		seed:      cfg.Seed,
		sceneName: "sand",
		brush:     Brush{Element: element.Sand, Radius: 4},
	}
	w.stepper.MaxSteps = 8
	w.patterns = core.Patterns(w.chunks)
	w.applyParams()
	w.sched = core.NewScheduler(workers, w.runChunk)
	w.workers = make([]workerState, w.sched.Workers())
	w.Reset(cfg.Seed)
	return w, nil
}

func (w *World) applyParams() {
	w.heatRate = float32(w.cfg.Params.HeatRate)
	w.emberChance = w.cfg.Params.EmberChance
	w.dt = float32(w.cfg.TimeStep.Seconds())
}

// Close stops the worker pool. The world must not be stepped afterwards.
func (w *World) Close() { w.sched.Close() }

// Name returns the simulation identifier.
func (w *World) Name() string { return w.sceneName }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.w, H: w.h} }

// Config returns the configuration the world is running with.
func (w *World) Config() Config { return w.cfg }

// RoomTemp reports the ambient temperature new cells start at.
func (w *World) RoomTemp() float64 { return w.cfg.RoomTemp }

// Catalog exposes the element baselines the world spawns from.
func (w *World) Catalog() *element.Catalog { return w.cat }

// Tick reports how many full update cycles have run since the last reset.
func (w *World) Tick() uint64 { return w.tick }

// Workers reports the size of the chunk worker pool.
func (w *World) Workers() int { return w.sched.Workers() }

// Chunks exposes the scheduling partition.
func (w *World) Chunks() []core.Chunk { return w.chunks }

// Updated reports how many cell updates have run since the last reset.
func (w *World) Updated() uint64 {
	var total uint64
	for i := range w.workers {
		total += w.workers[i].updated
	}
	return total
}

// SetScene installs the layout applied by Reset. It does not reset.
func (w *World) SetScene(name string, s Scene) {
	if name != "" {
		w.sceneName = name
	}
	w.scene = s
}

// Reset empties the world, rebuilds the concrete border and applies the
// scene. A zero seed reuses the configured one.
func (w *World) Reset(seed int64) {
	if seed == 0 {
		seed = w.cfg.Seed
	}
	w.seed = seed
	for i := range w.workers {
		w.workers[i] = workerState{rng: pcore.Derive(seed, i)}
	}
	w.tick = 0
	w.stepper = core.NewFixedStep(w.cfg.TimeStep)
	w.stepper.MaxSteps = 8

	air := w.cat.Make(element.Air)
	w.cells.Fill(air)
	w.prevTemp.Fill(air.Temperature)
	wall := w.cat.Make(element.Concrete)
	for x := 0; x < w.w; x++ {
		*w.cells.At(x, 0) = wall
		*w.cells.At(x, w.h-1) = wall
	}
	for y := 0; y < w.h; y++ {
		*w.cells.At(0, y) = wall
		*w.cells.At(w.w-1, y) = wall
	}
	if w.scene != nil {
		w.scene(w, pcore.Derive(seed, -1))
	}
	w.syncPrevTemp()
	w.dirty = true
}

func (w *World) syncPrevTemp() {
	cells := w.cells.Values()
	prev := w.prevTemp.Values()
	for i := range cells {
		prev[i] = cells[i].Temperature
	}
}

// Step runs exactly one full update cycle.
func (w *World) Step() {
	w.tick++
	w.sched.RunCycle(w.patterns)
	w.dirty = true
}

// Advance feeds real elapsed time into the fixed-step accumulator and runs
// one cycle per whole time step. It returns the number of cycles run.
func (w *World) Advance(delta time.Duration) int {
	return w.stepper.Advance(delta, w.Step)
}

// At returns the cell at (x, y). It panics outside the grid.
func (w *World) At(x, y int) *element.Cell { return w.cells.At(x, y) }

// InBounds reports whether (x, y) addresses a cell.
func (w *World) InBounds(x, y int) bool { return w.cells.InBounds(x, y) }

// All yields every cell in row-major order. The sequence may be ranged over
// any number of times but must not overlap a Step.
func (w *World) All() iter.Seq2[core.Coord, element.Cell] {
	return func(yield func(core.Coord, element.Cell) bool) {
		cells := w.cells.Values()
		for y := 0; y < w.h; y++ {
			row := y * w.w
			for x := 0; x < w.w; x++ {
				if !yield(core.Coord{X: x, Y: y}, cells[row+x]) {
					return
				}
			}
		}
	}
}

// SpawnParticle replaces the cell at (x, y) with a fresh e cell. It must be
// called between ticks. The slot keeps its tick stamp and its neighbours are
// woken. It reports false when (x, y) is outside the grid.
func (w *World) SpawnParticle(e element.Element, x, y int) bool {
	if !w.cells.InBounds(x, y) {
		return false
	}
	c := w.cells.At(x, y)
	*c = w.cat.Respawn(*c, e)
	*w.prevTemp.At(x, y) = c.Temperature
	w.wakeAround(x, y)
	w.dirty = true
	return true
}

// Paint spawns e over a disc of the given radius. The border is never
// painted over. It returns the number of cells written.
func (w *World) Paint(e element.Element, cx, cy, radius int) int {
	if radius < 0 {
		radius = 0
	}
	n := 0
	r2 := radius * radius
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy > r2 || !w.interior(x, y) {
				continue
			}
			if w.SpawnParticle(e, x, y) {
				n++
			}
		}
	}
	return n
}

// FillRect spawns e over r clipped to the interior of the border.
func (w *World) FillRect(e element.Element, r image.Rectangle) int {
	r = r.Intersect(image.Rect(1, 1, w.w-1, w.h-1))
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if w.SpawnParticle(e, x, y) {
				n++
			}
		}
	}
	return n
}

func (w *World) interior(x, y int) bool {
	return x > 0 && y > 0 && x < w.w-1 && y < w.h-1
}

// Brush returns the current painting brush.
func (w *World) Brush() Brush { return w.brush }

// SetBrush changes the painting brush.
func (w *World) SetBrush(b Brush) {
	if b.Radius < 0 {
		b.Radius = 0
	}
	if !b.Element.Valid() {
		b.Element = element.Air
	}
	w.brush = b
}

// Census counts cells per element.
type Census [element.Count]int

// Of returns the count for e.
func (c Census) Of(e element.Element) int {
	if !e.Valid() {
		return 0
	}
	return c[e]
}

// Total sums every element count.
func (c Census) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// Census counts the cells of each element currently in the grid.
func (w *World) Census() Census {
	var c Census
	for _, cell := range w.cells.Values() {
		if cell.Element.Valid() {
			c[cell.Element]++
		}
	}
	return c
}

// Burning counts the cells currently on fire.
func (w *World) Burning() int {
	n := 0
	for _, cell := range w.cells.Values() {
		if cell.Burning() {
			n++
		}
	}
	return n
}
