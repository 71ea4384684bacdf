// Package scenes registers the starting layouts of the sand world. Each scene
// is also registered as a simulation so front ends can select it by name.
package scenes

import (
	"image"
	"sort"

	"mad-sand/internal/core"
	"mad-sand/internal/element"
	"mad-sand/internal/sims/sand"
	pcore "mad-sand/pkg/core"
)

var registry = map[string]sand.Scene{}

// Register adds a scene and exposes it through the simulation registry.
func Register(name string, s sand.Scene) {
	if name == "" || s == nil {
		return
	}
	registry[name] = s
	core.Register(name, func(cfg map[string]string) (core.Sim, error) {
		return sand.New(cfg, name, s)
	})
}

// Lookup returns the scene registered under name.
func Lookup(name string) (sand.Scene, bool) {
	s, ok := registry[name]
	return s, ok
}

// Names lists the registered scenes in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register("sandbox", Sandbox)
	Register("hourglass", Hourglass)
	Register("bonfire", Bonfire)
	Register("glacier", Glacier)
	Register("refinery", Refinery)
}

// Sandbox leaves the walled box empty.
func Sandbox(*sand.World, *pcore.Rand) {}

// Hourglass pours a heap of sand through a concrete funnel.
func Hourglass(w *sand.World, rng *pcore.Rand) {
	s := w.Size()
	cx := s.W / 2
	neck := s.H / 2
	half := min(s.W/3, neck-2)
	for i := 0; i <= half; i++ {
		y := neck - i
		for t := 0; t < 2; t++ {
			w.SpawnParticle(element.Concrete, cx-2-i-t, y)
			w.SpawnParticle(element.Concrete, cx+2+i+t, y)
		}
	}
	top := neck - half
	for y := top + 1; y < neck-1; y++ {
		spread := y - top - 1
		for x := cx - spread; x <= cx+spread; x++ {
			if rng.Chance(0.9) {
				w.SpawnParticle(element.Sand, x, y)
			}
		}
	}
}

// Bonfire stacks sawdust over a fire with a pool of oil and a water tank
// beside it.
func Bonfire(w *sand.World, rng *pcore.Rand) {
	s := w.Size()
	floor := s.H - 1
	pile := s.W / 4
	cx := s.W / 2
	for x := cx - pile; x <= cx+pile; x++ {
		height := pile - abs(x-cx)/2
		for y := floor - height/2; y < floor; y++ {
			if rng.Chance(0.85) {
				w.SpawnParticle(element.Sawdust, x, y)
			}
		}
	}
	w.FillRect(element.Oil, image.Rect(cx-pile-s.W/8, floor-3, cx-pile, floor))
	w.FillRect(element.Concrete, image.Rect(s.W-s.W/6-1, floor-s.H/3, s.W-s.W/6, floor))
	w.FillRect(element.Water, image.Rect(s.W-s.W/6, floor-s.H/3+2, s.W-1, floor))
	w.Paint(element.Fire, cx, floor-1, 2)
}

// Glacier drops snow onto an ice shelf above a hot metal plate.
func Glacier(w *sand.World, rng *pcore.Rand) {
	s := w.Size()
	shelf := s.H / 2
	w.FillRect(element.Ice, image.Rect(s.W/6, shelf, s.W-s.W/6, shelf+s.H/10))
	for y := 1; y < shelf/2; y++ {
		for x := 1; x < s.W-1; x++ {
			if rng.Chance(0.15) {
				w.SpawnParticle(element.Snow, x, y)
			}
		}
	}
	plate := image.Rect(s.W/4, s.H-4, s.W-s.W/4, s.H-3)
	w.FillRect(element.Metal, plate)
	for x := plate.Min.X; x < plate.Max.X; x++ {
		w.At(x, plate.Min.Y).Temperature = 900
	}
}

// Refinery layers water, oil and gasoline in a tank with a gunpowder fuse
// running to a fire.
func Refinery(w *sand.World, rng *pcore.Rand) {
	s := w.Size()
	floor := s.H - 1
	tank := image.Rect(s.W/8, floor-s.H/2, s.W/2, floor)
	w.FillRect(element.Concrete, image.Rect(tank.Min.X-1, tank.Min.Y, tank.Min.X, floor))
	w.FillRect(element.Concrete, image.Rect(tank.Max.X, tank.Min.Y, tank.Max.X+1, floor))
	layer := tank.Dy() / 4
	w.FillRect(element.Gasoline, image.Rect(tank.Min.X, tank.Min.Y+layer, tank.Max.X, tank.Min.Y+2*layer))
	w.FillRect(element.Water, image.Rect(tank.Min.X, tank.Min.Y+2*layer, tank.Max.X, tank.Min.Y+3*layer))
	w.FillRect(element.Oil, image.Rect(tank.Min.X, tank.Min.Y+3*layer, tank.Max.X, tank.Max.Y))

	fuseY := floor - 1
	for x := tank.Max.X + 2; x < s.W-s.W/8; x++ {
		if rng.Chance(0.95) {
			w.SpawnParticle(element.Gunpowder, x, fuseY)
		}
	}
	w.SpawnParticle(element.Fire, s.W-s.W/8, fuseY)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
