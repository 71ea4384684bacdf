package element

import "math"

// Catalog is an immutable table of baseline cells indexed by Element.
// Build one with NewCatalog and share it; it is safe for concurrent reads.
type Catalog struct {
	roomTemp float32
	cells    [Count]Cell
	maxMass  float32
}

// NewCatalog builds the baseline table. Elements without an intrinsic
// temperature start at roomTemp.
func NewCatalog(roomTemp float32) *Catalog {
	c := &Catalog{roomTemp: roomTemp}
	def := func(e Element, movable bool, state MatterState, health, density, mass, conductivity float32, attrs Attrs) {
		c.cells[e] = Cell{
			Element:      e,
			State:        state,
			Attrs:        attrs,
			Movable:      movable,
			Density:      density,
			Mass:         mass,
			Health:       health,
			Temperature:  roomTemp,
			Conductivity: conductivity,
		}
	}

	def(Air, true, Gas, 1, 1.225, 0, 0.0262, 0)
	def(Sand, true, Solid, 10, 1442, 2, 0.25, 0)
	def(Sawdust, true, Solid, 65, 210, 0.9, 0.08, NewAttrs(Flammable))
	def(Concrete, false, Solid, 1000, 1000, 0, 1.8, 0)
	def(Fire, false, Gas, 60, -1, 2, 1, NewAttrs(Ignites))
	def(Smoke, true, Gas, 60, 1.18, 2.5, 0.0146, 0)
	def(Water, true, Liquid, 500, 997, 5, 0.609, NewAttrs(Douses))
	def(Snow, true, Solid, 500, 150, 1, 0.4, NewAttrs(Douses))
	def(Ice, false, Solid, 500, 917, 0, 0.3045, NewAttrs(Douses))
	def(Steam, true, Gas, 500, 0.6, 5, 0.45675, NewAttrs(Douses))
	def(Oil, true, Liquid, 300, 900, 6, 0.145, NewAttrs(Flammable))
	def(Gunpowder, true, Solid, 35, 400, 1.5, 0.18, NewAttrs(Flammable, Explosive))
	def(Gasoline, true, Liquid, 100, 780, 0.8, 0.15, NewAttrs(Flammable, Explosive))
	def(Metal, false, Solid, 150, 1000, 0, 25, 0)

	c.cells[Fire].Temperature = 1000
	c.cells[Smoke].Temperature = 100
	c.cells[Snow].Temperature = -100
	c.cells[Ice].Temperature = -100
	c.cells[Steam].Temperature = 150

	for _, cell := range c.cells {
		if cell.Mass > c.maxMass {
			c.maxMass = cell.Mass
		}
	}
	return c
}

// RoomTemp reports the ambient temperature the catalog was built with.
func (c *Catalog) RoomTemp() float32 { return c.roomTemp }

// Make returns a fresh cell of element e.
func (c *Catalog) Make(e Element) Cell {
	if !e.Valid() {
		e = Air
	}
	return c.cells[e]
}

// Respawn replaces old with a fresh e cell that keeps old's tick stamp, so a
// cell rebuilt mid-tick is not processed twice.
func (c *Catalog) Respawn(old Cell, e Element) Cell {
	n := c.Make(e)
	n.Tick = old.Tick
	return n
}

// Convert is Respawn for phase changes: the temperature carries over so the
// transition is thermally continuous.
func (c *Catalog) Convert(old Cell, e Element) Cell {
	n := c.Respawn(old, e)
	n.Temperature = old.Temperature
	return n
}

// MaxMass reports the largest baseline mass in the table.
func (c *Catalog) MaxMass() float32 { return c.maxMass }

// MaxMoves is the most single-cell steps any element can take in one update.
func (c *Catalog) MaxMoves() int {
	return int(math.Ceil(float64(c.maxMass)))
}
