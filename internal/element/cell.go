package element

// Cell is the record stored at every grid coordinate.
type Cell struct {
	Element Element
	State   MatterState
	Attrs   Attrs

	Movable bool
	Asleep  bool

	Density      float32
	Mass         float32
	Impulse      float32
	Health       float32
	Temperature  float32
	Conductivity float32

	// Tick is the last simulation tick that processed this cell.
	Tick uint64
}

// Burning reports whether the cell is on fire.
func (c *Cell) Burning() bool { return c.Attrs.Has(Ignites) }
