package element

import "strings"

// Attr is a single behaviour flag. Flags are independent of the element so a
// cell can catch fire without changing what it is made of.
type Attr uint8

const (
	// Ignites marks a cell that is currently burning.
	Ignites Attr = 1 << iota
	// Flammable cells catch fire from a burning neighbour.
	Flammable
	// Explosive cells flash into fire as soon as they burn.
	Explosive
	// Douses marks wet cells that put out burning neighbours.
	Douses
)

var attrNames = []struct {
	flag Attr
	name string
}{
	{Ignites, "ignites"},
	{Flammable, "flammable"},
	{Explosive, "explosive"},
	{Douses, "douses"},
}

// Attrs is a set of Attr flags. The zero value is the inert set.
type Attrs uint8

// NewAttrs returns a set holding the given flags.
func NewAttrs(flags ...Attr) Attrs {
	var a Attrs
	for _, f := range flags {
		a.Set(f)
	}
	return a
}

// Has reports whether flag is in the set.
func (a Attrs) Has(flag Attr) bool { return Attrs(flag)&a == Attrs(flag) }

// Set adds flag to the set.
func (a *Attrs) Set(flag Attr) { *a |= Attrs(flag) }

// Clear removes flag from the set.
func (a *Attrs) Clear(flag Attr) { *a &^= Attrs(flag) }

// Inert reports whether no flags are set.
func (a Attrs) Inert() bool { return a == 0 }

func (a Attrs) String() string {
	if a.Inert() {
		return "inert"
	}
	var parts []string
	for _, an := range attrNames {
		if a.Has(an.flag) {
			parts = append(parts, an.name)
		}
	}
	return strings.Join(parts, "|")
}
