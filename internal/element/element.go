// Package element defines the cell record of the falling-sand world and the
// catalog of per-element baseline values.
package element

import (
	"errors"
	"fmt"
	"strings"
)

// Element enumerates the substances a cell can hold.
type Element uint8

const (
	Air Element = iota
	Sand
	Sawdust
	Concrete
	Fire
	Smoke
	Water
	Snow
	Ice
	Steam
	Oil
	Gunpowder
	Gasoline
	Metal
)

// Count is the number of defined elements.
const Count = int(Metal) + 1

var names = [Count]string{
	Air:       "air",
	Sand:      "sand",
	Sawdust:   "sawdust",
	Concrete:  "concrete",
	Fire:      "fire",
	Smoke:     "smoke",
	Water:     "water",
	Snow:      "snow",
	Ice:       "ice",
	Steam:     "steam",
	Oil:       "oil",
	Gunpowder: "gunpowder",
	Gasoline:  "gasoline",
	Metal:     "metal",
}

// ErrUnknownElement is returned by Parse for names that match no element.
var ErrUnknownElement = errors.New("unknown element")

func (e Element) String() string {
	if int(e) < Count {
		return names[e]
	}
	return fmt.Sprintf("element(%d)", uint8(e))
}

// Valid reports whether e is one of the defined elements.
func (e Element) Valid() bool { return int(e) < Count }

// All returns every element in identifier order.
func All() []Element {
	out := make([]Element, Count)
	for i := range out {
		out[i] = Element(i)
	}
	return out
}

// Names returns the element names in identifier order.
func Names() []string {
	return append([]string(nil), names[:]...)
}

// Parse maps a case-insensitive element name back to its Element.
func Parse(name string) (Element, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range names {
		if n == key {
			return Element(i), nil
		}
	}
	return Air, fmt.Errorf("%w: %q", ErrUnknownElement, name)
}

// MatterState selects the movement rule applied to a cell.
type MatterState uint8

const (
	Solid MatterState = iota
	Liquid
	Gas
)

func (s MatterState) String() string {
	switch s {
	case Solid:
		return "solid"
	case Liquid:
		return "liquid"
	case Gas:
		return "gas"
	default:
		return "unknown"
	}
}
