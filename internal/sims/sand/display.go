package sand

import (
	"image/color"

	"mad-sand/internal/element"
)

const (
	displayElementMask = 0x0f
	displayBurningBit  = 0x10
)

var (
	sandPalette = buildSandPalette()

	background = color.NRGBA{R: 12, G: 12, B: 16, A: 255}
	flame      = color.NRGBA{R: 255, G: 130, B: 40, A: 255}
)

// elementColors holds the straight-alpha colour of each element.
var elementColors = [element.Count]color.NRGBA{
	element.Air:       {A: 0},
	element.Sand:      {R: 191, G: 153, B: 102, A: 255},
	element.Sawdust:   {R: 230, G: 191, B: 166, A: 255},
	element.Concrete:  {R: 102, G: 102, B: 102, A: 255},
	element.Fire:      {R: 255, G: 51, B: 26, A: 255},
	element.Smoke:     {R: 191, G: 191, B: 191, A: 191},
	element.Water:     {R: 26, G: 51, B: 255, A: 255},
	element.Snow:      {R: 230, G: 230, B: 230, A: 255},
	element.Ice:       {R: 51, G: 204, B: 255, A: 255},
	element.Steam:     {R: 153, G: 204, B: 255, A: 204},
	element.Oil:       {R: 26, G: 64, B: 13, A: 255},
	element.Gunpowder: {R: 70, G: 70, B: 74, A: 255},
	element.Gasoline:  {R: 191, G: 191, B: 51, A: 255},
	element.Metal:     {R: 102, G: 51, B: 153, A: 255},
}

// Palette exposes the color palette used for rendering the sand world.
func (w *World) Palette() []color.RGBA {
	return sandPalette
}

// Color returns the opaque display colour of an element.
func Color(e element.Element) color.RGBA {
	return sandPalette[encodeDisplayValue(e, false)]
}

func buildSandPalette() []color.RGBA {
	palette := make([]color.RGBA, 32)
	for i := range palette {
		e := element.Element(i & displayElementMask)
		burning := i&displayBurningBit != 0
		palette[i] = toRGBA(paletteColorFor(e, burning))
	}
	return palette
}

func toRGBA(c color.NRGBA) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func paletteColorFor(e element.Element, burning bool) color.NRGBA {
	if !e.Valid() {
		return background
	}
	base := elementColors[e]
	c := blendColors(background, color.NRGBA{R: base.R, G: base.G, B: base.B, A: 255}, float64(base.A)/255)
	if burning && e != element.Fire {
		c = blendColors(c, flame, 0.6)
	}
	return c
}

func blendColors(base, overlay color.NRGBA, overlayWeight float64) color.NRGBA {
	if overlayWeight <= 0 {
		return base
	}
	if overlayWeight >= 1 {
		return overlay
	}
	w := overlayWeight
	inv := 1 - w
	return color.NRGBA{
		R: uint8(float64(base.R)*inv + float64(overlay.R)*w + 0.5),
		G: uint8(float64(base.G)*inv + float64(overlay.G)*w + 0.5),
		B: uint8(float64(base.B)*inv + float64(overlay.B)*w + 0.5),
		A: uint8(float64(base.A)*inv + float64(overlay.A)*w + 0.5),
	}
}

func encodeDisplayValue(e element.Element, burning bool) uint8 {
	value := uint8(e) & displayElementMask
	if burning {
		value |= displayBurningBit
	}
	return value
}

// DecodeDisplayValue splits a Cells value back into element and burning flag.
func DecodeDisplayValue(v uint8) (element.Element, bool) {
	return element.Element(v & displayElementMask), v&displayBurningBit != 0
}

// Cells exposes the display buffer, rebuilt if the grid changed since the
// last call.
func (w *World) Cells() []uint8 {
	if w.dirty {
		w.rebuildDisplay()
	}
	return w.display
}

func (w *World) rebuildDisplay() {
	for i, c := range w.cells.Values() {
		w.display[i] = encodeDisplayValue(c.Element, c.Burning())
	}
	w.dirty = false
}

// TemperatureMask maps every cell's temperature to [0,1] against the range
// [lo, hi]. dst is reused when it is large enough.
func (w *World) TemperatureMask(dst []float32, lo, hi float32) []float32 {
	cells := w.cells.Values()
	if cap(dst) < len(cells) {
		dst = make([]float32, len(cells))
	}
	dst = dst[:len(cells)]
	span := hi - lo
	if span <= 0 {
		span = 1
	}
	for i, c := range cells {
		v := (c.Temperature - lo) / span
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		dst[i] = v
	}
	return dst
}

// BurningMask marks burning cells with 1 and everything else with 0.
func (w *World) BurningMask(dst []float32) []float32 {
	cells := w.cells.Values()
	if cap(dst) < len(cells) {
		dst = make([]float32, len(cells))
	}
	dst = dst[:len(cells)]
	for i, c := range cells {
		if c.Burning() {
			dst[i] = 1
		} else {
			dst[i] = 0
		}
	}
	return dst
}
