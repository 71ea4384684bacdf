package render

import "image/color"

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// fillMaskRGBA tints each pixel with col scaled by the mask value in [0,1].
// Zero mask values leave the pixel fully transparent.
func fillMaskRGBA(buf []byte, mask []float32, col color.RGBA) {
	for i, v := range mask {
		base := i * 4
		if v <= 0 {
			buf[base+0], buf[base+1], buf[base+2], buf[base+3] = 0, 0, 0, 0
			continue
		}
		if v > 1 {
			v = 1
		}
		buf[base+0] = uint8(float32(col.R)*v + 0.5)
		buf[base+1] = uint8(float32(col.G)*v + 0.5)
		buf[base+2] = uint8(float32(col.B)*v + 0.5)
		buf[base+3] = uint8(float32(col.A)*v + 0.5)
	}
}
