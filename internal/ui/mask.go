package ui

import (
	"image/color"
	"math"
)

// maskPixel converts a mask intensity into a premultiplied tinted pixel.
// Zero intensity yields a fully transparent pixel.
func maskPixel(v float32, tint color.RGBA) (r, g, b, a uint8) {
	const (
		overlayAlpha  = 140.0
		glowBase      = 0.35
		glowRange     = 0.65
		intensityBias = 0.75
	)
	intensity := clamp01(float64(v))
	if intensity == 0 {
		return 0, 0, 0, 0
	}
	alpha := math.Round(overlayAlpha * math.Pow(intensity, intensityBias))
	glow := glowBase + glowRange*math.Sqrt(intensity)
	premul := alpha / 255
	return scaleColorComponent(tint.R, glow*premul),
		scaleColorComponent(tint.G, glow*premul),
		scaleColorComponent(tint.B, glow*premul),
		uint8(alpha)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func scaleColorComponent(value uint8, factor float64) uint8 {
	scaled := math.Round(float64(value) * factor)
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}
