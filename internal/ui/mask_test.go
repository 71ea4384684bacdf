package ui

import (
	"image/color"
	"testing"
)

func TestMaskPixel(t *testing.T) {
	tint := color.RGBA{R: 255, G: 90, B: 30}
	if r, g, b, a := maskPixel(0, tint); r|g|b|a != 0 {
		t.Fatalf("zero intensity gave %d,%d,%d,%d", r, g, b, a)
	}
	_, _, _, lowA := maskPixel(0.2, tint)
	r, g, b, a := maskPixel(1, tint)
	if a != 140 {
		t.Fatalf("full intensity alpha = %d, want 140", a)
	}
	if lowA >= a {
		t.Fatalf("alpha not increasing: %d then %d", lowA, a)
	}
	if r > a || g > a || b > a {
		t.Fatalf("pixel %d,%d,%d,%d is not premultiplied", r, g, b, a)
	}
	if _, _, _, over := maskPixel(3, tint); over != a {
		t.Fatalf("intensity above 1 not clamped: alpha %d", over)
	}
}
