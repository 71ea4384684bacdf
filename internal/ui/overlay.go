//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"mad-sand/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type maskProvider interface {
	TemperatureMask(dst []float32, lo, hi float32) []float32
	BurningMask(dst []float32) []float32
	RoomTemp() float64
}

type chunkProvider interface {
	Chunks() []core.Chunk
}

const (
	heatSpan = 5
	coldest  = -100
	hottest  = 1000
)

// Overlay draws optional debugging visuals on top of the base simulation.
type Overlay struct {
	sim   core.Sim
	scale int

	showHeat    bool
	showBurning bool
	showChunks  bool

	maskImg *ebiten.Image
	maskBuf []byte
	hot     []float32
	cold    []float32

	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles overlay layers: T for heat, B for burning cells, G for the
// chunk grid.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		o.showHeat = !o.showHeat
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		o.showBurning = !o.showBurning
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		o.showChunks = !o.showChunks
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.sim.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}

	if provider, ok := o.sim.(maskProvider); ok && (o.showHeat || o.showBurning) {
		total := size.W * size.H
		if o.maskImg == nil || o.maskImg.Bounds().Dx() != size.W || o.maskImg.Bounds().Dy() != size.H {
			o.maskImg = ebiten.NewImage(size.W, size.H)
			o.maskBuf = make([]byte, 4*total)
		} else if len(o.maskBuf) != 4*total {
			o.maskBuf = make([]byte, 4*total)
		}

		if o.showHeat {
			room := float32(provider.RoomTemp())
			o.hot = provider.TemperatureMask(o.hot, room+heatSpan, hottest)
			o.drawMask(screen, o.hot, color.RGBA{R: 255, G: 90, B: 30, A: 0})
			o.cold = provider.TemperatureMask(o.cold, coldest, room-heatSpan)
			for i, v := range o.cold {
				o.cold[i] = 1 - v
			}
			o.drawMask(screen, o.cold, color.RGBA{R: 64, G: 164, B: 223, A: 0})
		}
		if o.showBurning {
			o.hot = provider.BurningMask(o.hot)
			o.drawMask(screen, o.hot, color.RGBA{R: 255, G: 220, B: 60, A: 0})
		}
	}

	if o.showChunks {
		if provider, ok := o.sim.(chunkProvider); ok {
			o.drawChunks(screen, provider.Chunks(), scale)
		}
	}
}

func (o *Overlay) drawChunks(screen *ebiten.Image, chunks []core.Chunk, scale int) {
	col := color.RGBA{R: 200, G: 200, B: 210, A: 90}
	s := float64(scale)
	for _, ch := range chunks {
		x0, y0 := float64(ch.BeginX)*s, float64(ch.BeginY)*s
		x1, y1 := float64(ch.EndX)*s, float64(ch.EndY)*s
		o.drawLine(screen, x0, y0, x1, y0, 1, col)
		o.drawLine(screen, x0, y0, x0, y1, 1, col)
	}
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawMask(screen *ebiten.Image, mask []float32, tint color.RGBA) {
	size := o.sim.Size()
	total := size.W * size.H
	if len(mask) != total {
		return
	}
	for i := 0; i < total; i++ {
		r, g, b, a := maskPixel(mask[i], tint)
		base := i * 4
		o.maskBuf[base+0] = r
		o.maskBuf[base+1] = g
		o.maskBuf[base+2] = b
		o.maskBuf[base+3] = a
	}
	o.maskImg.WritePixels(o.maskBuf)
	op := &ebiten.DrawImageOptions{}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(o.maskImg, op)
}
