package dial

import (
	"image/color"
	"sync"

	"timekeeper/internal/render"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

type frameKey struct {
	width, height int
	progress      float64
	lit           bool
}

// Dial rasterizes render.Render output onto a Fyne canvas.
type Dial struct {
	raster *canvas.Raster

	mu         sync.Mutex
	progress   float64
	lit        bool
	key        frameKey
	primitives []render.Primitive
	centerX    float64
	centerY    float64
}

// New creates a dial with the given minimum size.
func New(size fyne.Size) *Dial {
	dial := &Dial{}
	dial.raster = canvas.NewRasterWithPixels(dial.Pixel)
	dial.raster.SetMinSize(size)
	return dial
}

// Object returns the canvas object to place in a layout.
func (dial *Dial) Object() fyne.CanvasObject {
	return dial.raster
}

// Progress returns the fraction currently drawn.
func (dial *Dial) Progress() float64 {
	dial.mu.Lock()
	defer dial.mu.Unlock()
	return dial.progress
}

// SetProgress sets the filled fraction and redraws. Call on the UI thread.
func (dial *Dial) SetProgress(progress float64) {
	dial.mu.Lock()
	dial.progress = progress
	dial.mu.Unlock()
	dial.raster.Refresh()
}

// SetLit switches to the alert palette. Call on the UI thread.
func (dial *Dial) SetLit(lit bool) {
	dial.mu.Lock()
	dial.lit = lit
	dial.mu.Unlock()
	dial.raster.Refresh()
}

// Pixel returns the color of pixel (x, y) in a width×height frame.
func (dial *Dial) Pixel(x, y, width, height int) color.Color {
	dial.mu.Lock()
	key := frameKey{width: width, height: height, progress: dial.progress, lit: dial.lit}
	if key != dial.key || dial.primitives == nil {
		palette := render.DefaultPalette
		if key.lit {
			palette = render.AlertPalette
		}
		centerX, centerY, radius := render.Layout(width, height)
		dial.primitives = render.RenderWithPalette(key.progress, radius, palette)
		dial.centerX, dial.centerY = centerX, centerY
		dial.key = key
	}
	primitives, centerX, centerY := dial.primitives, dial.centerX, dial.centerY
	dial.mu.Unlock()

	shade := render.Shade(primitives, float64(x)+0.5-centerX, float64(y)+0.5-centerY)
	return shade.NRGBA()
}
