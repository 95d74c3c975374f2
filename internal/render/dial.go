// Package render computes the geometry of the circular countdown dial as a
// list of drawing primitives, independent of any GUI toolkit.
package render

import (
	"image/color"
	"math"
)

// Margin is the gap kept between the dial and the edge of its drawing area.
const Margin = 10

// StartAngle is the top of the dial in screen coordinates (y grows downward).
const StartAngle = -math.Pi / 2

// Kind identifies a primitive shape.
type Kind int

const (
	KindDisc Kind = iota
	KindSector
	KindRing
)

func (kind Kind) String() string {
	switch kind {
	case KindDisc:
		return "disc"
	case KindSector:
		return "sector"
	case KindRing:
		return "ring"
	default:
		return "unknown"
	}
}

// Color is a non-premultiplied RGBA color with components in [0,1].
type Color struct {
	R, G, B, A float64
}

// NRGBA converts the color for image/color consumers.
func (value Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: channel(value.R),
		G: channel(value.G),
		B: channel(value.B),
		A: channel(value.A),
	}
}

// Palette holds the colors used for a dial.
type Palette struct {
	Background Color
	Progress   Color
	Border     Color
}

// DefaultPalette is the normal dial appearance.
var DefaultPalette = Palette{
	Background: Color{R: 0.9, G: 0.9, B: 0.9, A: 0.1},
	Progress:   Color{R: 0.6, G: 0.5, B: 0.2, A: 0.5},
	Border:     Color{R: 0, G: 0, B: 0, A: 0.1},
}

// AlertPalette is used while the dial flashes after expiry.
var AlertPalette = Palette{
	Background: Color{R: 0.91, G: 0.75, B: 0.26, A: 0.6},
	Progress:   Color{R: 0.6, G: 0.5, B: 0.2, A: 0.5},
	Border:     Color{R: 0.6, G: 0.5, B: 0.2, A: 0.8},
}

// Primitive is a single filled or stroked shape centered on the dial center.
type Primitive struct {
	Kind   Kind
	Radius float64
	// Start and Sweep are only used by sectors; Sweep is clockwise on screen.
	Start     float64
	Sweep     float64
	LineWidth float64
	Color     Color
}

// Render returns the dial primitives in paint order for a progress fraction
// and radius. Progress is clamped to [0,1].
func Render(progress, radius float64) []Primitive {
	return RenderWithPalette(progress, radius, DefaultPalette)
}

// RenderWithPalette is Render with custom colors.
func RenderWithPalette(progress, radius float64, palette Palette) []Primitive {
	progress = clamp(progress, 0, 1)
	if radius < 0 {
		radius = 0
	}

	primitives := []Primitive{{
		Kind:   KindDisc,
		Radius: radius,
		Color:  palette.Background,
	}}
	if progress > 0 {
		primitives = append(primitives, Primitive{
			Kind:   KindSector,
			Radius: radius,
			Start:  StartAngle,
			Sweep:  progress * 2 * math.Pi,
			Color:  palette.Progress,
		})
	}
	primitives = append(primitives, Primitive{
		Kind:      KindRing,
		Radius:    radius,
		LineWidth: 1,
		Color:     palette.Border,
	})
	return primitives
}

// Layout returns the dial center and radius for a drawing area.
func Layout(width, height int) (centerX, centerY, radius float64) {
	side := width
	if height < side {
		side = height
	}
	radius = float64(side/2 - Margin)
	if radius < 0 {
		radius = 0
	}
	return float64(width / 2), float64(height / 2), radius
}

// Covers reports whether the point (dx, dy), relative to the dial center,
// lies inside the primitive.
func (primitive Primitive) Covers(dx, dy float64) bool {
	distance := math.Hypot(dx, dy)
	switch primitive.Kind {
	case KindDisc:
		return distance <= primitive.Radius
	case KindSector:
		if distance > primitive.Radius || primitive.Sweep <= 0 {
			return false
		}
		if primitive.Sweep >= 2*math.Pi || distance == 0 {
			return true
		}
		offset := math.Mod(math.Atan2(dy, dx)-primitive.Start, 2*math.Pi)
		if offset < 0 {
			offset += 2 * math.Pi
		}
		return offset <= primitive.Sweep
	case KindRing:
		return math.Abs(distance-primitive.Radius) <= primitive.LineWidth/2
	default:
		return false
	}
}

// Shade composites every primitive covering (dx, dy) over a transparent
// background using source-over blending.
func Shade(primitives []Primitive, dx, dy float64) Color {
	var out Color
	for _, primitive := range primitives {
		if !primitive.Covers(dx, dy) {
			continue
		}
		out = over(primitive.Color, out)
	}
	return out
}

// Top returns the last primitive in paint order covering (dx, dy).
func Top(primitives []Primitive, dx, dy float64) (Primitive, bool) {
	for i := len(primitives) - 1; i >= 0; i-- {
		if primitives[i].Covers(dx, dy) {
			return primitives[i], true
		}
	}
	return Primitive{}, false
}

func over(src, dst Color) Color {
	alpha := src.A + dst.A*(1-src.A)
	if alpha <= 0 {
		return Color{}
	}
	blend := func(s, d float64) float64 {
		return (s*src.A + d*dst.A*(1-src.A)) / alpha
	}
	return Color{
		R: blend(src.R, dst.R),
		G: blend(src.G, dst.G),
		B: blend(src.B, dst.B),
		A: alpha,
	}
}

func channel(value float64) uint8 {
	return uint8(math.Round(clamp(value, 0, 1) * 255))
}

func clamp(value, low, high float64) float64 {
	if math.IsNaN(value) || value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
