package fluid

import (
	"errors"
	"image/color"
	"math"
)

// ErrPaletteTooShort is returned when a palette has fewer than two colors.
var ErrPaletteTooShort = errors.New("fluid: palette needs at least two colors")

// Palette is an ordered color ramp used to map ink density to color.
type Palette []color.RGBA

// DefaultPalette returns the two-entry black to white ramp.
func DefaultPalette() Palette {
	return Palette{
		{R: 0, G: 0, B: 0, A: 255},
		{R: 255, G: 255, B: 255, A: 255},
	}
}

// Sample maps value onto the ramp: value is scaled by len-1, the two
// surrounding entries are clamped to the ramp and linearly blended by the
// fractional part. Sample(0) and Sample(1) return the end colors exactly.
func (p Palette) Sample(value float32) color.RGBA {
	last := len(p) - 1
	if last < 0 {
		return color.RGBA{}
	}

	i := value * float32(last)
	bx := int(max(-1, min(float64(last), math.Floor(float64(i)))))
	px := bx + 1
	bx = min(max(bx, 0), last)
	px = min(max(px, 0), last)
	lx := i - float32(bx)

	n, q := p[bx], p[px]
	return color.RGBA{
		R: blendChannel(n.R, q.R, lx),
		G: blendChannel(n.G, q.G, lx),
		B: blendChannel(n.B, q.B, lx),
		A: blendChannel(n.A, q.A, lx),
	}
}

func blendChannel(a, b uint8, t float32) uint8 {
	v := float32(a)*(1-t) + float32(b)*t
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// Palette returns the active ramp.
func (g *Grid) Palette() Palette { return g.palette }

// SetPalette installs a new ramp. The slice is copied.
func (g *Grid) SetPalette(p Palette) error {
	if len(p) < 2 {
		return ErrPaletteTooShort
	}
	g.palette = append(Palette(nil), p...)
	return nil
}

// Colorize maps every ink cell through the palette into dst (row-major) and
// returns it, growing dst when it is too small.
func (g *Grid) Colorize(dst []color.RGBA) []color.RGBA {
	ink := g.ink.current()
	if cap(dst) < len(ink) {
		dst = make([]color.RGBA, len(ink))
	}
	dst = dst[:len(ink)]
	for i, val := range ink {
		dst[i] = g.palette.Sample(val)
	}
	return dst
}
