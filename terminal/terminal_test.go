package terminal

import (
	"image/color"
	"testing"

	"github.com/nsf/termbox-go"
)

func TestColor256(t *testing.T) {
	tests := []struct {
		name string
		c    color.RGBA
		want termbox.Attribute
	}{
		{"black", color.RGBA{0, 0, 0, 255}, 17},
		{"white", color.RGBA{255, 255, 255, 255}, 16 + 215 + 1},
		{"red", color.RGBA{255, 0, 0, 255}, 16 + 180 + 1},
		{"mid blue", color.RGBA{0, 0, 128, 255}, 16 + 3 + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Color256(tt.c); got != tt.want {
				t.Errorf("Color256(%v) = %d, want %d", tt.c, got, tt.want)
			}
		})
	}
}

func TestRasterizeGlyphRamp(t *testing.T) {
	// 2x1 grid, empty left and saturated right
	ink := []float32{0, 1}
	pixels := []color.RGBA{{0, 0, 0, 255}, {255, 255, 255, 255}}
	cells := make([]termbox.Cell, 4*2)

	Rasterize(ink, pixels, 2, 1, 4, 2, cells)

	ramp := []rune(Ramp)
	for cy := 0; cy < 2; cy++ {
		for cx := 0; cx < 4; cx++ {
			c := cells[cx+cy*4]
			want := ramp[0]
			if cx >= 2 {
				want = ramp[len(ramp)-1]
			}
			if c.Ch != want {
				t.Errorf("cell (%d,%d) = %q, want %q", cx, cy, c.Ch, want)
			}
		}
	}
	if cells[3].Fg != Color256(pixels[1]) {
		t.Errorf("fg = %d, want palette color", cells[3].Fg)
	}
}

func TestRasterizeClampsInk(t *testing.T) {
	ink := []float32{-0.5, 2}
	pixels := make([]color.RGBA, 2)
	cells := make([]termbox.Cell, 2)

	Rasterize(ink, pixels, 2, 1, 2, 1, cells)

	ramp := []rune(Ramp)
	if cells[0].Ch != ramp[0] || cells[1].Ch != ramp[len(ramp)-1] {
		t.Errorf("glyphs = %q %q", cells[0].Ch, cells[1].Ch)
	}
}

func TestRasterizeEmptyViewport(t *testing.T) {
	// Must not panic with a zero-size terminal.
	Rasterize([]float32{1}, []color.RGBA{{}}, 1, 1, 0, 0, nil)
}
