// Package palette builds ink color ramps from images, hex lists and a few
// built-in presets.
package palette

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/mazznoer/colorgrad"

	"github.com/pthm-cable/fluidgrid/config"
	"github.com/pthm-cable/fluidgrid/fluid"
)

// ErrUnknownName is returned by Named for a preset that does not exist.
var ErrUnknownName = errors.New("palette: unknown name")

var presets = map[string][]string{
	"mono":  {"#000000", "#ffffff"},
	"fire":  {"#000000", "#3b0a02", "#8f1d04", "#e2520b", "#ffb02e", "#fff3c4"},
	"ocean": {"#02040f", "#06224a", "#0b5c8c", "#3ca7c9", "#b8f1ff"},
}

// Scientific colormaps, sampled into GradientSize stops.
var gradients = map[string]func() colorgrad.Gradient{
	"inferno": colorgrad.Inferno,
	"magma":   colorgrad.Magma,
	"turbo":   colorgrad.Turbo,
	"viridis": colorgrad.Viridis,
}

// GradientSize is the number of stops taken from a colormap preset.
const GradientSize = 256

// Names lists the built-in presets in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(presets)+len(gradients))
	for n := range presets {
		names = append(names, n)
	}
	for n := range gradients {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Named returns a built-in preset.
func Named(name string) (fluid.Palette, error) {
	name = strings.ToLower(name)
	if hex, ok := presets[name]; ok {
		return ParseHex(hex)
	}
	if grad, ok := gradients[name]; ok {
		return FromGradient(grad(), GradientSize), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownName, name)
}

// FromGradient samples n evenly spaced colors from a gradient.
func FromGradient(grad colorgrad.Gradient, n int) fluid.Palette {
	n = max(n, 2)
	p := make(fluid.Palette, 0, n)
	for _, c := range grad.Colors(uint(n)) {
		p = append(p, color.RGBAModel.Convert(c).(color.RGBA))
	}
	return p
}

// Load reads an image and uses its top row, left to right, as the ramp.
func Load(path string) (fluid.Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening palette image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding palette image %s: %w", path, err)
	}
	return FromImage(img)
}

// FromImage extracts the top row of img.
func FromImage(img image.Image) (fluid.Palette, error) {
	b := img.Bounds()
	p := make(fluid.Palette, 0, b.Dx())
	for x := b.Min.X; x < b.Max.X; x++ {
		p = append(p, color.RGBAModel.Convert(img.At(x, b.Min.Y)).(color.RGBA))
	}
	if len(p) < 2 {
		return nil, fmt.Errorf("palette image is %d pixels wide: %w", len(p), fluid.ErrPaletteTooShort)
	}
	return p, nil
}

// ParseHex parses "#rgb", "#rrggbb" or "#rrggbbaa" strings. The leading '#' is
// optional.
func ParseHex(colors []string) (fluid.Palette, error) {
	p := make(fluid.Palette, 0, len(colors))
	for _, s := range colors {
		c, err := parseHexColor(s)
		if err != nil {
			return nil, err
		}
		p = append(p, c)
	}
	if len(p) < 2 {
		return nil, fluid.ErrPaletteTooShort
	}
	return p, nil
}

func parseHexColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return color.RGBA{}, fmt.Errorf("palette: bad color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("palette: bad color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// FromConfig resolves the configured ramp: image path first, then preset
// name, then the hex list. An empty config yields the default ramp.
func FromConfig(cfg config.PaletteConfig) (fluid.Palette, error) {
	switch {
	case cfg.Path != "":
		return Load(cfg.Path)
	case cfg.Name != "":
		return Named(cfg.Name)
	case len(cfg.Colors) > 0:
		return ParseHex(cfg.Colors)
	}
	return fluid.DefaultPalette(), nil
}
