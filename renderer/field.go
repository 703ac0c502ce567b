// Package renderer draws the fluid grid with raylib.
package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fluidgrid/camera"
	"github.com/pthm-cable/fluidgrid/fluid"
)

// DrawOptions places the field texture on screen.
type DrawOptions struct {
	X, Y   float32
	Scale  float32 // pixels per cell, 0 means 1
	Smooth bool    // bilinear filtering instead of hard cell edges
}

// FieldRenderer uploads palette-mapped ink into a texture, one texel per cell.
type FieldRenderer struct {
	tex        rl.Texture2D
	texW, texH int
	pixels     []color.RGBA
	smooth     bool

	initialized bool
}

// NewFieldRenderer creates an uninitialized renderer.
func NewFieldRenderer() *FieldRenderer {
	return &FieldRenderer{}
}

// Init creates the texture (must be called after raylib window is created).
func (r *FieldRenderer) Init(gridW, gridH int) {
	if r.initialized {
		return
	}

	r.texW = gridW
	r.texH = gridH

	img := rl.GenImageColor(gridW, gridH, rl.Black)
	r.tex = rl.LoadTextureFromImage(img)
	rl.SetTextureFilter(r.tex, rl.FilterPoint)
	rl.SetTextureWrap(r.tex, rl.WrapClamp)
	rl.UnloadImage(img)

	r.initialized = true
}

// Upload colorizes the grid's ink and sends it to the GPU.
func (r *FieldRenderer) Upload(g *fluid.Grid) {
	w, h := g.Size()
	if !r.initialized {
		r.Init(w, h)
	}
	if w != r.texW || h != r.texH {
		return
	}

	r.pixels = g.Colorize(r.pixels)
	rl.UpdateTexture(r.tex, r.pixels)
}

// Draw renders the last uploaded frame.
func (r *FieldRenderer) Draw(opts DrawOptions) {
	if !r.initialized {
		return
	}

	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	if opts.Smooth != r.smooth {
		filter := rl.FilterPoint
		if opts.Smooth {
			filter = rl.FilterBilinear
		}
		rl.SetTextureFilter(r.tex, filter)
		r.smooth = opts.Smooth
	}

	src := rl.Rectangle{X: 0, Y: 0, Width: float32(r.texW), Height: float32(r.texH)}
	dst := rl.Rectangle{X: opts.X, Y: opts.Y, Width: float32(r.texW) * scale, Height: float32(r.texH) * scale}
	rl.DrawTexturePro(r.tex, src, dst, rl.Vector2{}, 0, rl.White)
}

// DrawVelocity draws a line per sampled cell showing the local velocity,
// every step cells in both directions.
func DrawVelocity(g *fluid.Grid, view *camera.Viewport, step int, gain float32, col rl.Color) {
	if step < 1 {
		step = 1
	}
	w, h := g.Size()
	for y := step / 2; y < h; y += step {
		for x := step / 2; x < w; x += step {
			u := g.Value(fluid.FieldU, x, y)
			v := g.Value(fluid.FieldV, x, y)
			if u == 0 && v == 0 {
				continue
			}
			cx, cy := float32(x)+0.5, float32(y)+0.5
			sx, sy := view.GridToScreen(cx, cy)
			ex, ey := view.GridToScreen(cx+u*gain, cy+v*gain)
			rl.DrawLineV(rl.Vector2{X: sx, Y: sy}, rl.Vector2{X: ex, Y: ey}, col)
		}
	}
}

// Unload frees GPU resources.
func (r *FieldRenderer) Unload() {
	if !r.initialized {
		return
	}
	rl.UnloadTexture(r.tex)
	r.initialized = false
}
