package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fluidgrid/fluid"
)

// SolverPanel renders raygui sliders for the solver coefficients.
type SolverPanel struct {
	renderer *Renderer
	x, y     float32
	width    float32
	visible  bool
}

// NewSolverPanel creates a hidden panel anchored at (x, y).
func NewSolverPanel(x, y, width float32) *SolverPanel {
	return &SolverPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Toggle switches panel visibility.
func (p *SolverPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// IsVisible returns whether the panel is shown.
func (p *SolverPanel) IsVisible() bool { return p.visible }

// Contains reports whether a screen point is over the panel, so clicks on
// sliders do not paint into the grid.
func (p *SolverPanel) Contains(x, y float32) bool {
	return p.visible && x >= p.x && x < p.x+p.width && y >= p.y && y < p.y+p.height()
}

func (p *SolverPanel) height() float32 {
	return 4*40 + 70
}

// Draw renders the sliders and returns the possibly edited settings and
// whether anything changed. The reset button restores defaults.
func (p *SolverPanel) Draw(s fluid.Settings) (fluid.Settings, bool) {
	if !p.visible {
		return s, false
	}

	r := p.renderer
	pad := float32(r.Theme.Padding)
	r.DrawPanel(int32(p.x), int32(p.y), int32(p.width), int32(p.height()))
	y := float32(r.DrawSectionHeader(int32(p.x+pad), int32(p.y+pad), "Solver"))

	out := s
	slider := func(label string, value, lo, hi float32, format string) float32 {
		rl.DrawText(label, int32(p.x+pad), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
		y += 14
		v := gui.SliderBar(
			rl.Rectangle{X: p.x + pad, Y: y, Width: p.width - 2*pad - 50, Height: 16},
			"", "",
			value, lo, hi,
		)
		rl.DrawText(fmt.Sprintf(format, v), int32(p.x+p.width-pad-44), int32(y+2), r.Theme.FontSize, r.Theme.ValueColor)
		y += 26
		return v
	}

	out.Speed = slider("Speed", s.Speed, 0, 4, "%.2f")
	out.Viscosity = slider("Viscosity", s.Viscosity, 0, 1, "%.3f")
	out.Iterations = int(slider("Pressure iterations", float32(s.Iterations), 0, 100, "%.0f") + 0.5)
	out.HeatForce = slider("Heat force", s.HeatForce, -1, 1, "%.2f")

	if gui.Button(rl.Rectangle{X: p.x + pad, Y: y, Width: 100, Height: 22}, "Defaults") {
		out = fluid.DefaultSettings()
	}

	return out, out != s
}
