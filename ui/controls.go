package ui

import (
	"fmt"
	"sort"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fluidgrid/telemetry"
)

// ControlsPanel lists overlay toggles with their keys.
type ControlsPanel struct {
	renderer   *Renderer
	x, y       int32
	width      int32
	visible    bool
	lastHeight int32
}

// NewControlsPanel creates a hidden controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Contains reports whether a screen point is over the visible panel.
func (c *ControlsPanel) Contains(x, y float32) bool {
	return c.visible && x >= float32(c.x) && x < float32(c.x+c.width) && y >= float32(c.y) && y < float32(c.y+c.lastHeight)
}

// Draw renders the panel and returns the Y just below it.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) int32 {
	if !c.visible {
		return c.y
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	categories := overlays.Categories()
	totalItems := 0
	for _, cat := range categories {
		totalItems += len(overlays.ByCategory(cat)) + 1 // +1 for category header
	}
	panelHeight := int32(totalItems)*lineHeight + padding*3 + lineHeight
	c.lastHeight = panelHeight

	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	y := c.y + padding
	rl.DrawText("Overlays", c.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	for _, category := range categories {
		rl.DrawText(categoryLabel(category), c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += lineHeight

		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(c.x+padding, y, desc, overlays.IsEnabled(desc.ID), c.width-padding*2)
			y += lineHeight
		}
		y += 4
	}

	return y
}

func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	nameColor := r.Theme.LabelColor
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
		nameColor = rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

func categoryLabel(cat string) string {
	switch cat {
	case "visual":
		return "Visual"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}

// PerfPanel shows average phase timings, slowest first.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a perf panel anchored at (x, y).
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// Draw renders the stats and returns the Y just below the panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) int32 {
	r := p.renderer
	phases := make([]string, 0, len(stats.PhaseAvg))
	for phase := range stats.PhaseAvg {
		phases = append(phases, phase)
	}
	sort.Slice(phases, func(i, j int) bool {
		return stats.PhaseAvg[phases[i]] > stats.PhaseAvg[phases[j]]
	})

	height := int32(len(phases)+2)*r.Theme.LineHeight + r.Theme.Padding*2
	r.DrawPanel(p.x, p.y, p.width, height)

	y := r.DrawSectionHeader(p.x+r.Theme.Padding, p.y+r.Theme.Padding, "Perf")
	y = r.DrawLabelValue(p.x+r.Theme.Padding, y, "Tick", fmt.Sprintf("%v (%.0f/s)", stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond))
	for _, phase := range phases {
		y = r.DrawLabelValue(p.x+r.Theme.Padding, y, phase,
			fmt.Sprintf("%v  %4.1f%%", stats.PhaseAvg[phase].Round(time.Microsecond), stats.PhasePct[phase]))
	}
	return p.y + height
}
