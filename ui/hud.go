package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Tick        int32
	FPS         int32
	Paused      bool
	BrushRadius float32
	Emitters    int
	InkMean     float32 // fraction of the grid covered by dye
	SpeedMax    float32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	x, y := int32(10), int32(10)

	r.DrawPanel(x-4, y-4, 200, 92)
	y = r.DrawLabelValue(x, y, "Tick", fmt.Sprintf("%d", data.Tick))
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%d", data.FPS))
	y = r.DrawLabelValue(x, y, "Brush", fmt.Sprintf("%.0f cells | %d emitters", data.BrushRadius, data.Emitters))
	y = r.DrawBar(x, y, "Ink", data.InkMean, 192)
	y = r.DrawLabelValue(x, y, "Max speed", fmt.Sprintf("%.2f", data.SpeedMax))

	if data.Paused {
		rl.DrawText("PAUSED", x, y+4, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-20, 10, rl.Gray)
}
