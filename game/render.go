package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fluidgrid/renderer"
	"github.com/pthm-cable/fluidgrid/telemetry"
	"github.com/pthm-cable/fluidgrid/ui"
)

var (
	velocityColor = rl.Color{R: 80, G: 200, B: 255, A: 200}
	boundsColor   = rl.Color{R: 255, G: 80, B: 80, A: 160}
)

// Draw renders the grid, overlays and UI, then closes the tick's perf sample.
func (g *Game) Draw() {
	g.perfCollector.StartPhase(telemetry.PhaseRender)
	g.perfCollector.RecordFrame()

	g.field.Upload(g.grid)

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	x, y, _, _ := g.view.Bounds()
	g.field.Draw(renderer.DrawOptions{
		X:      x,
		Y:      y,
		Scale:  g.view.Scale,
		Smooth: g.overlays.IsEnabled(ui.OverlaySmooth),
	})
	g.drawOverlays()

	g.hud.Draw(ui.HUDData{
		Tick:        g.tick,
		FPS:         rl.GetFPS(),
		Paused:      g.paused,
		BrushRadius: g.inkRadius,
		Emitters:    g.emitters.Count(),
		InkMean:     float32(g.lastStats.InkMean),
		SpeedMax:    float32(g.lastStats.SpeedMax),
	})
	g.hud.DrawControls(int32(rl.GetScreenHeight()), Controls)
	g.controls.Draw(g.overlays)

	if s, changed := g.panel.Draw(g.grid.Settings()); changed {
		g.grid.Configure(s)
	}

	rl.EndDrawing()
	g.perfCollector.EndTick()
}

func (g *Game) drawOverlays() {
	for _, id := range g.overlays.EnabledOverlays() {
		switch id {
		case ui.OverlayVelocity:
			renderer.DrawVelocity(g.grid, g.view, 8, 6, velocityColor)
		case ui.OverlayEmitters:
			g.drawEmitters()
		case ui.OverlayBounds:
			g.drawBounds()
		case ui.OverlayPerf:
			g.perfView.Draw(g.perfCollector.Stats())
		}
	}
}

// drawEmitters marks each emitter's current position, hollow when inactive.
func (g *Game) drawEmitters() {
	for _, pos := range g.emitters.Positions() {
		sx, sy := g.view.GridToScreen(pos.X, pos.Y)
		if g.emittersOn {
			rl.DrawCircle(int32(sx), int32(sy), 3, rl.Yellow)
		}
		rl.DrawCircleLines(int32(sx), int32(sy), 5, rl.Yellow)
	}
}

// drawBounds outlines the grid and the inner edge of the wall ring.
func (g *Game) drawBounds() {
	x, y, w, h := g.view.Bounds()
	rl.DrawRectangleLinesEx(rl.Rectangle{X: x, Y: y, Width: w, Height: h}, 1, rl.Gray)
	s := g.view.Scale
	rl.DrawRectangleLinesEx(rl.Rectangle{X: x + s, Y: y + s, Width: w - 2*s, Height: h - 2*s}, 1, boundsColor)
}
