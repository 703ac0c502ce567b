package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fluidgrid/telemetry"
)

// Controls is the key legend drawn at the bottom of the window.
const Controls = "LMB ink  RMB push  MMB erase  [ ] brush  SPACE pause  C clear  P solver  O overlays  E emitters"

// Update processes input and advances the simulation by one tick. Draw
// closes the tick so render time lands in the same perf sample.
func (g *Game) Update() {
	g.perfCollector.StartTick()
	g.perfCollector.StartPhase(telemetry.PhaseInput)
	g.handleInput()
	g.step()
}

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyC) {
		g.Clear()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.panel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyO) {
		g.controls.Toggle()
	}
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		g.overlays.HandleKeyPress(key)
	}
	if rl.IsKeyPressed(rl.KeyE) {
		g.emittersOn = !g.emittersOn
		g.emitters.SetActive(g.emittersOn)
	}

	// Brush radius with [ and ]
	if rl.IsKeyPressed(rl.KeyLeftBracket) {
		g.inkRadius = max(g.inkRadius-1, MinBrushRadius)
	}
	if rl.IsKeyPressed(rl.KeyRightBracket) {
		g.inkRadius = min(g.inkRadius+1, MaxBrushRadius)
	}

	g.handleMouse()
}

// handleMouse paints into the grid under the cursor.
func (g *Game) handleMouse() {
	mouse := rl.GetMousePosition()
	if g.panel.Contains(mouse.X, mouse.Y) || g.controls.Contains(mouse.X, mouse.Y) {
		return
	}
	x, y := g.view.ScreenToGrid(mouse.X, mouse.Y)

	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		g.Paint(x, y, g.inkRadius)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonMiddle) {
		g.Erase(x, y, g.inkRadius)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		delta := rl.GetMouseDelta()
		dx, dy := g.view.DeltaToGrid(delta.X, delta.Y)
		g.PaintVelocity(x, y, g.velocityRadius, dx*g.velocityGain, dy*g.velocityGain)
	}
}

// handleResize propagates window size changes to the viewport.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	g.view.Resize(w, h, g.cfg.Grid.Scale <= 0)
}
