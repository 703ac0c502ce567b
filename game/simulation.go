package game

import (
	"github.com/pthm-cable/fluidgrid/telemetry"
)

// Paint deposits ink and records the event. Emitters paint through this
// method so their stamps are counted like user strokes.
func (g *Game) Paint(x, y, radius float32) {
	g.grid.Paint(x, y, radius)
	g.collector.Record(telemetry.EventPaint)
}

// Erase clears ink and records the event.
func (g *Game) Erase(x, y, radius float32) {
	g.grid.Erase(x, y, radius)
	g.collector.Record(telemetry.EventErase)
}

// PaintVelocity sets velocity in a disc and records the event.
func (g *Game) PaintVelocity(x, y, radius, vx, vy float32) {
	g.grid.PaintVelocity(x, y, radius, vx, vy)
	g.collector.Record(telemetry.EventVelocity)
}

// Clear zeroes every field.
func (g *Game) Clear() {
	g.grid.Reset()
	g.collector.Record(telemetry.EventClear)
}

// Step advances the simulation by one timed tick. Commands from remote
// viewers are applied even while paused.
func (g *Game) Step() {
	g.perfCollector.StartTick()
	g.step()
	g.perfCollector.EndTick()
}

// UpdateHeadless runs one tick without graphics.
func (g *Game) UpdateHeadless() {
	g.Step()
}

// step runs everything in a tick after input handling.
func (g *Game) step() {
	g.perfCollector.StartPhase(telemetry.PhaseInput)
	g.drainCommands()
	if g.paused {
		return
	}

	g.perfCollector.StartPhase(telemetry.PhaseEmitters)
	g.emitters.Update(g.tick, g)

	g.grid.StepObserved(g.perfCollector.ObserveStage)
	g.tick++

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()
	g.publishFrame()
}

// drainCommands applies every queued remote command without blocking.
func (g *Game) drainCommands() {
	if g.server == nil {
		return
	}
	cmds := g.server.Commands()
	for {
		select {
		case cmd := <-cmds:
			g.collector.Record(cmd.Apply(g.grid))
		default:
			return
		}
	}
}

// publishFrame sends the colorized ink to remote viewers every FrameEvery ticks.
func (g *Game) publishFrame() {
	if g.server == nil {
		return
	}
	every := int32(g.cfg.Server.FrameEvery)
	if every < 1 {
		every = 1
	}
	if g.tick%every != 0 {
		return
	}
	w, h := g.grid.Size()
	g.frame = g.grid.Colorize(g.frame)
	g.server.Publish(w, h, g.frame)
}
