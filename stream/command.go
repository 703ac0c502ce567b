package stream

import (
	"encoding/json"
	"fmt"

	"github.com/pthm-cable/fluidgrid/fluid"
	"github.com/pthm-cable/fluidgrid/telemetry"
)

// Command ops accepted from viewers.
const (
	OpPaint    = "paint"
	OpErase    = "erase"
	OpVelocity = "velocity"
	OpClear    = "clear"
)

// Command is one brush action sent by a viewer as JSON. Coordinates are grid
// cells.
type Command struct {
	Op string  `json:"op"`
	X  float32 `json:"x"`
	Y  float32 `json:"y"`
	R  float32 `json:"r"`
	VX float32 `json:"vx"`
	VY float32 `json:"vy"`
}

// ParseCommand decodes and validates a JSON command.
func ParseCommand(data []byte) (Command, error) {
	var c Command
	if err := json.Unmarshal(data, &c); err != nil {
		return Command{}, fmt.Errorf("decoding command: %w", err)
	}
	switch c.Op {
	case OpPaint, OpErase, OpVelocity, OpClear:
		return c, nil
	}
	return Command{}, fmt.Errorf("unknown op %q", c.Op)
}

// Apply runs the command against the grid and reports which event it was.
// It must be called on the goroutine that steps the grid.
func (c Command) Apply(g *fluid.Grid) telemetry.EventKind {
	switch c.Op {
	case OpErase:
		g.Erase(c.X, c.Y, c.R)
		return telemetry.EventErase
	case OpVelocity:
		g.PaintVelocity(c.X, c.Y, c.R, c.VX, c.VY)
		return telemetry.EventVelocity
	case OpClear:
		g.Reset()
		return telemetry.EventClear
	}
	g.Paint(c.X, c.Y, c.R)
	return telemetry.EventPaint
}
