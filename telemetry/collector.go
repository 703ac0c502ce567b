package telemetry

// EventKind classifies a user or emitter action on the grid.
type EventKind uint8

const (
	EventPaint EventKind = iota
	EventErase
	EventVelocity
	EventClear
)

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	paints         int
	erases         int
	velocityPaints int
	clears         int
}

// NewCollector creates a new stats collector that flushes every
// windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	ticksPerWindow := int32(windowTicks)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{windowDurationTicks: ticksPerWindow}
}

// Record counts one event.
func (c *Collector) Record(kind EventKind) {
	switch kind {
	case EventPaint:
		c.paints++
	case EventErase:
		c.erases++
	case EventVelocity:
		c.velocityPaints++
	case EventClear:
		c.clears++
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush samples the grid, produces a WindowStats and resets counters for
// the next window.
func (c *Collector) Flush(currentTick int32, grid FieldReader) WindowStats {
	ink, flow := ComputeFieldStats(grid)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		InkTotal: ink.Total,
		InkMean:  ink.Mean,
		InkStd:   ink.Std,
		InkMin:   ink.Min,
		InkMax:   ink.Max,
		InkP50:   ink.P50,
		InkP90:   ink.P90,

		SpeedMean:      flow.SpeedMean,
		SpeedMax:       flow.SpeedMax,
		KineticEnergy:  flow.KineticEnergy,
		MeanDivergence: flow.MeanDivergence,

		Paints:         c.paints,
		Erases:         c.erases,
		VelocityPaints: c.velocityPaints,
		Clears:         c.clears,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.paints = 0
	c.erases = 0
	c.velocityPaints = 0
	c.clears = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
