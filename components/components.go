// Package components defines ECS components for scripted stirrers.
package components

// Mode determines what an emitter writes into the grid.
type Mode uint8

const (
	ModeInk   Mode = iota // paints dye
	ModeErase             // clears dye
	ModeJet               // paints velocity
)

func (m Mode) String() string {
	switch m {
	case ModeInk:
		return "ink"
	case ModeErase:
		return "erase"
	case ModeJet:
		return "jet"
	}
	return "unknown"
}

// ParseMode maps a config mode name to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "ink":
		return ModeInk, true
	case "erase":
		return ModeErase, true
	case "jet":
		return ModeJet, true
	}
	return 0, false
}

// Anchor is the rest position of an emitter in grid cells.
type Anchor struct {
	X, Y float32
}

// Position is the emitter's current position in grid cells.
type Position struct {
	X, Y float32
}

// Nozzle describes the brush an emitter paints with each tick.
type Nozzle struct {
	Mode   Mode
	Radius float32
	VX, VY float32 // jet velocity, ignored for ink and erase
	Active bool
}

// Wander displaces an emitter around its anchor with coherent noise.
type Wander struct {
	Amplitude float32 // cells
	Speed     float32 // noise time per tick
	Phase     float64 // decorrelates emitters sharing one noise source
}
