// Package fluid implements a fixed-resolution 2D grid fluid solver.
//
// The grid holds a velocity field (U, V), a transient correction field (P) and
// a dye field (Ink). Each call to Step advances the simulation through a fixed
// pipeline of stages: advection, diffusion, pressure correction, wall boundary
// and dye buoyancy. The scheme is a visually plausible approximation, not an
// exact Navier-Stokes solve.
package fluid

import (
	"errors"
	"fmt"
)

// ErrInvalidSize is returned by New when either grid dimension is not positive.
var ErrInvalidSize = errors.New("fluid: grid dimensions must be positive")

// Field identifies one of the grid's scalar fields.
type Field int

const (
	FieldU Field = iota
	FieldV
	FieldInk
	FieldPressure
)

func (f Field) String() string {
	switch f {
	case FieldU:
		return "u"
	case FieldV:
		return "v"
	case FieldInk:
		return "ink"
	case FieldPressure:
		return "pressure"
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// buffer is a transported field with a current slot and a scratch slot.
// Swapping flips which slot is current; no data moves.
type buffer struct {
	slots [2][]float32
	cur   int
}

func newBuffer(n int) buffer {
	return buffer{slots: [2][]float32{make([]float32, n), make([]float32, n)}}
}

func (b *buffer) current() []float32 { return b.slots[b.cur] }
func (b *buffer) scratch() []float32 { return b.slots[b.cur^1] }
func (b *buffer) swap() { b.cur ^= 1 }

func (b *buffer) release() {
	b.slots[0] = nil
	b.slots[1] = nil
	b.cur = 0
}

// Grid owns every per-cell field of the simulation.
//
// Indexing is row-major: index = x + y*W.
type Grid struct {
	W, H int

	u, v, ink buffer
	p         []float32

	settings Settings
	palette  Palette
}

// New allocates a zeroed width x height grid with default settings and the
// default black-to-white palette.
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidSize, width, height)
	}
	n := width * height
	return &Grid{
		W:        width,
		H:        height,
		u:        newBuffer(n),
		v:        newBuffer(n),
		ink:      newBuffer(n),
		p:        make([]float32, n),
		settings: DefaultSettings(),
		palette:  DefaultPalette(),
	}, nil
}

// Close releases every field together. A closed grid behaves as an empty 0x0
// grid: steps do nothing and painting is clipped away.
func (g *Grid) Close() {
	g.u.release()
	g.v.release()
	g.ink.release()
	g.p = nil
	g.W, g.H = 0, 0
}

// Size returns the grid dimensions.
func (g *Grid) Size() (w, h int) { return g.W, g.H }

// Index maps a cell coordinate to its flat index.
func (g *Grid) Index(x, y int) int { return x + y*g.W }

// Swap exchanges the current and scratch buffers of U, V and Ink.
func (g *Grid) Swap() {
	g.u.swap()
	g.v.swap()
	g.ink.swap()
}

// Values returns the current buffer for the field. The slice is owned by the
// grid and is only valid until the next stage runs.
func (g *Grid) Values(f Field) []float32 {
	switch f {
	case FieldU:
		return g.u.current()
	case FieldV:
		return g.v.current()
	case FieldInk:
		return g.ink.current()
	case FieldPressure:
		return g.p
	}
	return nil
}

// Value returns the field value at a cell, or 0 outside the grid.
func (g *Grid) Value(f Field, x, y int) float32 {
	return g.at(g.Values(f), x, y)
}

// Reset zeroes every field, leaving settings and palette untouched.
func (g *Grid) Reset() {
	for _, b := range []*buffer{&g.u, &g.v, &g.ink} {
		clear(b.slots[0])
		clear(b.slots[1])
	}
	clear(g.p)
}

// Snapshot copies the current U, V and Ink fields out of the grid.
func (g *Grid) Snapshot() (u, v, ink []float32) {
	return append([]float32(nil), g.u.current()...),
		append([]float32(nil), g.v.current()...),
		append([]float32(nil), g.ink.current()...)
}

// Restore copies previously captured fields into the current buffers.
func (g *Grid) Restore(u, v, ink []float32) error {
	n := g.W * g.H
	if len(u) != n || len(v) != n || len(ink) != n {
		return fmt.Errorf("fluid: restore expects %d cells, got u=%d v=%d ink=%d", n, len(u), len(v), len(ink))
	}
	copy(g.u.current(), u)
	copy(g.v.current(), v)
	copy(g.ink.current(), ink)
	return nil
}
