// Package systems contains ECS systems that drive the fluid grid.
package systems

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"
	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/fluidgrid/components"
	"github.com/pthm-cable/fluidgrid/config"
)

// Painter is the slice of the grid API emitters write through.
type Painter interface {
	Paint(x, y, radius float32)
	Erase(x, y, radius float32)
	PaintVelocity(x, y, radius, vx, vy float32)
}

// EmitterSystem moves scripted stirrers and stamps their brush into the grid
// once per tick, before the solver steps.
type EmitterSystem struct {
	mapper ecs.Map4[components.Anchor, components.Position, components.Nozzle, components.Wander]
	filter ecs.Filter4[components.Anchor, components.Position, components.Nozzle, components.Wander]
	noise  opensimplex.Noise
	count  int
}

// NewEmitterSystem creates an emitter system. seed drives the wander noise.
func NewEmitterSystem(w *ecs.World, seed int64) *EmitterSystem {
	return &EmitterSystem{
		mapper: *ecs.NewMap4[components.Anchor, components.Position, components.Nozzle, components.Wander](w),
		filter: *ecs.NewFilter4[components.Anchor, components.Position, components.Nozzle, components.Wander](w),
		noise:  opensimplex.New(seed),
	}
}

// Spawn creates one emitter entity from its config.
func (s *EmitterSystem) Spawn(ec config.EmitterConfig) (ecs.Entity, error) {
	mode, ok := components.ParseMode(ec.Mode)
	if !ok {
		return ecs.Entity{}, fmt.Errorf("unknown emitter mode %q", ec.Mode)
	}

	anchor := components.Anchor{X: float32(ec.X), Y: float32(ec.Y)}
	pos := components.Position{X: anchor.X, Y: anchor.Y}
	nozzle := components.Nozzle{
		Mode:   mode,
		Radius: float32(ec.Radius),
		VX:     float32(ec.VX),
		VY:     float32(ec.VY),
		Active: ec.IsEnabled(),
	}
	wander := components.Wander{
		Amplitude: float32(ec.Wander),
		Speed:     float32(ec.Speed),
		Phase:     float64(ec.Seed) * 17.31,
	}

	s.count++
	return s.mapper.NewEntity(&anchor, &pos, &nozzle, &wander), nil
}

// SpawnAll creates every configured emitter.
func (s *EmitterSystem) SpawnAll(emitters []config.EmitterConfig) error {
	for i, ec := range emitters {
		if _, err := s.Spawn(ec); err != nil {
			return fmt.Errorf("emitters[%d]: %w", i, err)
		}
	}
	return nil
}

// Count returns the number of spawned emitters.
func (s *EmitterSystem) Count() int { return s.count }

// Update moves every emitter along its noise path and applies active
// nozzles to the grid.
func (s *EmitterSystem) Update(tick int32, grid Painter) {
	query := s.filter.Query()
	for query.Next() {
		anchor, pos, nozzle, wander := query.Get()

		pos.X, pos.Y = anchor.X, anchor.Y
		if wander.Amplitude != 0 {
			t := float64(tick) * float64(wander.Speed)
			// Two decorrelated samples of the same field give x and y.
			dx := s.noise.Eval2(t, wander.Phase)
			dy := s.noise.Eval2(wander.Phase+101.7, t)
			pos.X += float32(dx) * wander.Amplitude
			pos.Y += float32(dy) * wander.Amplitude
		}

		if !nozzle.Active {
			continue
		}
		switch nozzle.Mode {
		case components.ModeInk:
			grid.Paint(pos.X, pos.Y, nozzle.Radius)
		case components.ModeErase:
			grid.Erase(pos.X, pos.Y, nozzle.Radius)
		case components.ModeJet:
			grid.PaintVelocity(pos.X, pos.Y, nozzle.Radius, nozzle.VX, nozzle.VY)
		}
	}
}

// SetActive toggles every emitter's nozzle.
func (s *EmitterSystem) SetActive(active bool) {
	query := s.filter.Query()
	for query.Next() {
		_, _, nozzle, _ := query.Get()
		nozzle.Active = active
	}
}

// Positions returns the current emitter positions, for overlays.
func (s *EmitterSystem) Positions() []components.Position {
	out := make([]components.Position, 0, s.count)
	query := s.filter.Query()
	for query.Next() {
		_, pos, _, _ := query.Get()
		out = append(out, *pos)
	}
	return out
}
