package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlaySmooth   OverlayID = "smooth"
	OverlayVelocity OverlayID = "velocity"
	OverlayEmitters OverlayID = "emitters"
	OverlayBounds   OverlayID = "bounds"
	OverlayPerf     OverlayID = "perf"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID
	Name        string
	Description string
	Key         int32  // toggle key, 0 for none
	KeyLabel    string // shown in the controls panel
	Category    string // "visual" or "debug"
}

// OverlayRegistry tracks which overlays are on, in registration order.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with the default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID:          OverlaySmooth,
		Name:        "Smooth Shading",
		Description: "Bilinear filtering between cells",
		Key:         rl.KeyS,
		KeyLabel:    "S",
		Category:    "visual",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayVelocity,
		Name:        "Velocity",
		Description: "Velocity vectors on a coarse lattice",
		Key:         rl.KeyV,
		KeyLabel:    "V",
		Category:    "visual",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayEmitters,
		Name:        "Emitters",
		Description: "Mark scripted emitter positions",
		Key:         rl.KeyM,
		KeyLabel:    "M",
		Category:    "visual",
	})
	r.SetEnabled(OverlayEmitters, true)

	r.Register(OverlayDescriptor{
		ID:          OverlayBounds,
		Name:        "Grid Bounds",
		Description: "Outline the grid and its wall ring",
		Key:         rl.KeyB,
		KeyLabel:    "B",
		Category:    "debug",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayPerf,
		Name:        "Perf",
		Description: "Per-phase step timings",
		Key:         rl.KeyF,
		KeyLabel:    "F",
		Category:    "debug",
	})
}

// Register adds an overlay, initially disabled.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	if _, ok := r.byID[desc.ID]; ok {
		return
	}
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = false
}

// Toggle flips an overlay and returns its new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.enabled[id] = !r.enabled[id]
	return r.enabled[id]
}

// SetEnabled sets an overlay's state. Unknown IDs are ignored.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	if _, ok := r.byID[id]; !ok {
		return
	}
	r.enabled[id] = enabled
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// ByCategory returns overlays filtered by category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var result []OverlayDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			result = append(result, desc)
		}
	}
	return result
}

// Categories returns all unique categories in order.
func (r *OverlayRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, desc := range r.descriptors {
		if !seen[desc.Category] {
			seen[desc.Category] = true
			cats = append(cats, desc.Category)
		}
	}
	return cats
}

// HandleKeyPress toggles the overlay bound to key.
// Returns the overlay ID, its new state and whether a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key == key {
			return desc.ID, r.Toggle(desc.ID), true
		}
	}
	return "", false, false
}

// EnabledOverlays returns the enabled overlay IDs in registration order.
func (r *OverlayRegistry) EnabledOverlays() []OverlayID {
	var result []OverlayID
	for _, desc := range r.descriptors {
		if r.enabled[desc.ID] {
			result = append(result, desc.ID)
		}
	}
	return result
}
