package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/fluidgrid/fluid"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the complete grid state for replay.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`

	Width  int `json:"width"`
	Height int `json:"height"`

	Settings SettingsJSON `json:"settings"`

	Tick int32 `json:"tick"`

	U   []float32 `json:"u"`
	V   []float32 `json:"v"`
	Ink []float32 `json:"ink"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// SettingsJSON is the JSON-serializable form of fluid.Settings.
type SettingsJSON struct {
	Speed      float32 `json:"speed"`
	Viscosity  float32 `json:"viscosity"`
	Iterations int     `json:"iterations"`
	HeatForce  float32 `json:"heat_force"`
}

// CaptureSnapshot copies the grid's transported fields and settings.
func CaptureSnapshot(g *fluid.Grid, tick int32, seed int64, bookmark *Bookmark) *Snapshot {
	w, h := g.Size()
	u, v, ink := g.Snapshot()
	s := g.Settings()
	return &Snapshot{
		Version: SnapshotVersion,
		RNGSeed: seed,
		Width:   w,
		Height:  h,
		Settings: SettingsJSON{
			Speed:      s.Speed,
			Viscosity:  s.Viscosity,
			Iterations: s.Iterations,
			HeatForce:  s.HeatForce,
		},
		Tick:     tick,
		U:        u,
		V:        v,
		Ink:      ink,
		Bookmark: bookmark,
	}
}

// Apply restores the snapshot into a grid of the same size.
func (s *Snapshot) Apply(g *fluid.Grid) error {
	if s.Version != SnapshotVersion {
		return fmt.Errorf("snapshot version %d, want %d", s.Version, SnapshotVersion)
	}
	if w, h := g.Size(); w != s.Width || h != s.Height {
		return fmt.Errorf("snapshot is %dx%d, grid is %dx%d", s.Width, s.Height, w, h)
	}
	if err := g.Restore(s.U, s.V, s.Ink); err != nil {
		return err
	}
	g.Configure(fluid.Settings{
		Speed:      s.Settings.Speed,
		Viscosity:  s.Settings.Viscosity,
		Iterations: s.Settings.Iterations,
		HeatForce:  s.Settings.HeatForce,
	})
	return nil
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		// Sanitize bookmark type for filename
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}
	path := filepath.Join(dir, name+".json")

	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}
