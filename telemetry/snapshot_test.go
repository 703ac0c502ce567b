package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/fluidgrid/fluid"
)

func TestSnapshotSaveLoadApply(t *testing.T) {
	tmpDir := t.TempDir()

	g, err := fluid.New(8, 6)
	if err != nil {
		t.Fatal(err)
	}
	g.SetViscosity(0.3)
	g.Paint(4, 3, 2)
	g.PaintVelocity(2, 2, 1, 0.5, -0.75)

	snapshot := CaptureSnapshot(g, 1000, 42, &Bookmark{
		Type:        BookmarkSurge,
		Tick:        1000,
		Description: "Test bookmark",
	})

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Snapshot file not created at %s", path)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if loaded.RNGSeed != 42 || loaded.Tick != 1000 {
		t.Errorf("header mismatch: seed %d tick %d", loaded.RNGSeed, loaded.Tick)
	}
	if loaded.Bookmark == nil || loaded.Bookmark.Type != BookmarkSurge {
		t.Errorf("bookmark not round-tripped: %+v", loaded.Bookmark)
	}

	// Restore into a fresh grid
	fresh, err := fluid.New(8, 6)
	if err != nil {
		t.Fatal(err)
	}
	if err := loaded.Apply(fresh); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if fresh.Value(fluid.FieldInk, 4, 3) != 1 {
		t.Error("ink not restored")
	}
	if fresh.Value(fluid.FieldU, 2, 2) != 0.5 || fresh.Value(fluid.FieldV, 2, 2) != -0.75 {
		t.Error("velocity not restored")
	}
	if fresh.Settings().Viscosity != 0.3 {
		t.Errorf("viscosity = %v, want 0.3", fresh.Settings().Viscosity)
	}
}

func TestSnapshotApplySizeMismatch(t *testing.T) {
	g, err := fluid.New(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	other, err := fluid.New(5, 4)
	if err != nil {
		t.Fatal(err)
	}
	if err := CaptureSnapshot(g, 0, 0, nil).Apply(other); err == nil {
		t.Error("expected size mismatch error")
	}
}

func TestSnapshotFilename(t *testing.T) {
	tmpDir := t.TempDir()

	snapshot := &Snapshot{
		Version: SnapshotVersion,
		Tick:    5000,
		Bookmark: &Bookmark{
			Type: BookmarkSaturation,
			Tick: 5000,
		},
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	expected := filepath.Join(tmpDir, "snapshot_5000_saturation.json")
	if path != expected {
		t.Errorf("Path mismatch: got %s, want %s", path, expected)
	}

	snapshotNoBookmark := &Snapshot{
		Version: SnapshotVersion,
		Tick:    3000,
	}

	path, err = SaveSnapshot(snapshotNoBookmark, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	expected = filepath.Join(tmpDir, "snapshot_3000.json")
	if path != expected {
		t.Errorf("Path mismatch: got %s, want %s", path, expected)
	}
}
