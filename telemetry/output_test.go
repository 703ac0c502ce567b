package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("expected nil manager for empty dir, got %v, %v", om, err)
	}
	// Methods are nil-safe
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManagerWritesHeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	for i := 1; i <= 3; i++ {
		if err := om.WriteTelemetry(WindowStats{WindowEndTick: int32(i * 60), InkMean: 0.1}); err != nil {
			t.Fatalf("WriteTelemetry: %v", err)
		}
	}
	if err := om.WriteBookmark(Bookmark{Type: BookmarkCalm, Tick: 60, Description: "settled"}); err != nil {
		t.Fatalf("WriteBookmark: %v", err)
	}
	if err := om.WritePerf(PerfStats{}, 60); err != nil {
		t.Fatalf("WritePerf: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("telemetry.csv has %d lines, want header + 3 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "window_end,") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if strings.Contains(lines[0], "window_start") {
		t.Error("window start should not be exported")
	}

	data, err = os.ReadFile(filepath.Join(dir, "bookmarks.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "calm,60,settled") {
		t.Errorf("bookmarks.csv = %q", data)
	}
}
