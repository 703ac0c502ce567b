package game

import (
	"log/slog"

	"github.com/pthm-cable/fluidgrid/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.grid)
	perfStats := g.perfCollector.Stats()
	g.lastStats = stats

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if g.outputManager != nil {
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}
		if g.snapshotDir != "" {
			g.saveSnapshot(&bm)
		}
	}
}

// saveSnapshot writes the grid state to the snapshot directory.
func (g *Game) saveSnapshot(bookmark *telemetry.Bookmark) {
	snapshot := telemetry.CaptureSnapshot(g.grid, g.tick, g.rngSeed, bookmark)

	path, err := telemetry.SaveSnapshot(snapshot, g.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}

	slog.Info("snapshot saved", "path", path, "tick", g.tick)
}

// LoadSnapshot restores grid state from a snapshot file. The tick counter
// resumes from the snapshot.
func (g *Game) LoadSnapshot(path string) error {
	snapshot, err := telemetry.LoadSnapshot(path)
	if err != nil {
		return err
	}
	if err := snapshot.Apply(g.grid); err != nil {
		return err
	}
	g.tick = snapshot.Tick
	slog.Info("snapshot loaded", "path", path, "tick", g.tick)
	return nil
}
