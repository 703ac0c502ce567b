package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/fluidgrid/config"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkSurge      BookmarkType = "surge"
	BookmarkCalm       BookmarkType = "calm"
	BookmarkSaturation BookmarkType = "saturation"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// minSurgeSpeed keeps a still grid from reporting surges on noise.
const minSurgeSpeed = 0.5

// BookmarkDetector detects interesting moments in the simulation.
type BookmarkDetector struct {
	thresholds config.BookmarksConfig

	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	recentSpeedPeak float64 // peak mean speed since the last calm
	saturated       bool    // saturation already reported
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int, thresholds config.BookmarksConfig) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3 // minimum for a meaningful rolling average
	}
	return &BookmarkDetector{
		thresholds:  thresholds,
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	// Surge: max speed well above the rolling average
	if b := bd.checkSurge(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	// Calm: flow settled after being active
	if b := bd.checkCalm(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	// Saturation: the grid is mostly dye
	if b := bd.checkSaturation(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	if stats.SpeedMean > bd.recentSpeedPeak {
		bd.recentSpeedPeak = stats.SpeedMean
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkSurge(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total float64
	for _, h := range history {
		total += h.SpeedMax
	}
	avg := total / float64(len(history))

	if stats.SpeedMax < minSurgeSpeed {
		return nil
	}
	if avg == 0 || stats.SpeedMax > avg*bd.thresholds.SurgeMultiplier {
		desc := fmt.Sprintf("Max speed %.2f from a still grid", stats.SpeedMax)
		if avg > 0 {
			desc = fmt.Sprintf("Max speed %.2f is %.1fx average (%.2f)", stats.SpeedMax, stats.SpeedMax/avg, avg)
		}
		return &Bookmark{
			Type:        BookmarkSurge,
			Tick:        stats.WindowEndTick,
			Description: desc,
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkCalm(stats WindowStats) *Bookmark {
	calm := bd.thresholds.CalmSpeed
	// Only report a calm that follows clearly active flow
	if bd.recentSpeedPeak < calm*10 || stats.SpeedMean >= calm {
		return nil
	}

	peak := bd.recentSpeedPeak
	bd.recentSpeedPeak = 0
	return &Bookmark{
		Type:        BookmarkCalm,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Mean speed settled to %.4f from peak %.3f", stats.SpeedMean, peak),
	}
}

func (bd *BookmarkDetector) checkSaturation(stats WindowStats) *Bookmark {
	limit := bd.thresholds.SaturationMean
	if stats.InkMean < limit {
		// Hysteresis so an oscillating mean does not flood the log
		if stats.InkMean < limit*0.8 {
			bd.saturated = false
		}
		return nil
	}
	if bd.saturated {
		return nil
	}

	bd.saturated = true
	return &Bookmark{
		Type:        BookmarkSaturation,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Mean ink %.2f reached saturation threshold %.2f", stats.InkMean, limit),
	}
}
