// Package game ties the fluid grid to its front ends: the raylib window,
// scripted emitters, telemetry and remote viewers.
package game

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/fluidgrid/camera"
	"github.com/pthm-cable/fluidgrid/config"
	"github.com/pthm-cable/fluidgrid/fluid"
	"github.com/pthm-cable/fluidgrid/palette"
	"github.com/pthm-cable/fluidgrid/renderer"
	"github.com/pthm-cable/fluidgrid/stream"
	"github.com/pthm-cable/fluidgrid/systems"
	"github.com/pthm-cable/fluidgrid/telemetry"
	"github.com/pthm-cable/fluidgrid/ui"
)

// Brush radius limits for the [ and ] keys.
const (
	MinBrushRadius = 1
	MaxBrushRadius = 60
)

// Options configures game behavior.
type Options struct {
	Seed        int64
	LogStats    bool
	SnapshotDir string
	OutputDir   string
	Headless    bool

	// Server receives frames and supplies remote commands. Nil disables
	// remote viewers.
	Server *stream.Server

	// StatsCallback is called with each flushed telemetry window.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the grid and everything that drives or observes it.
type Game struct {
	cfg  *config.Config
	grid *fluid.Grid

	world    *ecs.World
	emitters *systems.EmitterSystem

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	lastStats        telemetry.WindowStats
	statsCallback    func(telemetry.WindowStats)
	logStats         bool
	snapshotDir      string
	rngSeed          int64

	// Remote viewers
	server *stream.Server
	frame  []color.RGBA

	// Rendering, nil when headless
	view     *camera.Viewport
	field    *renderer.FieldRenderer
	hud      *ui.HUD
	panel    *ui.SolverPanel
	controls *ui.ControlsPanel
	perfView *ui.PerfPanel
	overlays *ui.OverlayRegistry

	headless   bool
	emittersOn bool

	inkRadius      float32
	velocityRadius float32
	velocityGain   float32

	tick   int32
	paused bool
}

// NewGame creates a game from the loaded config. A nil cfg uses config.Cfg().
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	if cfg == nil {
		cfg = config.Cfg()
	}

	grid, err := fluid.New(cfg.Derived.GridW, cfg.Derived.GridH)
	if err != nil {
		return nil, fmt.Errorf("creating grid: %w", err)
	}
	grid.Configure(fluid.Settings{
		Speed:      float32(cfg.Solver.Speed),
		Viscosity:  float32(cfg.Solver.Viscosity),
		Iterations: cfg.Solver.Iterations,
		HeatForce:  float32(cfg.Solver.HeatForce),
	})

	pal, err := palette.FromConfig(cfg.Palette)
	if err != nil {
		grid.Close()
		return nil, fmt.Errorf("loading palette: %w", err)
	}
	if err := grid.SetPalette(pal); err != nil {
		grid.Close()
		return nil, fmt.Errorf("setting palette: %w", err)
	}

	world := ecs.NewWorld()
	g := &Game{
		cfg:              cfg,
		grid:             grid,
		world:            world,
		emitters:         systems.NewEmitterSystem(world, opts.Seed),
		collector:        telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize, cfg.Bookmarks),
		statsCallback:    opts.StatsCallback,
		logStats:         opts.LogStats,
		snapshotDir:      opts.SnapshotDir,
		rngSeed:          opts.Seed,
		server:           opts.Server,
		headless:         opts.Headless,
		emittersOn:       true,
		inkRadius:        float32(cfg.Brush.InkRadius),
		velocityRadius:   float32(cfg.Brush.VelocityRadius),
		velocityGain:     float32(cfg.Brush.VelocityGain),
	}

	if err := g.emitters.SpawnAll(cfg.Emitters); err != nil {
		grid.Close()
		return nil, err
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		grid.Close()
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if om != nil {
		if err := om.WriteConfig(cfg); err != nil {
			om.Close()
			grid.Close()
			return nil, fmt.Errorf("writing config: %w", err)
		}
		slog.Info("writing output", "dir", om.Dir())
	}
	g.outputManager = om

	if !g.headless {
		g.view = camera.New(cfg.Derived.ScreenW32, cfg.Derived.ScreenH32, cfg.Derived.GridW, cfg.Derived.GridH, cfg.Derived.Scale32)
		g.field = renderer.NewFieldRenderer()
		g.hud = ui.NewHUD()
		g.panel = ui.NewSolverPanel(cfg.Derived.ScreenW32-250, 10, 240)
		g.controls = ui.NewControlsPanel(10, 120, 200)
		g.perfView = ui.NewPerfPanel(10, int32(cfg.Screen.Height)-230, 220)
		g.overlays = ui.NewOverlayRegistry()
	}

	slog.Info("game created",
		"grid_w", cfg.Derived.GridW,
		"grid_h", cfg.Derived.GridH,
		"emitters", g.emitters.Count(),
		"headless", g.headless,
		"serving", g.server != nil,
	)
	return g, nil
}

// Grid returns the simulated grid.
func (g *Game) Grid() *fluid.Grid { return g.grid }

// Tick returns the number of completed steps.
func (g *Game) Tick() int32 { return g.tick }

// Paused reports whether stepping is suspended.
func (g *Game) Paused() bool { return g.paused }

// SetPaused suspends or resumes stepping.
func (g *Game) SetPaused(p bool) { g.paused = p }

// LastStats returns the most recent telemetry window.
func (g *Game) LastStats() telemetry.WindowStats { return g.lastStats }

// Emitters returns the number of scripted emitters.
func (g *Game) Emitters() int { return g.emitters.Count() }

// Unload releases the grid, GPU resources and output files.
func (g *Game) Unload() {
	if g.field != nil {
		g.field.Unload()
	}
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}
	g.grid.Close()
}
