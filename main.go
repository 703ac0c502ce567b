package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fluidgrid/config"
	"github.com/pthm-cable/fluidgrid/game"
	"github.com/pthm-cable/fluidgrid/palette"
	"github.com/pthm-cable/fluidgrid/stream"
	"github.com/pthm-cable/fluidgrid/terminal"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	useTerminal := flag.Bool("terminal", false, "Render in the terminal instead of a window")
	serve := flag.String("serve", "", "Serve websocket viewers on this address (\"-\" = server.addr from config)")
	paletteFlag := flag.String("palette", "", "Palette name ("+strings.Join(palette.Names(), ", ")+") or image path")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for snapshot files")
	loadSnapshot := flag.String("load-snapshot", "", "Restore grid state from a snapshot file")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed for emitter wander (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON to stderr so the terminal renderer keeps stdout)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *paletteFlag != "" {
		if slices.Contains(palette.Names(), *paletteFlag) {
			cfg.Palette = config.PaletteConfig{Name: *paletteFlag}
		} else {
			cfg.Palette = config.PaletteConfig{Path: *paletteFlag}
		}
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := *serve
	if addr == "-" {
		addr = cfg.Server.Addr
	}
	var server *stream.Server
	if addr != "" {
		server = stream.NewServer(addr)
		go func() {
			if err := server.Run(ctx); err != nil {
				slog.Error("stream server stopped", "error", err)
				stop()
			}
		}()
	}

	opts := game.Options{
		Seed:        rngSeed,
		LogStats:    *logStats,
		SnapshotDir: *snapshotDir,
		OutputDir:   *outputDir,
		Headless:    *headless || *useTerminal,
		Server:      server,
	}

	if !opts.Headless {
		// raylib needs the window before any texture is created
		rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Fluid Grid")
		defer rl.CloseWindow()
		rl.SetWindowState(rl.FlagWindowResizable)
		rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	}

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	if *loadSnapshot != "" {
		if err := g.LoadSnapshot(*loadSnapshot); err != nil {
			slog.Error("failed to load snapshot", "error", err)
			os.Exit(1)
		}
	}

	done := func() bool {
		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			return true
		}
		return ctx.Err() != nil
	}

	switch {
	case *useTerminal:
		term := terminal.New(g, cfg.Terminal.FPS, float32(cfg.Brush.InkRadius), float32(cfg.Brush.VelocityGain))
		if err := term.Run(ctx); err != nil {
			slog.Error("terminal failed", "error", err)
			os.Exit(1)
		}

	case *headless:
		slog.Info("starting headless simulation",
			"seed", rngSeed,
			"max_ticks", *maxTicks,
			"serving", addr,
		)

		// Remote viewers watch in real time; otherwise run flat out.
		var pace <-chan time.Time
		if server != nil {
			ticker := time.NewTicker(time.Second / time.Duration(max(cfg.Screen.TargetFPS, 1)))
			defer ticker.Stop()
			pace = ticker.C
		}
		for !done() {
			if pace != nil {
				select {
				case <-pace:
				case <-ctx.Done():
					return
				}
			}
			g.UpdateHeadless()
		}

	default:
		for !rl.WindowShouldClose() && !done() {
			g.Update()
			g.Draw()
		}
	}
}
