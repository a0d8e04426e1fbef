package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morphgraph/config"
	"github.com/pthm-cable/morphgraph/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output frame rate and perf stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for frame snapshots (S key; end of headless runs)")
	seed := flag.Int64("seed", 0, "RNG seed for random advance modes (0 = config, then time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	backend := flag.String("backend", "", "Backend: cpu or buffer (empty = config)")
	resolution := flag.Int("resolution", 0, "Grid resolution (0 = config)")
	dt := flag.Float64("dt", 0, "Headless step in seconds (0 = 1/target_fps)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	logFormat := flag.String("log-format", "json", "Log format: json or pretty")

	flag.Parse()

	logger, err := newLogger(*logFormat, *debug)
	if err != nil {
		slog.Error("invalid log format", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	opts := game.Options{
		Config:      cfg,
		Resolution:  *resolution,
		Seed:        *seed,
		OutputDir:   *outputDir,
		SnapshotDir: *snapshotDir,
		Headless:    *headless,
		LogStats:    *logStats,
		FixedDT:     *dt,
	}
	if *backend != "" {
		b, err := config.ParseBackend(*backend)
		if err != nil {
			slog.Error("invalid backend", "error", err)
			os.Exit(1)
		}
		opts.Backend = b
	}

	if *headless {
		// Headless mode - no raylib window needed
		g, err := game.NewGame(opts)
		if err != nil {
			slog.Error("failed to start", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		slog.Info("starting headless run",
			"max_ticks", *maxTicks,
			"dt", *dt,
		)

		for {
			g.UpdateHeadless()

			if *maxTicks > 0 && g.Tick() >= int64(*maxTicks) {
				slog.Info("max ticks reached", "tick", g.Tick(), "time", g.Engine().Time())
				g.SaveSnapshot()
				return
			}
		}
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Morph Graph")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		return
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update(rl.GetFrameTime())
		g.Draw()

		if *maxTicks > 0 && g.Tick() >= int64(*maxTicks) {
			break
		}
	}
}
