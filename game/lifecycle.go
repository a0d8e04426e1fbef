package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/morphgraph/camera"
	"github.com/pthm-cable/morphgraph/config"
	"github.com/pthm-cable/morphgraph/engine"
	"github.com/pthm-cable/morphgraph/inspector"
	"github.com/pthm-cable/morphgraph/renderer"
	"github.com/pthm-cable/morphgraph/systems"
	"github.com/pthm-cable/morphgraph/telemetry"
	"github.com/pthm-cable/morphgraph/ui"
)

// NewGame creates a game. In graphical mode the raylib window must already be
// open.
func NewGame(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	backend := cfg.Graph.Backend
	if opts.Backend != "" {
		backend = opts.Backend
	}
	resolution := cfg.Graph.Resolution
	if opts.Resolution > 0 {
		resolution = opts.Resolution
	}
	seed := opts.Seed
	if seed == 0 {
		seed = cfg.Schedule.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	eng, err := engine.New(engine.Options{
		Resolution:    resolution,
		MaxResolution: cfg.Graph.MaxResolutionFor(backend),
		Initial:       cfg.Graph.Function,
		Schedule:      cfg.Schedule.Config,
		Seed:          seed,
		Logger:        slog.Default(),
	})
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}

	mode, err := telemetry.ParseDisplayMode(cfg.Telemetry.DisplayMode)
	if err != nil {
		return nil, err
	}

	fixedDT := opts.FixedDT
	if fixedDT <= 0 {
		fixedDT = 1 / float64(cfg.Screen.TargetFPS)
	}

	world := ecs.NewWorld()
	g := &Game{
		cfg:          cfg,
		engine:       eng,
		backend:      backend,
		world:        world,
		points:       systems.NewPointPool(world),
		runID:        uuid.NewString(),
		seed:         seed,
		snapshotDir:  opts.SnapshotDir,
		perf:         telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		frames:       telemetry.NewFrameCounter(cfg.Telemetry.SampleDuration, mode),
		logStats:     opts.LogStats,
		nextPerfLog:  cfg.Telemetry.LogInterval,
		headless:     opts.Headless,
		fixedDT:      fixedDT,
		screenWidth:  int32(cfg.Screen.Width),
		screenHeight: int32(cfg.Screen.Height),
	}

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("creating output manager: %w", err)
		}
		if err := om.WriteConfig(cfg); err != nil {
			om.Close()
			return nil, fmt.Errorf("writing config snapshot: %w", err)
		}
		g.output = om
	}

	if !opts.Headless {
		c := cfg.Camera
		g.camera = camera.New(
			float32(c.Distance), float32(c.Height), float32(c.Fovy),
			float32(c.OrbitSpeed), float32(c.MinDistance), float32(c.MaxDistance),
		)
		g.graph = renderer.NewGraphRenderer()
		g.hud = ui.NewHUD()
		g.panel = ui.NewControlPanel(10, 130, 240)
		g.registry = systems.NewSystemRegistry()
		g.perfPanel = ui.NewPerfPanel(g.screenWidth-260, 110)
		g.inspector = inspector.NewInspector(g.screenWidth, g.screenHeight)
	}

	slog.Info("game initialized",
		"run_id", g.runID,
		"backend", string(backend),
		"resolution", resolution,
		"seed", seed,
		"headless", opts.Headless,
	)

	return g, nil
}

// SwitchBackend releases the active backend's storage and moves to the other
// one, clamping the resolution to the new backend's limit.
func (g *Game) SwitchBackend() error {
	next := config.BackendBuffer
	if g.backend == config.BackendBuffer {
		next = config.BackendCPU
	}
	return g.SetBackend(next)
}

// SetBackend switches to the given backend.
func (g *Game) SetBackend(b config.Backend) error {
	if b == g.backend {
		return nil
	}
	if err := g.engine.SetMaxResolution(g.cfg.Graph.MaxResolutionFor(b)); err != nil {
		return err
	}

	switch g.backend {
	case config.BackendBuffer:
		g.buffer = nil
	default:
		g.points.Release()
		if g.inspector != nil {
			g.inspector.Deselect()
		}
	}
	g.backend = b

	slog.Info("backend switched",
		"backend", string(b),
		"resolution", g.engine.Resolution(),
		"max_resolution", g.engine.MaxResolution(),
	)
	return nil
}

// SetResolution changes the grid resolution. CPU points are rebuilt on the
// next step.
func (g *Game) SetResolution(res int) error {
	if err := g.engine.SetResolution(res); err != nil {
		g.logger().Warn("resolution rejected", "resolution", res, "error", err)
		return err
	}
	if g.inspector != nil {
		g.inspector.Deselect()
	}
	return nil
}

// Unload releases all resources and flushes output files.
func (g *Game) Unload() {
	g.points.Release()
	g.buffer = nil
	g.engine.Shutdown()

	if g.output != nil {
		if err := g.output.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
		g.output = nil
	}
}
