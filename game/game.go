// Package game hosts the graph: it owns the engine, the chosen backend's
// storage, and the window-side camera, renderer and UI.
package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/morphgraph/camera"
	"github.com/pthm-cable/morphgraph/config"
	"github.com/pthm-cable/morphgraph/engine"
	"github.com/pthm-cable/morphgraph/grid"
	"github.com/pthm-cable/morphgraph/inspector"
	"github.com/pthm-cable/morphgraph/renderer"
	"github.com/pthm-cable/morphgraph/schedule"
	"github.com/pthm-cable/morphgraph/systems"
	"github.com/pthm-cable/morphgraph/telemetry"
	"github.com/pthm-cable/morphgraph/ui"
)

// Game holds the complete viewer state.
type Game struct {
	cfg    *config.Config
	engine *engine.Engine

	// Backend storage; only the active backend's storage is allocated
	backend  config.Backend
	world    *ecs.World
	points   *systems.PointPool
	buffer   []float32
	uniforms grid.Uniforms

	// Window-side state (nil when headless)
	camera    *camera.Camera
	graph     *renderer.GraphRenderer
	hud       *ui.HUD
	panel     *ui.ControlPanel
	perfPanel *ui.PerfPanel
	registry  *systems.SystemRegistry
	inspector *inspector.Inspector

	// Telemetry
	runID       string
	seed        int64
	snapshotDir string
	perf        *telemetry.PerfCollector
	frames      *telemetry.FrameCounter
	output      *telemetry.OutputManager
	logStats    bool
	nextPerfLog float64

	frame    int64
	paused   bool
	showPerf bool
	headless bool
	fixedDT  float64

	screenWidth, screenHeight int32
}

// Update processes input and advances one frame by dt seconds.
func (g *Game) Update(dt float32) {
	g.handleInput()
	if g.paused {
		return
	}
	if g.camera != nil {
		g.camera.Update(dt)
	}
	g.step(float64(dt))
}

// UpdateHeadless advances one fixed step without touching the window.
func (g *Game) UpdateHeadless() {
	g.step(g.fixedDT)
}

// step runs one frame: evaluate through the active backend, then telemetry.
func (g *Game) step(dt float64) {
	g.perf.StartTick()

	before := g.engine.Schedule()

	switch g.backend {
	case config.BackendBuffer:
		g.perf.StartPhase(telemetry.PhaseEvaluate)
		g.buffer, g.uniforms = g.engine.TickPacked(dt)

	default:
		g.perf.StartPhase(telemetry.PhaseEvaluate)
		positions := g.engine.Tick(dt)

		if g.points.Len() != len(positions) {
			g.perf.StartPhase(telemetry.PhaseRebuild)
			g.points.Rebuild(len(positions), float32(g.engine.Step()))
		}
		g.perf.StartPhase(telemetry.PhaseWrite)
		g.points.Write(positions)
	}

	if g.headless {
		g.perf.EndTick()
	}
	g.frame++

	after := g.engine.Schedule()
	if before.State == schedule.Holding && after.State == schedule.Transitioning {
		g.recordTransition(after)
	}
	g.flushTelemetry(dt)
}

// Tick returns the number of frames stepped so far.
func (g *Game) Tick() int64 {
	return g.frame
}

// Engine exposes the underlying engine.
func (g *Game) Engine() *engine.Engine {
	return g.engine
}

// Backend returns the active backend.
func (g *Game) Backend() config.Backend {
	return g.backend
}

// Points returns the CPU backend's point pool.
func (g *Game) Points() *systems.PointPool {
	return g.points
}

// Buffer returns the buffer backend's last packed positions and uniforms.
func (g *Game) Buffer() ([]float32, grid.Uniforms) {
	return g.buffer, g.uniforms
}

// logger tags game events with the active backend.
func (g *Game) logger() *slog.Logger {
	return slog.Default().With("run_id", g.runID, "backend", string(g.backend))
}
