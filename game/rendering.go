package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morphgraph/config"
	"github.com/pthm-cable/morphgraph/inspector"
	"github.com/pthm-cable/morphgraph/renderer"
	"github.com/pthm-cable/morphgraph/telemetry"
	"github.com/pthm-cable/morphgraph/ui"
)

const controlsLegend = "[N] Next  [M] Mode  [ [ ] ] Resolution  [B] Backend  [F] FPS/MS  [H] Panel  [P] Perf  [O] Orbit  [Space] Pause"

// Draw renders the frame.
func (g *Game) Draw() {
	g.perf.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 12, G: 14, B: 18, A: 255})

	// step leaves its tick open so drawing lands in the same sample.
	if !g.perf.InTick() {
		g.perf.StartTick()
	}
	g.perf.StartPhase(telemetry.PhaseDraw)

	rl.BeginMode3D(renderer.Camera3D(g.camera))
	g.graph.DrawBounds()
	switch g.backend {
	case config.BackendBuffer:
		g.graph.DrawBuffer(g.buffer)
	default:
		g.graph.DrawPoints(g.points)
		g.inspector.DrawSelectionHighlight(g.points)
	}
	rl.EndMode3D()

	g.perf.StartPhase(telemetry.PhaseUI)
	g.drawUI()
	g.perf.EndTick()

	rl.EndDrawing()
}

// drawUI renders the HUD, panels and frame counter.
func (g *Game) drawUI() {
	sched := g.engine.Schedule()
	schedCfg := g.engine.ScheduleConfig()

	g.hud.Draw(ui.HUDData{
		Schedule:   sched,
		Resolution: g.engine.Resolution(),
		Backend:    string(g.backend),
		Time:       g.engine.Time(),
		Frame:      g.frame,
		Paused:     g.paused,
		Hold:       g.engine.ScheduleConfig().Hold,
	})

	reading, ok := g.frames.Last()
	g.hud.DrawFrameCounter(reading, ok, g.frames.Mode(), g.screenWidth)

	act := g.panel.Draw(ui.PanelState{
		Function:      sched.Current,
		Mode:          schedCfg.Mode,
		Resolution:    g.engine.Resolution(),
		MinResolution: g.cfg.Graph.MinResolution,
		MaxResolution: g.engine.MaxResolution(),
		Hold:          schedCfg.Hold,
		Transition:    schedCfg.Transition,
		Backend:       string(g.backend),
	})
	g.applyActions(act)

	if idx, ok := g.inspector.Selected(); ok && g.backend == config.BackendCPU {
		pos, havePos := g.points.At(idx)
		u, v, haveUV := g.engine.At(idx)
		if havePos && haveUV && g.points.Len() == g.engine.Len() {
			g.inspector.Draw(inspector.CellInfo{
				Index:      idx,
				U:          u,
				V:          v,
				Position:   pos,
				Resolution: g.engine.Resolution(),
			})
		}
	}

	if g.showPerf {
		g.perfPanel.Draw(ui.PerfPanelData{
			Stats:    g.perf.Stats(),
			Registry: g.registry,
		})
	}

	g.hud.DrawControls(g.screenHeight, controlsLegend)
}
