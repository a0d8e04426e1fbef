package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morphgraph/config"
	"github.com/pthm-cable/morphgraph/renderer"
	"github.com/pthm-cable/morphgraph/schedule"
	"github.com/pthm-cable/morphgraph/surface"
	"github.com/pthm-cable/morphgraph/ui"
)

// Resolution change per [ / ] key press.
const resolutionStep = 10

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyH) {
		g.panel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.showPerf = !g.showPerf
	}

	// Function and policy
	if rl.IsKeyPressed(rl.KeyN) || rl.IsKeyPressed(rl.KeyTab) {
		g.selectFunction(surface.Next(g.engine.Schedule().Current))
	}
	if rl.IsKeyPressed(rl.KeyM) {
		g.cycleMode()
	}

	// Resolution
	if rl.IsKeyPressed(rl.KeyRightBracket) {
		g.stepResolution(resolutionStep)
	}
	if rl.IsKeyPressed(rl.KeyLeftBracket) {
		g.stepResolution(-resolutionStep)
	}

	if rl.IsKeyPressed(rl.KeyB) {
		g.switchBackend()
	}
	if rl.IsKeyPressed(rl.KeyF) {
		g.ToggleDisplayMode()
	}
	if rl.IsKeyPressed(rl.KeyS) && g.snapshotDir != "" {
		g.SaveSnapshot()
	}

	g.handleCameraInput()

	if g.backend == config.BackendCPU {
		g.inspector.HandleInput(renderer.Camera3D(g.camera), g.points)
	}
}

// handleResize tracks window size for UI placement.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h
	g.perfPanel.SetPosition(w-260, 110)
	g.inspector.Resize(w, h)
}

// handleCameraInput processes orbit and zoom controls.
func (g *Game) handleCameraInput() {
	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Orbit(0.03)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Orbit(-0.03)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Raise(0.03)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Raise(-0.03)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	if rl.IsKeyPressed(rl.KeyO) {
		g.camera.ToggleOrbit()
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}

// applyActions performs the control panel's requests.
func (g *Game) applyActions(act ui.Actions) {
	if act.SelectFunction {
		g.selectFunction(act.Function)
	}
	if act.CycleMode {
		g.cycleMode()
	}
	if act.SetResolution {
		g.SetResolution(act.Resolution)
	}
	if act.SetDurations {
		if err := g.engine.SetDurations(act.Hold, act.Transition); err != nil {
			g.logger().Warn("durations rejected", "hold", act.Hold, "transition", act.Transition, "error", err)
		}
	}
	if act.SwitchBackend {
		g.switchBackend()
	}
}

func (g *Game) selectFunction(name surface.Name) {
	if err := g.engine.SetFunction(name); err != nil {
		g.logger().Warn("function rejected", "function", name.String(), "error", err)
	}
}

// cycleMode moves to the next advance mode.
func (g *Game) cycleMode() {
	modes := schedule.Modes()
	current := g.engine.ScheduleConfig().Mode
	next := modes[0]
	for i, m := range modes {
		if m == current {
			next = modes[(i+1)%len(modes)]
			break
		}
	}
	if err := g.engine.SetAdvanceMode(next); err != nil {
		g.logger().Warn("mode rejected", "mode", next.String(), "error", err)
		return
	}
	g.logger().Info("advance mode changed", "mode", next.String())
}

// stepResolution changes the resolution by delta, clamped to the UI range.
func (g *Game) stepResolution(delta int) {
	res := g.engine.Resolution() + delta
	if res < g.cfg.Graph.MinResolution {
		res = g.cfg.Graph.MinResolution
	}
	if limit := g.engine.MaxResolution(); limit > 0 && res > limit {
		res = limit
	}
	g.SetResolution(res)
}

func (g *Game) switchBackend() {
	if err := g.SwitchBackend(); err != nil {
		g.logger().Warn("backend switch failed", "error", err)
	}
}
