package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morphgraph/schedule"
	"github.com/pthm-cable/morphgraph/systems"
	"github.com/pthm-cable/morphgraph/telemetry"
)

// HUDData holds everything the main HUD shows.
type HUDData struct {
	Schedule   schedule.Snapshot
	Resolution int
	Backend    string
	Time       float64
	Frame      int64
	Paused     bool
	Hold       float64 // Seconds per hold, for the countdown bar
}

// HUD renders the heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the schedule status in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	x, y := int32(10), int32(10)

	title := data.Schedule.Current.Title()
	if data.Schedule.State == schedule.Transitioning {
		title = fmt.Sprintf("%s -> %s", data.Schedule.Previous.Title(), data.Schedule.Current.Title())
	}
	rl.DrawText(title, x, y, r.Theme.TitleFontSize, r.Theme.Value)
	y += r.Theme.TitleFontSize + 6

	y = r.DrawLabelValue(x, y, "Mode", data.Schedule.Mode.String())
	y = r.DrawLabelValue(x, y, "Resolution", fmt.Sprintf("%d (%s)", data.Resolution, data.Backend))
	y = r.DrawLabelValue(x, y, "Time", fmt.Sprintf("%.1fs  frame %d", data.Time, data.Frame))
	switch {
	case data.Schedule.State == schedule.Transitioning:
		y = r.DrawProgress(x, y, "Morph", data.Schedule.Eased, 260, true)
	case data.Schedule.Mode != schedule.Static && data.Hold > 0:
		y = r.DrawProgress(x, y, "Hold", data.Schedule.Elapsed/data.Hold, 260, false)
	}
	if data.Paused {
		r.DrawHeader(x, y, "PAUSED")
	}
}

// DrawFrameCounter renders the best/average/worst block in the top-right
// corner. Before the first reading it shows the mode only.
func (h *HUD) DrawFrameCounter(reading telemetry.FrameReading, ok bool, mode telemetry.DisplayMode, screenWidth int32) {
	text := mode.String()
	if ok {
		text = reading.Text()
	}
	lines := strings.Split(text, "\n")

	fontSize := int32(16)
	x := screenWidth - 80
	y := int32(10)
	colors := h.renderer.Theme.FrameLines
	for i, line := range lines {
		color := h.renderer.Theme.Header
		if i > 0 && i <= len(colors) {
			color = colors[i-1]
		}
		rl.DrawText(line, x, y, fontSize, color)
		y += fontSize + 2
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, h.renderer.Theme.Muted)
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	Stats    telemetry.PerfStats
	Registry *systems.SystemRegistry
}

// PerfPanel renders per-phase frame timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(data PerfPanelData) {
	x := p.x
	y := p.y

	y = p.renderer.DrawHeader(x, y, "Frame Phases")

	rl.DrawText(fmt.Sprintf("Total: %s  jitter %s",
		data.Stats.AvgTickDuration.Round(time.Microsecond),
		data.Stats.TickJitter.Round(time.Microsecond)), x, y, 14, p.renderer.Theme.Value)
	y += 16

	reg := data.Registry
	for _, cat := range reg.Categories() {
		rl.DrawText(cat, x, y, 12, p.renderer.Theme.Muted)
		y += 14
		for _, info := range reg.ByCategory(cat) {
			y = p.drawPhase(x, y, info.Name, info.ID, data.Stats)
		}
	}

	// Phases timed by the collector but not registered
	var extra []string
	for id := range data.Stats.PhaseAvg {
		if _, ok := reg.Get(id); !ok {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	for _, id := range extra {
		y = p.drawPhase(x, y, reg.GetName(id), id, data.Stats)
	}
}

func (p *PerfPanel) drawPhase(x, y int32, name, id string, stats telemetry.PerfStats) int32 {
	avg := stats.PhaseAvg[id]
	peak := stats.PhaseMax[id]
	pct := stats.PhasePct[id]

	rl.DrawText(
		fmt.Sprintf("  %-8s %8s %8s %5.1f%%", name, avg.Round(time.Microsecond), peak.Round(time.Microsecond), pct),
		x, y, 12, p.renderer.Theme.PhaseColor(pct),
	)
	return y + 14
}
