// Package ui draws the HUD, the frame-rate readout and the raygui control
// panel.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds colors and metrics shared by the HUD and panels.
type Theme struct {
	PanelBg     rl.Color
	PanelBorder rl.Color
	Header      rl.Color
	Label       rl.Color
	Value       rl.Color
	Muted       rl.Color

	// Morph progress bar
	BarBg      rl.Color
	BarHolding rl.Color
	BarMorph   rl.Color

	// Frame counter lines: best, average, worst
	FrameLines [3]rl.Color

	// Perf panel phase shares above PhaseWarnPct / PhaseHotPct
	PhaseWarn    rl.Color
	PhaseHot     rl.Color
	PhaseWarnPct float64
	PhaseHotPct  float64

	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
	TitleFontSize  int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:     rl.Color{R: 20, G: 25, B: 30, A: 230},
		PanelBorder: rl.Color{R: 60, G: 70, B: 80, A: 255},
		Header:      rl.Yellow,
		Label:       rl.LightGray,
		Value:       rl.RayWhite,
		Muted:       rl.Gray,

		BarBg:      rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarHolding: rl.Color{R: 90, G: 110, B: 130, A: 255},
		BarMorph:   rl.Color{R: 240, G: 170, B: 60, A: 255},

		FrameLines: [3]rl.Color{rl.Green, rl.RayWhite, rl.Red},

		PhaseWarn:    rl.Orange,
		PhaseHot:     rl.Red,
		PhaseWarnPct: 25,
		PhaseHotPct:  50,

		Padding:        10,
		LineHeight:     16,
		LabelWidth:     80,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
		TitleFontSize:  20,
	}
}

// PhaseColor picks the perf panel color for a phase's share of the tick.
func (t Theme) PhaseColor(pct float64) rl.Color {
	switch {
	case pct > t.PhaseHotPct:
		return t.PhaseHot
	case pct > t.PhaseWarnPct:
		return t.PhaseWarn
	}
	return t.Label
}
