package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer draws themed primitives.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawHeader draws a section title and returns the next line's Y.
func (r *Renderer) DrawHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.Header)
	return y + r.Theme.LineHeight + 2
}

// DrawLabelValue draws "label: value" and returns the next line's Y.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.Label)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.Value)
	return y + r.Theme.LineHeight
}

// DrawProgress draws a [0, 1] bar with its value as a percentage. morphing
// selects the transition fill color.
func (r *Renderer) DrawProgress(x, y int32, label string, value float64, width int32, morphing bool) int32 {
	value = min(max(value, 0), 1)

	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 50
	fill := r.Theme.BarHolding
	if morphing {
		fill = r.Theme.BarMorph
	}

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.Label)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)
	rl.DrawRectangle(barX, y+2, int32(float64(barWidth)*value), r.Theme.BarHeight, fill)
	rl.DrawText(fmt.Sprintf("%3.0f%%", value*100), barX+barWidth+5, y, r.Theme.FontSize, r.Theme.Value)

	return y + r.Theme.LineHeight + 2
}
