package ui

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morphgraph/schedule"
	"github.com/pthm-cable/morphgraph/surface"
)

// PanelState is what the control panel displays.
type PanelState struct {
	Function      surface.Name
	Mode          schedule.Mode
	Resolution    int
	MinResolution int
	MaxResolution int
	Hold          float64
	Transition    float64
	Backend       string
}

// Actions are the changes the user requested this frame.
type Actions struct {
	SelectFunction bool
	Function       surface.Name

	CycleMode bool

	SetResolution bool
	Resolution    int

	SetDurations bool
	Hold         float64
	Transition   float64

	SwitchBackend bool
}

// Maximum durations offered by the sliders.
const (
	maxHoldSlider       = 10
	maxTransitionSlider = 5
)

// ControlPanel renders the raygui control panel on the left side.
type ControlPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlPanel creates a visible control panel.
func NewControlPanel(x, y, width int32) *ControlPanel {
	return &ControlPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// Toggle switches panel visibility.
func (c *ControlPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlPanel) IsVisible() bool {
	return c.visible
}

// SetPosition moves the panel.
func (c *ControlPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Draw renders the panel and returns the requested actions.
func (c *ControlPanel) Draw(state PanelState) Actions {
	var act Actions
	if !c.visible {
		return act
	}

	r := c.renderer
	pad := float32(r.Theme.Padding)
	rowH := float32(24)
	names := surface.Names()

	// Title, function buttons, mode, three sliders, backend
	rows := float32(len(names)) + 7
	height := int32(rows*(rowH+4) + pad*2)
	r.DrawPanel(c.x, c.y, c.width, height)

	x := float32(c.x) + pad
	y := float32(c.y) + pad
	w := float32(c.width) - pad*2

	rl.DrawText("Function", int32(x), int32(y), r.Theme.HeaderFontSize, r.Theme.Header)
	y += rowH

	for _, name := range names {
		label := name.Title()
		if name == state.Function {
			label = "> " + label
		}
		if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: rowH}, label) && name != state.Function {
			act.SelectFunction = true
			act.Function = name
		}
		y += rowH + 4
	}

	y += 4
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: rowH}, "Mode: "+state.Mode.String()) {
		act.CycleMode = true
	}
	y += rowH + 4

	sliderX := x + 70
	sliderW := w - 110

	res := gui.SliderBar(
		rl.Rectangle{X: sliderX, Y: y, Width: sliderW, Height: rowH - 4},
		"Resolution",
		fmt.Sprintf("%d", state.Resolution),
		float32(state.Resolution),
		float32(state.MinResolution),
		float32(state.MaxResolution),
	)
	if n := int(math.Round(float64(res))); n != state.Resolution {
		act.SetResolution = true
		act.Resolution = n
	}
	y += rowH + 4

	hold := gui.SliderBar(
		rl.Rectangle{X: sliderX, Y: y, Width: sliderW, Height: rowH - 4},
		"Hold",
		fmt.Sprintf("%.1fs", state.Hold),
		float32(state.Hold),
		0,
		maxHoldSlider,
	)
	y += rowH + 4

	transition := gui.SliderBar(
		rl.Rectangle{X: sliderX, Y: y, Width: sliderW, Height: rowH - 4},
		"Morph",
		fmt.Sprintf("%.1fs", state.Transition),
		float32(state.Transition),
		0,
		maxTransitionSlider,
	)
	y += rowH + 4

	if quantize(hold) != quantize(float32(state.Hold)) || quantize(transition) != quantize(float32(state.Transition)) {
		act.SetDurations = true
		act.Hold = float64(quantize(hold))
		act.Transition = float64(quantize(transition))
	}

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: rowH}, "Backend: "+state.Backend) {
		act.SwitchBackend = true
	}

	return act
}

// quantize rounds slider durations to tenths so an untouched slider never
// reports a change.
func quantize(v float32) float32 {
	return float32(math.Round(float64(v)*10) / 10)
}
