// Package inspector lets the user click a cell of the graph and shows its
// grid coordinates and position.
package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morphgraph/components"
	"github.com/pthm-cable/morphgraph/systems"
)

// Panel dimensions
const (
	PanelWidth   = 260
	PanelHeight  = 170
	PanelPadding = 10
	HeaderHeight = 30
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorHighlight   = rl.Color{R: 255, G: 220, B: 80, A: 255}
)

// CellInfo is what the panel shows for the selected cell.
type CellInfo struct {
	Index      int
	U, V       float64
	Position   components.Position
	Resolution int
}

// Inspector manages cell selection and panel rendering.
type Inspector struct {
	selected    int
	hasSelected bool
	panelX      int32
	panelY      int32
}

// NewInspector creates an inspector whose panel sits at the bottom right.
func NewInspector(screenWidth, screenHeight int32) *Inspector {
	ins := &Inspector{}
	ins.Resize(screenWidth, screenHeight)
	return ins
}

// Resize repositions the panel.
func (ins *Inspector) Resize(screenWidth, screenHeight int32) {
	ins.panelX = screenWidth - PanelWidth - 10
	ins.panelY = screenHeight - PanelHeight - 40
}

// HandleInput selects the cell under the mouse on left click.
func (ins *Inspector) HandleInput(cam rl.Camera3D, pool *systems.PointPool) {
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) || rl.IsKeyPressed(rl.KeyEscape) {
		ins.Deselect()
		return
	}
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}

	mouse := rl.GetMousePosition()

	// Clicks on the panel never change the selection
	if ins.hasSelected &&
		int32(mouse.X) >= ins.panelX && int32(mouse.X) <= ins.panelX+PanelWidth &&
		int32(mouse.Y) >= ins.panelY && int32(mouse.Y) <= ins.panelY+PanelHeight {
		return
	}

	ray := rl.GetScreenToWorldRay(mouse, cam)
	idx, ok := pool.PickCell(systems.Ray{
		OX: ray.Position.X, OY: ray.Position.Y, OZ: ray.Position.Z,
		DX: ray.Direction.X, DY: ray.Direction.Y, DZ: ray.Direction.Z,
	})
	if ok {
		ins.selected = idx
		ins.hasSelected = true
	}
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the selected cell index.
func (ins *Inspector) Selected() (int, bool) {
	return ins.selected, ins.hasSelected
}

// DrawSelectionHighlight outlines the selected cell. Call inside 3D mode.
func (ins *Inspector) DrawSelectionHighlight(pool *systems.PointPool) {
	if !ins.hasSelected {
		return
	}
	pos, ok := pool.At(ins.selected)
	if !ok {
		ins.Deselect()
		return
	}
	s := pool.Size() * 1.6
	rl.DrawCubeWiresV(rl.Vector3{X: pos.X, Y: pos.Y, Z: pos.Z}, rl.Vector3{X: s, Y: s, Z: s}, ColorHighlight)
}

// Draw renders the panel for the selected cell.
func (ins *Inspector) Draw(info CellInfo) {
	if !ins.hasSelected {
		return
	}

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, PanelHeight, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: PanelHeight},
		1,
		ColorPanelBorder,
	)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText("CELL", ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	y := ins.panelY + HeaderHeight + PanelPadding
	x := ins.panelX + PanelPadding

	row, col := 0, 0
	if info.Resolution > 0 {
		row, col = info.Index/info.Resolution, info.Index%info.Resolution
	}
	y += DrawLabel(x, y, "Index", fmt.Sprintf("%d  (u %d, v %d)", info.Index, row, col))
	y += DrawLabel(x, y, "UV", fmt.Sprintf("(%.3f, %.3f)", info.U, info.V))
	y += 4
	y += DrawSigned(x, y, "X", info.Position.X)
	y += DrawSigned(x, y, "Y", info.Position.Y)
	DrawSigned(x, y, "Z", info.Position.Z)
}
