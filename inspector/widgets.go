package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Widget colors
var (
	ColorBarBg   = rl.Color{R: 40, G: 40, B: 40, A: 255}
	ColorBarFill = rl.Color{R: 100, G: 180, B: 100, A: 255}
	ColorText    = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim = rl.Color{R: 150, G: 150, B: 150, A: 255}
)

// DrawLabel renders a "name: value" line and returns its height.
func DrawLabel(x, y int32, name, value string) int32 {
	rl.DrawText(fmt.Sprintf("%s: %s", name, value), x, y, 14, ColorText)
	return 18
}

// DrawSigned renders a bar for a value in [-1, 1] filled from the center.
func DrawSigned(x, y int32, name string, value float32) int32 {
	barWidth := int32(120)
	barHeight := int32(12)

	rl.DrawText(name, x, y, 14, ColorTextDim)

	barX := x + 80
	rl.DrawRectangle(barX, y+1, barWidth, barHeight, ColorBarBg)

	if value > 1 {
		value = 1
	} else if value < -1 {
		value = -1
	}
	center := barX + barWidth/2
	fill := int32(float32(barWidth/2) * value)
	if fill >= 0 {
		rl.DrawRectangle(center, y+1, fill, barHeight, ColorBarFill)
	} else {
		rl.DrawRectangle(center+fill, y+1, -fill, barHeight, ColorBarFill)
	}
	rl.DrawLine(center, y, center, y+barHeight+2, ColorTextDim)

	rl.DrawText(fmt.Sprintf("%+.3f", value), barX+barWidth+5, y, 14, ColorTextDim)
	return 18
}
