// Surface preview tool - top-down heightmap of one function or a morph
// between two, with sliders for time and progress.
//
// Usage: go run ./cmd/surfacepreview
package main

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morphgraph/grid"
	"github.com/pthm-cable/morphgraph/renderer"
	"github.com/pthm-cable/morphgraph/surface"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	gridSize     = 256
	panelWidth   = windowWidth - previewSize - 30
)

// previewSource blends two fixed functions at a fixed progress.
type previewSource struct {
	from, to surface.Name
	progress float64
}

func (s previewSource) Current() surface.Name  { return s.to }
func (s previewSource) Previous() surface.Name { return s.from }
func (s previewSource) Blending() bool         { return s.from != s.to }
func (s previewSource) EasedProgress() float64 { return s.progress }

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Surface Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	g, err := grid.Build(gridSize)
	if err != nil {
		panic(err)
	}
	defer g.Release()

	heightmap := renderer.NewHeightmap(gridSize)
	defer heightmap.Unload()

	src := previewSource{from: surface.Wave, to: surface.Ripple, progress: 0}
	var time float32
	animating := false
	needsRegen := true
	var positions []surface.Point3

	count := surface.Count()

	for !rl.WindowShouldClose() {
		if animating {
			time += rl.GetFrameTime()
			needsRegen = true
		}

		if needsRegen {
			positions = g.Evaluate(src, float64(time), positions)
			heightmap.Update(positions)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		heightmap.Draw(10, 10, previewSize)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		minY, maxY := math.Inf(1), math.Inf(-1)
		var sumY float64
		for _, p := range positions {
			minY = math.Min(minY, p.Y)
			maxY = math.Max(maxY, p.Y)
			sumY += p.Y
		}
		avgY := sumY / float64(len(positions))

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Y min: %.3f  max: %.3f  avg: %.3f", minY, maxY, avgY), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Time: %.2f  Kernel: %d", time, surface.KernelIndex(src.to, src.from, src.Blending())), 15, statsY+20, 16, rl.DarkGray)

		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Surface Preview", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		// From function
		rl.DrawText("From: "+src.from.Title(), int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newFrom := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"", fmt.Sprintf("%d", src.from),
			float32(src.from), 0, float32(count-1),
		)
		if n := surface.Name(math.Round(float64(newFrom))); n != src.from {
			src.from = n
			needsRegen = true
		}
		panelY += 35

		// To function
		rl.DrawText("To: "+src.to.Title(), int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newTo := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"", fmt.Sprintf("%d", src.to),
			float32(src.to), 0, float32(count-1),
		)
		if n := surface.Name(math.Round(float64(newTo))); n != src.to {
			src.to = n
			needsRegen = true
		}
		panelY += 35

		// Progress
		rl.DrawText("Progress (0 = from, 1 = to)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newProgress := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", fmt.Sprintf("%.2f", src.progress),
			float32(src.progress), 0, 1,
		)
		if float64(newProgress) != src.progress {
			src.progress = float64(newProgress)
			needsRegen = true
		}
		panelY += 35

		// Time
		rl.DrawText("Time", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newTime := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "10",
			time, 0, 10,
		)
		if newTime != time {
			time = newTime
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset Time") {
			time = 0
			needsRegen = true
		}
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Swap") {
			src.from, src.to = src.to, src.from
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Next Pair") {
			src.from = surface.Next(src.from)
			src.to = surface.Next(src.to)
			needsRegen = true
		}

		rl.EndDrawing()
	}
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
