// Package renderer draws the sampled graph with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morphgraph/components"
	"github.com/pthm-cable/morphgraph/systems"
)

// GraphRenderer draws one graph frame in world space. Call between
// rl.BeginMode3D and rl.EndMode3D.
type GraphRenderer struct {
	// Draw wireframe edges on cubes (costly above ~100 resolution)
	Wires bool

	// Alpha applied to every primitive
	Alpha uint8
}

// NewGraphRenderer creates a renderer with opaque primitives.
func NewGraphRenderer() *GraphRenderer {
	return &GraphRenderer{Alpha: 255}
}

// PointColor maps a position in the [-1,1] cube to RGB, so x reads as red,
// y as green and z as blue.
func PointColor(x, y, z float32, alpha uint8) rl.Color {
	return rl.Color{
		R: channel(x),
		G: channel(y),
		B: channel(z),
		A: alpha,
	}
}

func channel(v float32) uint8 {
	c := v*0.5 + 0.5
	if c < 0 {
		c = 0
	} else if c > 1 {
		c = 1
	}
	return uint8(c * 255)
}

// DrawPoints draws one cube per pool entity.
func (r *GraphRenderer) DrawPoints(pool *systems.PointPool) {
	pool.Each(func(pos *components.Position, scale *components.Scale, _ *components.Cell) {
		center := rl.Vector3{X: pos.X, Y: pos.Y, Z: pos.Z}
		size := rl.Vector3{X: scale.Size, Y: scale.Size, Z: scale.Size}
		rl.DrawCubeV(center, size, PointColor(pos.X, pos.Y, pos.Z, r.Alpha))
		if r.Wires {
			rl.DrawCubeWiresV(center, size, rl.Color{R: 0, G: 0, B: 0, A: 60})
		}
	})
}

// DrawBuffer draws a packed xyz buffer as points.
func (r *GraphRenderer) DrawBuffer(buf []float32) {
	for i := 0; i+2 < len(buf); i += 3 {
		x, y, z := buf[i], buf[i+1], buf[i+2]
		rl.DrawPoint3D(rl.Vector3{X: x, Y: y, Z: z}, PointColor(x, y, z, r.Alpha))
	}
}

// DrawBounds outlines the [-1,1] cube and the ground plane.
func (r *GraphRenderer) DrawBounds() {
	rl.DrawCubeWires(rl.Vector3{}, 2, 2, 2, rl.Color{R: 80, G: 80, B: 90, A: 255})
	rl.DrawGrid(10, 0.2)
}
