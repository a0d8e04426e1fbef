package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morphgraph/camera"
)

// Camera3D converts the orbit camera into a raylib perspective camera aimed
// at the origin.
func Camera3D(c *camera.Camera) rl.Camera3D {
	x, y, z := c.Position()
	return rl.Camera3D{
		Position:   rl.Vector3{X: x, Y: y, Z: z},
		Target:     rl.Vector3{},
		Up:         rl.Vector3{Y: 1},
		Fovy:       c.Fovy,
		Projection: rl.CameraPerspective,
	}
}
