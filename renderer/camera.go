package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/goop/camera"
)

// RaylibCamera converts the orbital camera into a raylib 3D camera.
func RaylibCamera(c *camera.Camera) rl.Camera3D {
	eye := c.Position()
	return rl.Camera3D{
		Position:   rl.Vector3{X: eye.X, Y: eye.Y, Z: eye.Z},
		Target:     rl.Vector3{X: c.Target.X, Y: c.Target.Y, Z: c.Target.Z},
		Up:         rl.Vector3{Y: 1},
		Fovy:       c.FOV,
		Projection: rl.CameraPerspective,
	}
}
