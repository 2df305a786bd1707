package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/goop/renderer"
	"github.com/pthm-cable/goop/sim"
)

// Orbit sensitivity in radians per pixel of mouse drag.
const orbitSensitivity = 0.005

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
		if g.paused {
			g.pointer.reset()
		}
	}

	// Manual morph advance, same effect as a full camera turn.
	if rl.IsKeyPressed(rl.KeyM) {
		g.sim.Morph.Advance()
	}

	if rl.IsKeyPressed(rl.KeyH) {
		g.showHUD = !g.showHUD
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.panel.Toggle()
	}

	g.handleCameraInput()
}

// handleResize propagates window size changes.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	if g.background != nil {
		g.background.Resize(int32(w), int32(h))
	}
}

// handleCameraInput processes orbit and dolly controls.
func (g *Game) handleCameraInput() {
	// Right-button drag orbits; the yaw travel feeds the morph trigger.
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		delta := rl.GetMouseDelta()
		g.cam.Orbit(delta.X*orbitSensitivity, -delta.Y*orbitSensitivity)
	}

	wheelMove := rl.GetMouseWheelMove()
	if wheelMove != 0 {
		g.cam.Dolly(1.0 - wheelMove*0.1)
	}

	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.cam.Dolly(0.8)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.cam.Dolly(1.25)
	}

	if rl.IsKeyPressed(rl.KeyR) || rl.IsKeyPressed(rl.KeyHome) {
		g.cam.Reset()
	}
}

// mouseRay returns the picking ray under the cursor in world coordinates.
func (g *Game) mouseRay() (origin, dir sim.Vec3) {
	ray := rl.GetMouseRay(rl.GetMousePosition(), renderer.RaylibCamera(g.cam))
	origin = sim.Vec3{X: ray.Position.X, Y: ray.Position.Y, Z: ray.Position.Z}
	dir = sim.Vec3{X: ray.Direction.X, Y: ray.Direction.Y, Z: ray.Direction.Z}
	return origin, dir
}
