// Package ui renders the HUD and the parameter panel.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// shapeNames labels the three targets in HUD order.
var shapeNames = [...]string{"sphere", "torus", "blob"}

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Frame         int
	Particles     int
	ShapeCurrent  int
	ShapeNext     int
	MorphProgress float32
	FPS           int32
	Paused        bool
}

// HUD renders the main heads-up display.
type HUD struct{}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText("Goop", 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Particles: %d | Frame: %d | FPS: %d", data.Particles, data.Frame, data.FPS),
		10, 35, 16, rl.LightGray,
	)

	shape := shapeName(data.ShapeCurrent)
	if data.ShapeCurrent != data.ShapeNext {
		shape = fmt.Sprintf("%s -> %s (%.0f%%)",
			shapeName(data.ShapeCurrent), shapeName(data.ShapeNext), data.MorphProgress*100)
	}
	rl.DrawText(fmt.Sprintf("Shape: %s", shape), 10, 55, 16, rl.LightGray)

	statusText := "Running"
	statusColor := rl.Green
	if data.Paused {
		statusText = "PAUSED"
		statusColor = rl.Yellow
	}
	rl.DrawText(statusText, 10, 75, 16, statusColor)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// shapeName returns a display label for a shape index.
func shapeName(i int) string {
	if i < 0 || i >= len(shapeNames) {
		return fmt.Sprintf("shape %d", i)
	}
	return shapeNames[i]
}
