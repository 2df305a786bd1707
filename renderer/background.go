package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Background renders a slowly breathing vertical gradient behind the fluid.
type Background struct {
	width, height int32
}

// NewBackground creates a background sized to the window.
func NewBackground(width, height int32) *Background {
	return &Background{width: width, height: height}
}

// Resize updates the background dimensions after a window resize.
func (b *Background) Resize(width, height int32) {
	b.width = width
	b.height = height
}

// Draw fills the frame with the gradient. The top color drifts with time so
// a paused simulation still reads as alive.
func (b *Background) Draw(time float32) {
	pulse := float32(math.Sin(float64(time)*0.2))*0.5 + 0.5

	top := rl.Color{
		R: uint8(18 + pulse*10),
		G: uint8(20 + pulse*8),
		B: uint8(38 + pulse*14),
		A: 255,
	}
	bottom := rl.Color{R: 4, G: 5, B: 12, A: 255}

	rl.DrawRectangleGradientV(0, 0, b.width, b.height, top, bottom)
}
