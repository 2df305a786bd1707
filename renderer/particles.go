package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/goop/camera"
	"github.com/pthm-cable/goop/sim"
)

// shapePalettes gives each target shape its own base color; the fluid
// blends between them during a morph.
var shapePalettes = [sim.NumShapes]rl.Color{
	{R: 90, G: 170, B: 255, A: 255},  // sphere: cool blue
	{R: 255, G: 140, B: 90, A: 255},  // torus: warm orange
	{R: 160, G: 255, B: 140, A: 255}, // blob: green
}

// particleSize is the cube edge in world units (the domain is a unit cube).
const particleSize = 0.004

// ParticleRenderer draws the particle cloud inside the 3D view.
type ParticleRenderer struct {
	showBounds bool
}

// NewParticleRenderer creates a particle renderer.
func NewParticleRenderer() *ParticleRenderer {
	return &ParticleRenderer{showBounds: true}
}

// Draw renders all active particles, colored by shape and brightened by
// speed so internal motion stays visible.
func (r *ParticleRenderer) Draw(s *sim.Simulation, cam *camera.Camera) {
	rlCam := RaylibCamera(cam)
	rl.BeginMode3D(rlCam)

	base := blendColor(
		shapePalettes[s.Morph.Current],
		shapePalettes[s.Morph.Next],
		s.Morph.Progress,
	)

	p := s.Particles()
	for i := 0; i < p.Count; i++ {
		pos := p.Pos[i]
		speed := p.Vel[i].Length()

		// Slow particles sit at 60% brightness, fast ones at full.
		bright := 0.6 + speed*0.4
		if bright > 1 {
			bright = 1
		}
		c := rl.Color{
			R: uint8(float32(base.R) * bright),
			G: uint8(float32(base.G) * bright),
			B: uint8(float32(base.B) * bright),
			A: 255,
		}

		rl.DrawCubeV(
			rl.Vector3{X: pos.X, Y: pos.Y, Z: pos.Z},
			rl.Vector3{X: particleSize, Y: particleSize, Z: particleSize},
			c,
		)
	}

	if r.showBounds {
		rl.DrawCubeWiresV(
			rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5},
			rl.Vector3{X: 1, Y: 1, Z: 1},
			rl.Color{R: 60, G: 64, B: 90, A: 255},
		)
	}

	rl.EndMode3D()
}

// SetShowBounds toggles the domain wireframe.
func (r *ParticleRenderer) SetShowBounds(show bool) {
	r.showBounds = show
}

// blendColor linearly interpolates between two colors.
func blendColor(a, b rl.Color, t float32) rl.Color {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return rl.Color{
		R: uint8(float32(a.R) + (float32(b.R)-float32(a.R))*t),
		G: uint8(float32(a.G) + (float32(b.G)-float32(a.G))*t),
		B: uint8(float32(a.B) + (float32(b.B)-float32(a.B))*t),
		A: 255,
	}
}
