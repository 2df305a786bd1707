package sim

import "fmt"

// Default force constants.
const (
	// DefaultStiffness is the morph spring constant pulling particles
	// toward their blended target.
	DefaultStiffness = 200.0
	// DefaultDamping is the unconditional per-frame velocity decay.
	DefaultDamping = 0.85
	// MaxPointerForce caps the per-frame pointer displacement magnitude.
	MaxPointerForce = 10.0
	// MaxDT caps the per-frame timestep so a long stall cannot explode
	// the integration.
	MaxDT = 1.0 / 30.0
)

// Params are the process-wide tunables. They belong to the frame loop:
// written at most once between frames, snapshotted into an immutable frame
// before the stage sequence starts, and never touched mid-frame.
type Params struct {
	Gravity Vec3

	// Viscosity scales the symmetric part of C in the stress tensor.
	Viscosity float32
	// RestDensity, EOSStiffness and EOSPower form the equation-of-state
	// pressure term. Stiffness ships at zero, so the fluid is
	// viscosity-only, but the term stays in the formula.
	RestDensity  float32
	EOSStiffness float32
	EOSPower     float32

	Stiffness float32
	Damping   float32

	TurbFrequency float32
	TurbStrength  float32

	Wave2Frequency float32
	Wave2Strength  float32

	// FluidStrength scales every gathered grid velocity term in G2P.
	FluidStrength float32

	// MouseForce scales the pointer displacement before the per-frame cap.
	MouseForce float32

	// MorphDuration is the length of a shape transition in seconds.
	MorphDuration float32
}

// DefaultParams returns the tuning the interactive demo ships with.
func DefaultParams() Params {
	return Params{
		Gravity:        Vec3{0, -1.2, 0},
		Viscosity:      0.12,
		RestDensity:    4.0,
		EOSStiffness:   0,
		EOSPower:       4.0,
		Stiffness:      DefaultStiffness,
		Damping:        DefaultDamping,
		TurbFrequency:  3.0,
		TurbStrength:   0.25,
		Wave2Frequency: 9.0,
		Wave2Strength:  0.6,
		FluidStrength:  1.0,
		MouseForce:     1.0,
		MorphDuration:  2.0,
	}
}

// Validate rejects parameter combinations the pipeline cannot run under.
func (p *Params) Validate() error {
	if p.RestDensity <= 0 {
		return fmt.Errorf("params: rest density %g must be positive", p.RestDensity)
	}
	if p.MorphDuration <= 0 {
		return fmt.Errorf("params: morph duration %g must be positive", p.MorphDuration)
	}
	if p.FluidStrength < 0 {
		return fmt.Errorf("params: fluid strength %g must be non-negative", p.FluidStrength)
	}
	return nil
}

// PointerState is the per-frame pointer input: a picking ray plus the
// world-space displacement of the pointer since the previous frame.
type PointerState struct {
	Origin Vec3
	Dir    Vec3
	Delta  Vec3
}

// frame is the immutable per-frame snapshot every kernel reads. Built once
// by Step before the stage sequence, never mutated during it.
type frame struct {
	dt   float32
	time float32

	gravity      Vec3
	viscosity    float32
	restDensity  float32
	eosStiffness float32
	eosPower     float32

	stiffness float32
	damping   float32

	turbFreq     float32
	turbStrength float32

	wave2Freq     float32
	wave2Strength float32

	fluidStrength float32

	ptrOrigin Vec3
	ptrDir    Vec3
	ptrForce  Vec3

	current  int
	next     int
	progress float32
}

// snapshot freezes params, morph state and pointer input for one frame,
// applying the timestep and pointer force caps.
func (p *Params) snapshot(dt, elapsed float32, ptr PointerState, m MorphState) frame {
	return frame{
		dt:            clampf(dt, 0, MaxDT),
		time:          elapsed,
		gravity:       p.Gravity,
		viscosity:     p.Viscosity,
		restDensity:   p.RestDensity,
		eosStiffness:  p.EOSStiffness,
		eosPower:      p.EOSPower,
		stiffness:     p.Stiffness,
		damping:       p.Damping,
		turbFreq:      p.TurbFrequency,
		turbStrength:  p.TurbStrength,
		wave2Freq:     p.Wave2Frequency,
		wave2Strength: p.Wave2Strength,
		fluidStrength: p.FluidStrength,
		ptrOrigin:     ptr.Origin,
		ptrDir:        ptr.Dir.Normalized(),
		ptrForce:      ptr.Delta.Scale(p.MouseForce).ClampLength(MaxPointerForce),
		current:       m.Current,
		next:          m.Next,
		progress:      m.Progress,
	}
}
