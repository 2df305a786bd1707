package sim

import (
	"fmt"
	"math/rand"
)

// ParticleStore holds per-particle simulation state in parallel slices.
// All slices are allocated once at the maximum particle count; Count gates
// which entries are active and entries past it are never touched.
type ParticleStore struct {
	Max   int
	Count int

	// Pos is the domain-normalized position in [0,1]^3.
	Pos []Vec3
	// Vel is the velocity in grid-space units per second. G2P converts to
	// domain space for integration and converts back before storing.
	Vel []Vec3
	// C is the APIC affine velocity matrix (local velocity gradient).
	C []Mat3
	// Target is per-frame scratch: the blended morph target, written by G2P
	// and read by the render layer for coloring.
	Target []Vec3
}

// NewParticleStore allocates buffers for max particles with count active.
func NewParticleStore(max, count int) (*ParticleStore, error) {
	if max <= 0 {
		return nil, fmt.Errorf("particles: max count %d must be positive", max)
	}
	if count <= 0 || count > max {
		return nil, fmt.Errorf("particles: active count %d outside [1, %d]", count, max)
	}
	return &ParticleStore{
		Max:    max,
		Count:  count,
		Pos:    make([]Vec3, max),
		Vel:    make([]Vec3, max),
		C:      make([]Mat3, max),
		Target: make([]Vec3, max),
	}, nil
}

// SetCount changes the active particle count. Entries beyond the previous
// count keep their seeded state, so growing is safe mid-run.
func (p *ParticleStore) SetCount(count int) error {
	if count <= 0 || count > p.Max {
		return fmt.Errorf("particles: active count %d outside [1, %d]", count, p.Max)
	}
	p.Count = count
	return nil
}

// Seed places every particle at its first-shape target with zero velocity.
// Targets may be nil, in which case particles scatter uniformly over the
// domain interior.
func (p *ParticleStore) Seed(targets *ShapeTargets, rng *rand.Rand) {
	for i := 0; i < p.Max; i++ {
		var pos Vec3
		if targets != nil {
			pos = targets.Sets[0][i]
		} else {
			pos = Vec3{
				0.1 + rng.Float32()*0.8,
				0.1 + rng.Float32()*0.8,
				0.1 + rng.Float32()*0.8,
			}
		}
		p.Pos[i] = pos
		p.Vel[i] = Vec3{}
		p.C[i] = Mat3{}
		p.Target[i] = pos
	}
}
