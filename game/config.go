package game

import (
	"fmt"

	"github.com/pthm-cable/goop/config"
	"github.com/pthm-cable/goop/shapes"
	"github.com/pthm-cable/goop/sim"
)

// simOptions maps the loaded config onto simulation buffer sizing.
func simOptions(cfg *config.Config) sim.Options {
	return sim.Options{
		GridW:         cfg.Grid.Width,
		GridH:         cfg.Grid.Height,
		GridD:         cfg.Grid.Depth,
		MaxParticles:  cfg.Particles.Max,
		ParticleCount: cfg.Particles.Count,
		Workers:       cfg.Workers,
	}
}

// simParams maps the physics and force settings onto frame parameters.
func simParams(cfg *config.Config) sim.Params {
	return sim.Params{
		Gravity: sim.Vec3{
			X: cfg.Derived.Gravity[0],
			Y: cfg.Derived.Gravity[1],
			Z: cfg.Derived.Gravity[2],
		},
		Viscosity:      float32(cfg.Physics.Viscosity),
		RestDensity:    float32(cfg.Physics.RestDensity),
		EOSStiffness:   float32(cfg.Physics.EOSStiffness),
		EOSPower:       float32(cfg.Physics.EOSPower),
		Stiffness:      float32(cfg.Physics.Stiffness),
		Damping:        float32(cfg.Physics.Damping),
		TurbFrequency:  float32(cfg.Forces.TurbFrequency),
		TurbStrength:   float32(cfg.Forces.TurbStrength),
		Wave2Frequency: float32(cfg.Forces.Wave2Frequency),
		Wave2Strength:  float32(cfg.Forces.Wave2Strength),
		FluidStrength:  float32(cfg.Physics.FluidStrength),
		MouseForce:     float32(cfg.Forces.MouseForce),
		MorphDuration:  float32(cfg.Morph.Duration),
	}
}

// loadTargets builds the three target point clouds: from the configured
// files when set, otherwise the built-in procedural set. Sets are sized to
// the particle allocation so the active count can be raised at runtime.
func loadTargets(cfg *config.Config) (*sim.ShapeTargets, error) {
	n := cfg.Particles.Max

	var sets [sim.NumShapes][]sim.Vec3
	if len(cfg.Shapes.Files) == sim.NumShapes {
		var paths [sim.NumShapes]string
		copy(paths[:], cfg.Shapes.Files)
		loaded, err := shapes.FromFiles(paths, n, cfg.Shapes.Seed)
		if err != nil {
			return nil, fmt.Errorf("loading shape files: %w", err)
		}
		sets = loaded
	} else {
		sets = shapes.Default(n, cfg.Shapes.Seed)
	}

	return sim.NewShapeTargets(sets, n)
}
