package main

import (
	"math"
	"math/rand"
	"sync"

	"github.com/pthm-cable/goop/config"
	"github.com/pthm-cable/goop/shapes"
	"github.com/pthm-cable/goop/sim"
)

const evalDT = 1.0 / 60.0

// FitnessEvaluator runs headless simulations and scores how tightly and
// calmly the fluid settles onto its target shapes.
type FitnessEvaluator struct {
	params     *ParamVector
	maxFrames  int
	seeds      []int64
	baseConfig *config.Config

	mu           sync.Mutex
	lastDistance float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxFrames int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxFrames:  maxFrames,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// LastDistance returns the mean target distance from the most recent
// evaluation, for progress reporting.
func (fe *FitnessEvaluator) LastDistance() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastDistance
}

// Evaluate computes fitness for a parameter vector (lower = better). All
// seeds run in parallel and their scores are averaged.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := *fe.baseConfig
	fe.params.ApplyToConfig(&cfg, x)

	scores := make([]float64, len(fe.seeds))
	dists := make([]float64, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			scores[idx], dists[idx] = fe.runSimulation(&cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var total, totalDist float64
	for i := range scores {
		total += scores[i]
		totalDist += dists[i]
	}

	fe.mu.Lock()
	fe.lastDistance = totalDist / float64(len(fe.seeds))
	fe.mu.Unlock()

	return total / float64(len(fe.seeds))
}

// runSimulation runs one headless simulation and returns its score and the
// final-quarter mean target distance. The score combines shape convergence
// with residual motion: a fluid that hugs the target but keeps jittering is
// penalized, as is one that freezes far from it.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) (score, meanDist float64) {
	opts := sim.Options{
		GridW:         cfg.Grid.Width,
		GridH:         cfg.Grid.Height,
		GridD:         cfg.Grid.Depth,
		MaxParticles:  cfg.Particles.Max,
		ParticleCount: cfg.Particles.Count,
		Workers:       1,
	}
	params := sim.Params{
		Gravity: sim.Vec3{
			X: float32(cfg.Physics.Gravity[0]),
			Y: float32(cfg.Physics.Gravity[1]),
			Z: float32(cfg.Physics.Gravity[2]),
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

	rng := rand.New(rand.NewSource(seed))
	sets := shapes.Default(opts.MaxParticles, cfg.Shapes.Seed)
	targets, err := sim.NewShapeTargets(sets, opts.MaxParticles)
	if err != nil {
		return math.Inf(1), math.Inf(1)
	}

	s, err := sim.New(opts, params, targets, rng)
	if err != nil {
		return math.Inf(1), math.Inf(1)
	}
	defer s.Close()

	// Advance partway through the run so the score covers a transition,
	// not just the initial settle.
	advanceAt := fe.maxFrames / 2
	scoreFrom := fe.maxFrames * 3 / 4

	var distSum, speedSum float64
	samples := 0
	for frame := 0; frame < fe.maxFrames; frame++ {
		if frame == advanceAt {
			s.Morph.Advance()
		}
		s.Step(evalDT, sim.PointerState{})

		if frame >= scoreFrom {
			d, v := sampleState(s)
			distSum += d
			speedSum += v
			samples++
		}
	}
	if samples == 0 {
		return math.Inf(1), math.Inf(1)
	}

	meanDist = distSum / float64(samples)
	meanSpeed := speedSum / float64(samples)
	return meanDist + 0.3*meanSpeed, meanDist
}

// sampleState returns the mean target distance and mean speed across a
// stride of particles.
func sampleState(s *sim.Simulation) (dist, speed float64) {
	p := s.Particles()
	stride := 1
	if p.Count > 2048 {
		stride = p.Count / 2048
	}
	n := 0
	for i := 0; i < p.Count; i += stride {
		dist += float64(p.Target[i].Sub(p.Pos[i]).Length())
		speed += float64(p.Vel[i].Length())
		n++
	}
	if n == 0 {
		return 0, 0
	}
	return dist / float64(n), speed / float64(n)
}
