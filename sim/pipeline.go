// Package sim implements the MLS-MPM pipeline behind the morphing fluid:
// a particle set and a background grid exchanging state through five
// data-parallel stages per frame (clear, P2G mass, P2G stress, grid update,
// G2P), with fixed-point atomic accumulation on the grid side.
package sim

import (
	"fmt"
	"math/rand"
	"runtime"
	"sync"
)

// Stage names, in execution order. Exposed for perf instrumentation.
const (
	StageClear      = "clear"
	StageP2G1       = "p2g1"
	StageP2G2       = "p2g2"
	StageGridUpdate = "grid_update"
	StageG2P        = "g2p"
)

type stageID int

const (
	stageClear stageID = iota
	stageP2G1
	stageP2G2
	stageGridUpdate
	stageG2P
)

// parallelThreshold is the minimum task count to dispatch a stage to the
// worker pool. Below this, chunk handoff costs more than the work.
const parallelThreshold = 4096

// Options sizes the simulation. Fixed after New.
type Options struct {
	GridW, GridH, GridD int
	MaxParticles        int
	ParticleCount       int
	// Workers is the pool size; 0 means GOMAXPROCS, 1 forces serial
	// execution (useful for deterministic tests).
	Workers int
}

// Simulation owns the particle and grid buffers and runs the five-stage
// pipeline. Params and Morph belong to the frame loop: they may be written
// between Step calls, never during one.
type Simulation struct {
	Params Params
	Morph  MorphState

	// StageHook, when set, is called with the stage name as each stage
	// begins. Used by the frame loop for per-stage timing.
	StageHook func(stage string)

	particles *ParticleStore
	grid      *Grid
	targets   *ShapeTargets
	cur       frame
	elapsed   float32

	pool *workerPool
}

// New builds a simulation. Targets may be nil: particles then seed uniformly
// and a synthetic target set is built at their seeded positions, so the
// morph spring holds them in place. All sizing violations are caught here,
// before the frame loop.
func New(opts Options, params Params, targets *ShapeTargets, rng *rand.Rand) (*Simulation, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	grid, err := NewGrid(opts.GridW, opts.GridH, opts.GridD)
	if err != nil {
		return nil, err
	}
	particles, err := NewParticleStore(opts.MaxParticles, opts.ParticleCount)
	if err != nil {
		return nil, err
	}
	if targets != nil {
		for s, set := range targets.Sets {
			if len(set) < opts.MaxParticles {
				return nil, fmt.Errorf("sim: shape %d has %d targets, need %d", s, len(set), opts.MaxParticles)
			}
		}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	particles.Seed(targets, rng)
	if targets == nil {
		var sets [NumShapes][]Vec3
		for s := range sets {
			sets[s] = make([]Vec3, opts.MaxParticles)
			copy(sets[s], particles.Pos)
		}
		targets = &ShapeTargets{Sets: sets}
	}

	workers := opts.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	s := &Simulation{
		Params:    params,
		Morph:     MorphState{Current: 0, Next: 0},
		particles: particles,
		grid:      grid,
		targets:   targets,
	}
	if workers > 1 {
		s.pool = newWorkerPool(s, workers)
	}
	return s, nil
}

// Particles exposes the particle buffers for the render layer. Read-only
// between Step calls.
func (s *Simulation) Particles() *ParticleStore { return s.particles }

// Grid exposes the background grid. Diagnostic use only.
func (s *Simulation) Grid() *Grid { return s.grid }

// Targets exposes the shape target store.
func (s *Simulation) Targets() *ShapeTargets { return s.targets }

// Elapsed is the accumulated simulated time in seconds.
func (s *Simulation) Elapsed() float32 { return s.elapsed }

// Step runs one frame: snapshot the parameters, then the five stages in
// strict sequence. Each stage fully completes, with its writes visible,
// before the next begins.
func (s *Simulation) Step(dt float32, ptr PointerState) {
	dt = clampf(dt, 0, MaxDT)
	s.elapsed += dt
	s.Morph.Step(dt, s.Params.MorphDuration)
	s.cur = s.Params.snapshot(dt, s.elapsed, ptr, s.Morph)

	s.runStage(StageClear, stageClear, s.grid.CellCount)
	s.runStage(StageP2G1, stageP2G1, s.particles.Count)
	s.runStage(StageP2G2, stageP2G2, s.particles.Count)
	s.runStage(StageGridUpdate, stageGridUpdate, s.grid.CellCount)
	s.runStage(StageG2P, stageG2P, s.particles.Count)
}

// Close stops the worker pool. The simulation is unusable afterwards.
func (s *Simulation) Close() {
	if s.pool != nil {
		s.pool.stop()
		s.pool = nil
	}
}

func (s *Simulation) runStage(name string, stage stageID, n int) {
	if s.StageHook != nil {
		s.StageHook(name)
	}
	if s.pool == nil || n < parallelThreshold {
		s.runRange(stage, 0, n)
		return
	}
	s.pool.run(stage, n)
}

// runRange executes one stage's kernel over a task index range.
func (s *Simulation) runRange(stage stageID, start, end int) {
	switch stage {
	case stageClear:
		s.grid.clearRange(start, end)
	case stageP2G1:
		s.p2g1Range(start, end)
	case stageP2G2:
		s.p2g2Range(start, end)
	case stageGridUpdate:
		s.gridUpdateRange(start, end)
	case stageG2P:
		s.g2pRange(start, end)
	}
}

// workChunk is a task index range for one worker within a stage.
type workChunk struct {
	stage      stageID
	start, end int
}

// workerPool runs stage chunks on persistent goroutines. The dispatch loop
// in run is the inter-stage barrier: it does not return until every chunk's
// completion has been received, and the channel receive orders the workers'
// writes before the next stage's reads.
type workerPool struct {
	sim        *Simulation
	numWorkers int

	workChan chan workChunk
	doneChan chan struct{}
	stopChan chan struct{}
	wg       sync.WaitGroup
}

func newWorkerPool(s *Simulation, numWorkers int) *workerPool {
	p := &workerPool{
		sim:        s,
		numWorkers: numWorkers,
		workChan:   make(chan workChunk, numWorkers),
		doneChan:   make(chan struct{}, numWorkers),
		stopChan:   make(chan struct{}),
	}
	for i := 0; i < numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *workerPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			p.sim.runRange(chunk.stage, chunk.start, chunk.end)
			p.doneChan <- struct{}{}
		}
	}
}

// run splits n tasks into one chunk per worker and waits for all of them.
func (p *workerPool) run(stage stageID, n int) {
	chunkSize := (n + p.numWorkers - 1) / p.numWorkers
	dispatched := 0
	for w := 0; w < p.numWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}
		p.workChan <- workChunk{stage: stage, start: start, end: end}
		dispatched++
	}
	for i := 0; i < dispatched; i++ {
		<-p.doneChan
	}
}

func (p *workerPool) stop() {
	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
}
