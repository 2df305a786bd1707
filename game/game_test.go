package game

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/goop/config"
	"github.com/pthm-cable/goop/sim"
)

// initTestConfig loads a small configuration so tests run fast.
func initTestConfig(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
grid:
  width: 16
  height: 16
  depth: 16
particles:
  max: 2000
  count: 1000
workers: 1
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}
	if err := config.Init(path); err != nil {
		t.Fatalf("config.Init: %v", err)
	}
}

func TestHeadlessRun(t *testing.T) {
	initTestConfig(t)

	g, err := NewGameWithOptions(Options{Seed: 7, Headless: true})
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	defer g.Unload()

	for i := 0; i < 30; i++ {
		g.UpdateHeadless()
	}

	if g.Frame() != 30 {
		t.Errorf("expected 30 frames, got %d", g.Frame())
	}
	if g.Sim().Elapsed() <= 0 {
		t.Error("elapsed time should advance")
	}
}

func TestHeadlessAutoRotateTriggersMorph(t *testing.T) {
	initTestConfig(t)

	g, err := NewGameWithOptions(Options{Seed: 7, Headless: true})
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	defer g.Unload()

	// A full turn of accumulated rotation must start a transition. At the
	// default rate (0.35 rad/s) that takes 2*pi/0.35 ~ 18s of sim time.
	frames := int(2*math.Pi/g.cfg.Morph.AutoRotate/headlessDT) + 2
	for i := 0; i < frames; i++ {
		g.UpdateHeadless()
		if g.Sim().Morph.Transitioning() {
			return
		}
	}
	t.Error("auto-rotation never triggered a morph transition")
}

func TestSimOptionsMapping(t *testing.T) {
	initTestConfig(t)
	cfg := config.Cfg()

	opts := simOptions(cfg)
	if opts.GridW != 16 || opts.GridH != 16 || opts.GridD != 16 {
		t.Errorf("grid mapping wrong: %+v", opts)
	}
	if opts.MaxParticles != 2000 || opts.ParticleCount != 1000 {
		t.Errorf("particle mapping wrong: %+v", opts)
	}
	if opts.Workers != 1 {
		t.Errorf("workers mapping wrong: %d", opts.Workers)
	}
}

func TestSimParamsMapping(t *testing.T) {
	initTestConfig(t)
	cfg := config.Cfg()

	p := simParams(cfg)
	if err := p.Validate(); err != nil {
		t.Fatalf("mapped params invalid: %v", err)
	}
	if p.Gravity.Y != float32(cfg.Physics.Gravity[1]) {
		t.Errorf("gravity y: got %f, want %f", p.Gravity.Y, cfg.Physics.Gravity[1])
	}
	if p.Stiffness != float32(cfg.Physics.Stiffness) {
		t.Errorf("stiffness: got %f, want %f", p.Stiffness, cfg.Physics.Stiffness)
	}
	if p.MorphDuration != float32(cfg.Morph.Duration) {
		t.Errorf("morph duration: got %f, want %f", p.MorphDuration, cfg.Morph.Duration)
	}
}

func TestRayPlanePoint(t *testing.T) {
	center := sim.Vec3{X: 0.5, Y: 0.5, Z: 0.5}

	// Ray straight down the -Z axis onto a Z-facing plane.
	origin := sim.Vec3{X: 0.5, Y: 0.5, Z: 3}
	dir := sim.Vec3{Z: -1}
	normal := sim.Vec3{Z: 1}

	p, ok := rayPlanePoint(origin, dir, center, normal)
	if !ok {
		t.Fatal("expected intersection")
	}
	if math.Abs(float64(p.Z-0.5)) > 1e-6 || math.Abs(float64(p.X-0.5)) > 1e-6 {
		t.Errorf("intersection at %+v, want center", p)
	}

	// Parallel ray misses.
	if _, ok := rayPlanePoint(origin, sim.Vec3{X: 1}, center, normal); ok {
		t.Error("parallel ray should not intersect")
	}

	// Ray pointing away misses.
	if _, ok := rayPlanePoint(origin, sim.Vec3{Z: 1}, center, normal); ok {
		t.Error("ray pointing away should not intersect")
	}
}

func TestPointerTrackerDelta(t *testing.T) {
	initTestConfig(t)

	g, err := NewGameWithOptions(Options{Seed: 1, Headless: true})
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	defer g.Unload()

	var tr pointerTracker

	// Two rays from the camera through slightly different directions: the
	// first sample primes the tracker, the second yields a delta.
	origin := g.cam.Position()
	dir := g.cam.Target.Sub(origin).Normalized()
	first := tr.update(origin, dir, g.cam)
	if first.Delta.Length() != 0 {
		t.Error("first sample should have zero delta")
	}

	shifted := g.cam.Target.Add(sim.Vec3{X: 0.1}).Sub(origin).Normalized()
	second := tr.update(origin, shifted, g.cam)
	if second.Delta.Length() == 0 {
		t.Error("second sample should report movement")
	}

	tr.reset()
	third := tr.update(origin, dir, g.cam)
	if third.Delta.Length() != 0 {
		t.Error("delta after reset should be zero")
	}
}
