// Package game wires the simulation, camera, renderer and UI into a frame loop.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/goop/camera"
	"github.com/pthm-cable/goop/config"
	"github.com/pthm-cable/goop/renderer"
	"github.com/pthm-cable/goop/sim"
	"github.com/pthm-cable/goop/telemetry"
	"github.com/pthm-cable/goop/ui"
)

// headlessDT is the fixed timestep for headless runs, where there is no
// render pacing to derive a frame time from.
const headlessDT = 1.0 / 60.0

// Options holds run settings that come from the CLI rather than the config.
type Options struct {
	Seed           int64
	Headless       bool
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
}

// Game holds the complete application state.
type Game struct {
	cfg  *config.Config
	opts Options

	sim     *sim.Simulation
	cam     *camera.Camera
	pointer pointerTracker

	background *renderer.Background
	particles  *renderer.ParticleRenderer
	hud        *ui.HUD
	panel      *ui.ParamPanel

	perf   *telemetry.PerfCollector
	output *telemetry.OutputManager

	frame         int
	paused        bool
	showHUD       bool
	lastStatsTime float32

	screenWidth, screenHeight float32
}

// NewGame creates a game with default options. Config must be initialized.
func NewGame() (*Game, error) {
	return NewGameWithOptions(Options{Seed: 42})
}

// NewGameWithOptions creates a game instance. In graphical mode the raylib
// window must already be open; headless mode touches no graphics state.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	targets, err := loadTargets(cfg)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	s, err := sim.New(simOptions(cfg), simParams(cfg), targets, rng)
	if err != nil {
		return nil, fmt.Errorf("creating simulation: %w", err)
	}

	g := &Game{
		cfg:          cfg,
		opts:         opts,
		sim:          s,
		showHUD:      true,
		screenWidth:  float32(cfg.Screen.Width),
		screenHeight: float32(cfg.Screen.Height),
	}

	// Orbit the center of the unit simulation domain.
	g.cam = camera.New(sim.Vec3{X: 0.5, Y: 0.5, Z: 0.5})

	g.perf = telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)
	s.StageHook = g.perf.StartStage

	g.output, err = telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		s.Close()
		return nil, err
	}
	if err := g.output.WriteConfig(cfg); err != nil {
		slog.Warn("config snapshot failed", "error", err)
	}

	if !opts.Headless {
		g.background = renderer.NewBackground(int32(g.screenWidth), int32(g.screenHeight))
		g.particles = renderer.NewParticleRenderer()
		g.hud = ui.NewHUD()
		g.panel = ui.NewParamPanel(10, 110, 260)
	}

	return g, nil
}

// Update advances one graphical frame: input, camera, simulation, telemetry.
func (g *Game) Update() {
	dt := rl.GetFrameTime()
	g.handleInput()

	// Auto-rotation keeps the fluid drifting past the morph trigger even
	// with the mouse idle.
	g.cam.Orbit(float32(g.cfg.Morph.AutoRotate)*dt, 0)
	g.sim.Morph.AccumulateRotation(g.cam.DrainYawTravel())

	origin, dir := g.mouseRay()
	ptr := g.pointer.update(origin, dir, g.cam)

	if g.paused {
		return
	}

	g.step(dt, ptr)
}

// UpdateHeadless advances one fixed-dt frame with no graphics calls. The
// auto-rotation feeds the morph trigger directly so shapes still cycle.
func (g *Game) UpdateHeadless() {
	g.sim.Morph.AccumulateRotation(float32(g.cfg.Morph.AutoRotate) * headlessDT)
	g.step(headlessDT, sim.PointerState{})
}

// step runs the simulation pipeline under perf timing and flushes telemetry
// windows.
func (g *Game) step(dt float32, ptr sim.PointerState) {
	g.perf.StartFrame()
	g.sim.Step(dt, ptr)
	g.perf.EndFrame()

	g.frame++
	g.maybeFlushStats()
}

// Draw renders one frame.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.background.Draw(g.sim.Elapsed())
	g.particles.Draw(g.sim, g.cam)

	if g.showHUD {
		g.hud.Draw(g.hudData())
		g.hud.DrawControls(int32(g.screenWidth), int32(g.screenHeight),
			"[Space] pause  [M] morph  [Tab] params  [H] hud  [R] camera  [RMB] orbit  [Wheel] zoom  [F11] fullscreen")
	}

	// Panel edits write straight into the frame parameters; the next Step
	// snapshots them.
	g.panel.Draw(&g.sim.Params)

	g.perf.RecordRender()
	rl.EndDrawing()
}

// hudData assembles the HUD snapshot for this frame.
func (g *Game) hudData() ui.HUDData {
	return ui.HUDData{
		Frame:         g.frame,
		Particles:     g.sim.Particles().Count,
		ShapeCurrent:  g.sim.Morph.Current,
		ShapeNext:     g.sim.Morph.Next,
		MorphProgress: g.sim.Morph.Progress,
		FPS:           rl.GetFPS(),
		Paused:        g.paused,
	}
}

// Frame returns the number of simulation frames stepped so far.
func (g *Game) Frame() int {
	return g.frame
}

// Sim exposes the simulation, mainly for tests and the tuner.
func (g *Game) Sim() *sim.Simulation {
	return g.sim
}

// Unload stops the worker pool and closes telemetry outputs.
func (g *Game) Unload() {
	// Flush a final window so short runs still produce output.
	g.flushStats()
	g.sim.Close()
	if err := g.output.Close(); err != nil {
		slog.Warn("closing output", "error", err)
	}
}
