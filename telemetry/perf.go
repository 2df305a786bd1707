package telemetry

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/goop/sim"
)

// PerfSample holds timing data for a single simulation frame.
type PerfSample struct {
	FrameDuration time.Duration
	Stages        map[string]time.Duration
}

// PerfCollector tracks per-stage pipeline timing over a rolling window.
// The frame loop brackets every Step with StartFrame/EndFrame and routes
// the simulation's stage hook to StartStage.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentStages map[string]time.Duration
	frameStart    time.Time
	stageStart    time.Time
	lastStage     string

	// Wall-clock frame pacing (render loop, includes draw time)
	lastRenderTime time.Time
	renderDuration time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize frames.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentStages: make(map[string]time.Duration),
	}
}

// StartFrame begins timing a new simulation frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = time.Now()
	p.currentStages = make(map[string]time.Duration)
	p.lastStage = ""
}

// StartStage begins timing a pipeline stage, closing the previous one.
// Matches the signature of sim.Simulation.StageHook.
func (p *PerfCollector) StartStage(stage string) {
	now := time.Now()
	if p.lastStage != "" {
		p.currentStages[p.lastStage] += now.Sub(p.stageStart)
	}
	p.stageStart = now
	p.lastStage = stage
}

// EndFrame finishes the current frame and records the sample.
func (p *PerfCollector) EndFrame() {
	now := time.Now()
	if p.lastStage != "" {
		p.currentStages[p.lastStage] += now.Sub(p.stageStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		FrameDuration: now.Sub(p.frameStart),
		Stages:        p.currentStages,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordRender marks a rendered frame for wall-clock FPS tracking.
func (p *PerfCollector) RecordRender() {
	now := time.Now()
	if !p.lastRenderTime.IsZero() {
		p.renderDuration = now.Sub(p.lastRenderTime)
	}
	p.lastRenderTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgFrameDuration time.Duration
	MinFrameDuration time.Duration
	MaxFrameDuration time.Duration

	// Per-stage average durations and share of the frame
	StageAvg map[string]time.Duration
	StagePct map[string]float64

	FramesPerSecond float64

	// Render pacing (graphics mode)
	RenderDuration time.Duration
	FPS            float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	var fps float64
	if p.renderDuration > 0 {
		fps = float64(time.Second) / float64(p.renderDuration)
	}

	if p.sampleCount == 0 {
		return PerfStats{
			StageAvg:       make(map[string]time.Duration),
			StagePct:       make(map[string]float64),
			RenderDuration: p.renderDuration,
			FPS:            fps,
		}
	}

	var total time.Duration
	var minF, maxF time.Duration
	stageSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.FrameDuration
		if i == 0 || s.FrameDuration < minF {
			minF = s.FrameDuration
		}
		if s.FrameDuration > maxF {
			maxF = s.FrameDuration
		}
		for stage, dur := range s.Stages {
			stageSum[stage] += dur
		}
	}

	avg := total / time.Duration(p.sampleCount)
	stageAvg := make(map[string]time.Duration)
	stagePct := make(map[string]float64)
	for stage, sum := range stageSum {
		stageAvg[stage] = sum / time.Duration(p.sampleCount)
		if avg > 0 {
			stagePct[stage] = float64(stageAvg[stage]) / float64(avg) * 100
		}
	}

	var perSec float64
	if avg > 0 {
		perSec = float64(time.Second) / float64(avg)
	}

	return PerfStats{
		AvgFrameDuration: avg,
		MinFrameDuration: minF,
		MaxFrameDuration: maxF,
		StageAvg:         stageAvg,
		StagePct:         stagePct,
		FramesPerSecond:  perSec,
		RenderDuration:   p.renderDuration,
		FPS:              fps,
	}
}

// LogStats emits a structured perf line with the stage breakdown in
// pipeline order.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_frame_us", s.AvgFrameDuration.Microseconds(),
		"min_frame_us", s.MinFrameDuration.Microseconds(),
		"max_frame_us", s.MaxFrameDuration.Microseconds(),
		"frames_per_sec", int(s.FramesPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}

	stages := []string{
		sim.StageClear, sim.StageP2G1, sim.StageP2G2,
		sim.StageGridUpdate, sim.StageG2P,
	}
	for _, stage := range stages {
		if pct, ok := s.StagePct[stage]; ok && pct > 0.1 {
			attrs = append(attrs, stage+"_pct", int(pct*10)/10.0)
		}
	}

	slog.Info("perf", attrs...)
}
