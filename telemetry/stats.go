package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/goop/sim"
)

// WindowStats holds aggregated simulation statistics for a time window.
type WindowStats struct {
	WindowEndFrame int     `csv:"window_end"`
	SimTimeSec     float64 `csv:"sim_time"`

	ParticleCount int `csv:"particles"`

	// Morph state at window end
	ShapeCurrent  int     `csv:"shape_current"`
	ShapeNext     int     `csv:"shape_next"`
	MorphProgress float64 `csv:"morph_progress"`

	// Particle speed distribution (grid-space units/sec)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`

	// Aggregate motion and shape convergence
	KineticEnergy  float64 `csv:"kinetic_energy"`
	TargetDistMean float64 `csv:"target_dist_mean"`
}

// statsSampleCap bounds how many particles a window sample touches; above
// this the store is strided. Percentiles over a few thousand samples are
// plenty stable for telemetry.
const statsSampleCap = 4096

// ComputeSpeedStats returns mean and percentiles of the given values.
func ComputeSpeedStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return
}

// Collect samples the particle state into a window record. Called between
// frames, never during one.
func Collect(s *sim.Simulation, frameIndex int) WindowStats {
	p := s.Particles()
	n := p.Count

	stride := 1
	if n > statsSampleCap {
		stride = n / statsSampleCap
	}

	speeds := make([]float64, 0, n/stride+1)
	var kinetic, targetDist float64
	sampled := 0
	for i := 0; i < n; i += stride {
		v := float64(p.Vel[i].Length())
		speeds = append(speeds, v)
		kinetic += 0.5 * v * v
		targetDist += float64(p.Target[i].Sub(p.Pos[i]).Length())
		sampled++
	}

	mean, p10, p50, p90 := ComputeSpeedStats(speeds)
	ws := WindowStats{
		WindowEndFrame: frameIndex,
		SimTimeSec:     float64(s.Elapsed()),
		ParticleCount:  n,
		ShapeCurrent:   s.Morph.Current,
		ShapeNext:      s.Morph.Next,
		MorphProgress:  float64(s.Morph.Progress),
		SpeedMean:      mean,
		SpeedP10:       p10,
		SpeedP50:       p50,
		SpeedP90:       p90,
	}
	if sampled > 0 {
		// Scale the scalar aggregates back up to the full population.
		factor := float64(n) / float64(sampled)
		ws.KineticEnergy = kinetic * factor
		ws.TargetDistMean = targetDist / float64(sampled)
	}
	return ws
}

// LogStats emits the window record as a structured log line.
func (w WindowStats) LogStats() {
	slog.Info("stats",
		"frame", w.WindowEndFrame,
		"sim_time", w.SimTimeSec,
		"particles", w.ParticleCount,
		"shape", w.ShapeCurrent,
		"morph_progress", w.MorphProgress,
		"speed_mean", w.SpeedMean,
		"speed_p90", w.SpeedP90,
		"kinetic_energy", w.KineticEnergy,
		"target_dist_mean", w.TargetDistMean,
	)
}
