package game

import (
	"log/slog"

	"github.com/pthm-cable/goop/telemetry"
)

// maybeFlushStats emits stats and perf windows on the configured cadence,
// measured in simulation time.
func (g *Game) maybeFlushStats() {
	window := float32(g.opts.StatsWindowSec)
	if window <= 0 {
		return
	}
	if g.sim.Elapsed()-g.lastStatsTime < window {
		return
	}
	g.flushStats()
}

// flushStats collects and writes one stats and perf window immediately.
func (g *Game) flushStats() {
	g.lastStatsTime = g.sim.Elapsed()

	ws := telemetry.Collect(g.sim, g.frame)
	if g.opts.LogStats {
		ws.LogStats()
	}
	if err := g.output.WriteStats(ws); err != nil {
		slog.Warn("writing stats window", "error", err)
	}

	ps := g.perf.Stats()
	if g.opts.LogStats {
		ps.LogStats()
	}
	if err := g.output.WritePerf(ps, g.frame); err != nil {
		slog.Warn("writing perf window", "error", err)
	}
}
