package telemetry

import (
	"testing"
	"time"

	"github.com/pthm-cable/goop/sim"
)

func TestPerfCollectorBasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartStage(sim.StageP2G1)
		time.Sleep(100 * time.Microsecond)
		pc.StartStage(sim.StageG2P)
		time.Sleep(200 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.AvgFrameDuration <= 0 {
		t.Error("expected positive average frame duration")
	}
	if len(stats.StageAvg) == 0 {
		t.Error("expected stage averages to be populated")
	}
	if _, ok := stats.StageAvg[sim.StageP2G1]; !ok {
		t.Error("expected p2g1 stage to be tracked")
	}
	if _, ok := stats.StageAvg[sim.StageG2P]; !ok {
		t.Error("expected g2p stage to be tracked")
	}
}

func TestPerfCollectorRollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	// Overfill the window; old samples fall out without error.
	for i := 0; i < 10; i++ {
		pc.StartFrame()
		pc.StartStage(sim.StageClear)
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.AvgFrameDuration <= 0 {
		t.Error("expected positive average frame duration after window filled")
	}
	if stats.FramesPerSecond <= 0 {
		t.Error("expected positive frames per second")
	}
}

func TestPerfCollectorStagePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartStage("fast")
		time.Sleep(10 * time.Microsecond)
		pc.StartStage("slow")
		time.Sleep(100 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.StagePct["slow"] <= stats.StagePct["fast"] {
		t.Errorf("expected slow stage (%v%%) > fast stage (%v%%)",
			stats.StagePct["slow"], stats.StagePct["fast"])
	}
}

func TestPerfCollectorEmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)
	stats := pc.Stats()

	if stats.AvgFrameDuration != 0 {
		t.Error("expected zero avg frame duration for empty collector")
	}
	if stats.StageAvg == nil || stats.StagePct == nil {
		t.Error("expected non-nil stage maps")
	}
}

func TestPerfCollectorRenderTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordRender()
	time.Sleep(16 * time.Millisecond)
	pc.RecordRender()

	stats := pc.Stats()
	if stats.RenderDuration < 15*time.Millisecond {
		t.Errorf("expected render duration >= 15ms, got %v", stats.RenderDuration)
	}
	if stats.FPS <= 0 {
		t.Error("expected positive FPS")
	}
}

func TestPerfRecordFlattensStages(t *testing.T) {
	pc := NewPerfCollector(4)
	pc.StartFrame()
	pc.StartStage(sim.StageClear)
	time.Sleep(50 * time.Microsecond)
	pc.StartStage(sim.StageGridUpdate)
	time.Sleep(50 * time.Microsecond)
	pc.EndFrame()

	rec := pc.Stats().ToRecord(7)
	if rec.WindowEndFrame != 7 {
		t.Errorf("window end = %d, want 7", rec.WindowEndFrame)
	}
	if rec.ClearUs <= 0 || rec.GridUpdateUs <= 0 {
		t.Errorf("stage columns not populated: %+v", rec)
	}
	if rec.P2G1Us != 0 {
		t.Errorf("untimed stage should be zero, got %d", rec.P2G1Us)
	}
}
