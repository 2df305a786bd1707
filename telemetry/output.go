package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/goop/config"
	"github.com/pthm-cable/goop/sim"
)

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir       string
	statsFile *os.File
	perfFile  *os.File

	statsHeaderWritten bool
	perfHeaderWritten  bool
}

// NewOutputManager creates an output manager rooted at dir. Returns nil if
// dir is empty (output disabled); all write methods are nil-safe.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "frames.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating frames.csv: %w", err)
	}
	om.statsFile = f

	f, err = os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		om.statsFile.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML alongside the CSVs.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteStats appends a window stats record to frames.csv.
func (om *OutputManager) WriteStats(stats WindowStats) error {
	if om == nil {
		return nil
	}

	records := []WindowStats{stats}
	if !om.statsHeaderWritten {
		if err := gocsv.Marshal(records, om.statsFile); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
		om.statsHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.statsFile); err != nil {
		return fmt.Errorf("writing stats: %w", err)
	}
	return nil
}

// PerfRecord is the flat CSV layout for one perf window.
type PerfRecord struct {
	WindowEndFrame int   `csv:"window_end"`
	AvgFrameUs     int64 `csv:"avg_frame_us"`
	MinFrameUs     int64 `csv:"min_frame_us"`
	MaxFrameUs     int64 `csv:"max_frame_us"`
	ClearUs        int64 `csv:"clear_us"`
	P2G1Us         int64 `csv:"p2g1_us"`
	P2G2Us         int64 `csv:"p2g2_us"`
	GridUpdateUs   int64 `csv:"grid_update_us"`
	G2PUs          int64 `csv:"g2p_us"`
}

// ToRecord flattens the stage map into the CSV row layout.
func (s PerfStats) ToRecord(windowEnd int) PerfRecord {
	us := func(stage string) int64 { return s.StageAvg[stage].Microseconds() }
	return PerfRecord{
		WindowEndFrame: windowEnd,
		AvgFrameUs:     s.AvgFrameDuration.Microseconds(),
		MinFrameUs:     s.MinFrameDuration.Microseconds(),
		MaxFrameUs:     s.MaxFrameDuration.Microseconds(),
		ClearUs:        us(sim.StageClear),
		P2G1Us:         us(sim.StageP2G1),
		P2G2Us:         us(sim.StageP2G2),
		GridUpdateUs:   us(sim.StageGridUpdate),
		G2PUs:          us(sim.StageG2P),
	}
}

// WritePerf appends a perf record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int) error {
	if om == nil {
		return nil
	}

	records := []PerfRecord{stats.ToRecord(windowEnd)}
	if !om.perfHeaderWritten {
		if err := gocsv.Marshal(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
		om.perfHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.perfFile); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	for _, f := range []*os.File{om.statsFile, om.perfFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
