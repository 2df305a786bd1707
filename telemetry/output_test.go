package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOutputManagerNilSafe(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("empty dir should disable output, got error: %v", err)
	}
	if om != nil {
		t.Fatal("expected nil manager for empty dir")
	}
	// All methods must tolerate the nil receiver.
	if err := om.WriteStats(WindowStats{}); err != nil {
		t.Errorf("nil WriteStats: %v", err)
	}
	if err := om.WritePerf(PerfStats{}, 0); err != nil {
		t.Errorf("nil WritePerf: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run1")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := om.WriteStats(WindowStats{WindowEndFrame: i, ParticleCount: 100}); err != nil {
			t.Fatalf("WriteStats: %v", err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "frames.csv"))
	if err != nil {
		t.Fatalf("reading frames.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header + 3 records", len(lines))
	}
	if !strings.Contains(lines[0], "window_end") {
		t.Errorf("header missing: %q", lines[0])
	}
	if strings.Contains(lines[1], "window_end") {
		t.Error("header repeated in record rows")
	}
}
