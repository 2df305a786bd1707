package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}
	if cfg.Grid.Width != 64 || cfg.Grid.Height != 64 || cfg.Grid.Depth != 64 {
		t.Errorf("default grid = %dx%dx%d", cfg.Grid.Width, cfg.Grid.Height, cfg.Grid.Depth)
	}
	if cfg.Derived.CellCount != 64*64*64 {
		t.Errorf("derived cell count = %d", cfg.Derived.CellCount)
	}
	if cfg.Physics.EOSStiffness != 0 {
		t.Errorf("default eos_stiffness = %v, want 0", cfg.Physics.EOSStiffness)
	}
	if cfg.Derived.Gravity[1] >= 0 {
		t.Errorf("default gravity y = %v, want negative", cfg.Derived.Gravity[1])
	}
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	data := "particles:\n  count: 5000\nphysics:\n  damping: 0.9\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Particles.Count != 5000 {
		t.Errorf("overridden count = %d, want 5000", cfg.Particles.Count)
	}
	if cfg.Physics.Damping != 0.9 {
		t.Errorf("overridden damping = %v, want 0.9", cfg.Physics.Damping)
	}
	// Untouched fields keep their defaults.
	if cfg.Particles.Max != 120000 {
		t.Errorf("max = %d changed by partial overlay", cfg.Particles.Max)
	}
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	tests := []struct {
		name    string
		overlay string
		wantErr string
	}{
		{"count above max", "particles:\n  max: 10\n  count: 11\n", "particles.count"},
		{"tiny grid", "grid:\n  width: 2\n", "grid"},
		{"bad gravity", "physics:\n  gravity: [1.0, 2.0]\n", "gravity"},
		{"zero duration", "morph:\n  duration: 0\n", "morph.duration"},
		{"two shape files", "shapes:\n  files: [a.obj, b.obj]\n", "shapes.files"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.overlay), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if back.Particles.Max != cfg.Particles.Max || back.Physics.Damping != cfg.Physics.Damping {
		t.Error("round-tripped config differs")
	}
}
