package sim

import (
	"math"
	"testing"
)

func TestSnapshotClampsTimestep(t *testing.T) {
	p := DefaultParams()
	f := p.snapshot(1.0, 0, PointerState{}, MorphState{})
	if f.dt != MaxDT {
		t.Errorf("dt %v, want clamp to %v", f.dt, MaxDT)
	}
	f = p.snapshot(-0.1, 0, PointerState{}, MorphState{})
	if f.dt != 0 {
		t.Errorf("negative dt %v, want 0", f.dt)
	}
}

func TestSnapshotClampsPointerForce(t *testing.T) {
	p := DefaultParams()
	ptr := PointerState{Delta: Vec3{100, 0, 0}}
	f := p.snapshot(1.0/60, 0, ptr, MorphState{})
	if got := float64(f.ptrForce.Length()); math.Abs(got-MaxPointerForce) > 1e-3 {
		t.Errorf("pointer force magnitude %v, want %v", got, float64(MaxPointerForce))
	}

	// Below the cap the mouse force scale applies unclamped.
	p.MouseForce = 2
	ptr.Delta = Vec3{0, 1.5, 0}
	f = p.snapshot(1.0/60, 0, ptr, MorphState{})
	if got := f.ptrForce.Y; math.Abs(float64(got-3)) > 1e-5 {
		t.Errorf("scaled pointer force %v, want 3", got)
	}
}

func TestSnapshotNormalizesRay(t *testing.T) {
	p := DefaultParams()
	ptr := PointerState{Dir: Vec3{0, 0, 5}}
	f := p.snapshot(1.0/60, 0, ptr, MorphState{})
	if math.Abs(float64(f.ptrDir.Length())-1) > 1e-5 {
		t.Errorf("ray direction not normalized: %+v", f.ptrDir)
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
		wantOK bool
	}{
		{"defaults", func(*Params) {}, true},
		{"zero rest density", func(p *Params) { p.RestDensity = 0 }, false},
		{"zero morph duration", func(p *Params) { p.MorphDuration = 0 }, false},
		{"negative fluid strength", func(p *Params) { p.FluidStrength = -1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			err := p.Validate()
			if (err == nil) != tt.wantOK {
				t.Errorf("Validate() = %v, wantOK %v", err, tt.wantOK)
			}
		})
	}
}
