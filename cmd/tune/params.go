// Package main provides CMA-ES tuning for the morph spring parameters.
package main

import (
	"github.com/pthm-cable/goop/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string
	Min     float64
	Max     float64
	Default float64
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable parameters. The goal
// is a fluid that snaps to its target shape without ringing, so the spring,
// damping and material terms are the knobs.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "stiffness", Min: 50, Max: 400, Default: 200},
			{Name: "damping", Min: 0.6, Max: 0.99, Default: 0.85},
			{Name: "viscosity", Min: 0.01, Max: 0.5, Default: 0.12},
			{Name: "turb_strength", Min: 0, Max: 0.8, Default: 0.25},
			{Name: "fluid_strength", Min: 0.2, Max: 2.0, Default: 1.0},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp restricts raw values to their bounds. CMA-ES samples freely, so
// out-of-range proposals are evaluated at the boundary.
func (pv *ParamVector) Clamp(raw []float64) []float64 {
	clamped := make([]float64, len(raw))
	for i, spec := range pv.Specs {
		v := raw[i]
		if v < spec.Min {
			v = spec.Min
		}
		if v > spec.Max {
			v = spec.Max
		}
		clamped[i] = v
	}
	return clamped
}

// ApplyToConfig writes raw parameter values into a config.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, raw []float64) {
	clamped := pv.Clamp(raw)
	cfg.Physics.Stiffness = clamped[0]
	cfg.Physics.Damping = clamped[1]
	cfg.Physics.Viscosity = clamped[2]
	cfg.Forces.TurbStrength = clamped[3]
	cfg.Physics.FluidStrength = clamped[4]
}
