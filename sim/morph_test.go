package sim

import (
	"math"
	"testing"
)

func TestMorphCycle(t *testing.T) {
	m := MorphState{Current: 0, Next: 0}
	const duration = 2.0
	const dt = 1.0 / 60

	step := func(seconds float32) {
		for elapsed := float32(0); elapsed < seconds; elapsed += dt {
			m.Step(dt, duration)
		}
	}

	// Idle: progress stays at zero, nothing advances.
	step(1)
	if m.Current != 0 || m.Next != 0 || m.Progress != 0 {
		t.Fatalf("idle state drifted: %+v", m)
	}

	// One trigger: transition to shape 1 completes after the duration and
	// progress returns to zero for the idle curl flow.
	m.Advance()
	if m.Current != 0 || m.Next != 1 {
		t.Fatalf("after advance: %+v", m)
	}
	step(duration + 3*dt)
	if m.Current != 1 || m.Next != 1 {
		t.Fatalf("transition did not resolve: %+v", m)
	}
	if m.Progress != 0 {
		t.Errorf("progress %v after completion, want 0", m.Progress)
	}

	// Two more full cycles return to shape 0.
	for i := 0; i < 2; i++ {
		m.Advance()
		step(duration + 3*dt)
	}
	if m.Current != 0 {
		t.Errorf("after three cycles current = %d, want 0", m.Current)
	}
}

func TestMorphProgressSaturates(t *testing.T) {
	m := MorphState{Current: 0, Next: 1, Progress: 0.95}
	m.Step(0.5, 2.0) // would push progress to 1.2
	if m.Current != 1 || m.Progress != 0 {
		t.Errorf("saturating step did not resolve transition: %+v", m)
	}
}

func TestMorphMidFlightAdvanceResolvesFirst(t *testing.T) {
	m := MorphState{Current: 0, Next: 1, Progress: 0.4}
	m.Advance()
	if m.Current != 1 || m.Next != 2 || m.Progress != 0 {
		t.Errorf("mid-flight advance: %+v", m)
	}
}

func TestRotationTrigger(t *testing.T) {
	m := MorphState{Current: 0, Next: 0}

	// Below a full turn: no advance.
	m.AccumulateRotation(3.0)
	m.AccumulateRotation(-3.0) // direction does not matter
	if m.Transitioning() {
		t.Fatalf("advanced before a full turn: %+v", m)
	}

	// Crossing 2*pi triggers and the leftover angle carries over.
	m.AccumulateRotation(0.5)
	if !m.Transitioning() || m.Next != 1 {
		t.Fatalf("full turn did not trigger: %+v", m)
	}
	wantRem := 6.5 - 2*math.Pi
	if math.Abs(float64(m.rotation)-wantRem) > 1e-4 {
		t.Errorf("leftover rotation %v, want %v", m.rotation, wantRem)
	}
}
