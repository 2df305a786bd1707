package sim

import "math"

// MorphState tracks the shape transition cycle. Shapes advance in cyclic
// order 0 -> 1 -> 2 -> 0. Progress only moves while a transition is active
// (Current != Next); when it saturates the transition resolves and progress
// returns to zero, which is the idle state the curl-flow attenuation keys on.
type MorphState struct {
	Current  int
	Next     int
	Progress float32

	// rotation accumulates camera/pointer turn angle; a full turn
	// triggers the next transition.
	rotation float32
}

// Step advances an active transition by dt seconds against the configured
// morph duration.
func (m *MorphState) Step(dt, duration float32) {
	if m.Current == m.Next {
		return
	}
	if duration <= 0 {
		duration = 1
	}
	m.Progress += dt / duration
	if m.Progress >= 1 {
		m.Current = m.Next
		m.Progress = 0
	}
}

// Advance starts the transition to the next shape in the cycle. A transition
// already in flight resolves to its destination first.
func (m *MorphState) Advance() {
	m.Current = m.Next
	m.Next = (m.Current + 1) % NumShapes
	m.Progress = 0
	m.rotation = 0
}

// AccumulateRotation feeds turn angle (radians) into the transition trigger.
// Crossing a full turn advances the morph; leftover angle carries over so a
// fast spin cannot skip shapes within one accumulation.
func (m *MorphState) AccumulateRotation(delta float32) {
	m.rotation += absf(delta)
	if m.rotation >= 2*math.Pi {
		rem := m.rotation - 2*math.Pi
		m.Advance()
		m.rotation = rem
	}
}

// Transitioning reports whether a morph is in flight.
func (m *MorphState) Transitioning() bool {
	return m.Current != m.Next
}
