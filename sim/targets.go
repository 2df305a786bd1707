package sim

import "fmt"

// NumShapes is the number of morphable target shapes.
const NumShapes = 3

// ShapeTargets holds one pre-normalized target position per particle per
// shape, indexed identically to the particle store. Immutable after load.
type ShapeTargets struct {
	Sets [NumShapes][]Vec3
}

// NewShapeTargets validates that every set covers at least max particles.
// Sizing mismatches are fatal here, before the frame loop ever runs.
func NewShapeTargets(sets [NumShapes][]Vec3, max int) (*ShapeTargets, error) {
	for s, set := range sets {
		if len(set) < max {
			return nil, fmt.Errorf("targets: shape %d has %d points, need %d", s, len(set), max)
		}
	}
	return &ShapeTargets{Sets: sets}, nil
}

// Blend returns the morph-blended target for particle i.
func (t *ShapeTargets) Blend(i, current, next int, progress float32) Vec3 {
	return Lerp(t.Sets[current][i], t.Sets[next][i], progress)
}
