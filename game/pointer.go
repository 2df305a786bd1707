package game

import (
	"github.com/pthm-cable/goop/camera"
	"github.com/pthm-cable/goop/sim"
)

// pointerTracker converts per-frame mouse rays into the simulation pointer
// state. The pointer's world position is where the ray crosses the plane
// through the domain center facing the camera; the delta is its movement
// since the previous frame.
type pointerTracker struct {
	prev    sim.Vec3
	hasPrev bool
}

// update computes the pointer state for this frame. A ray that misses the
// interaction plane (or the first frame after a miss) yields a zero delta,
// so the pointer force stays off.
func (t *pointerTracker) update(origin, dir sim.Vec3, cam *camera.Camera) sim.PointerState {
	normal := cam.Position().Sub(cam.Target)
	point, ok := rayPlanePoint(origin, dir, cam.Target, normal)
	if !ok {
		t.hasPrev = false
		return sim.PointerState{Origin: origin, Dir: dir}
	}

	ptr := sim.PointerState{Origin: origin, Dir: dir}
	if t.hasPrev {
		ptr.Delta = point.Sub(t.prev)
	}
	t.prev = point
	t.hasPrev = true
	return ptr
}

// reset drops the previous sample so the next update yields no delta.
func (t *pointerTracker) reset() {
	t.hasPrev = false
}

// rayPlanePoint intersects a ray with the plane through center whose normal
// is the given vector. Returns false for rays parallel to the plane or
// pointing away from it.
func rayPlanePoint(origin, dir, center, normal sim.Vec3) (sim.Vec3, bool) {
	denom := dir.Dot(normal)
	if denom > -1e-6 && denom < 1e-6 {
		return sim.Vec3{}, false
	}
	t := center.Sub(origin).Dot(normal) / denom
	if t <= 0 {
		return sim.Vec3{}, false
	}
	return origin.Add(dir.Scale(t)), true
}
