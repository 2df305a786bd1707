// Package camera provides an orbital camera for viewing the simulation volume.
package camera

import (
	"math"

	"github.com/pthm-cable/goop/sim"
)

// Camera orbits a fixed target point. Yaw rotates around the world Y axis,
// pitch tilts above or below the horizon, distance dollies in and out.
type Camera struct {
	// Target is the orbit center in world coordinates.
	Target sim.Vec3

	// Yaw and Pitch are in radians. Yaw is unbounded, pitch is clamped
	// short of the poles so the up vector never degenerates.
	Yaw   float32
	Pitch float32

	// Distance from the target along the view ray.
	Distance float32

	// Field of view in degrees, for the projection setup.
	FOV float32

	// Distance constraints.
	MinDistance, MaxDistance float32

	// yawTravel accumulates absolute yaw change since the last drain.
	yawTravel float32
}

const (
	defaultYaw      = math.Pi / 4
	defaultPitch    = 0.35
	defaultDistance = 2.2
	maxPitch        = 1.45 // just short of pi/2
)

// New creates a camera orbiting the given target at the default pose.
func New(target sim.Vec3) *Camera {
	return &Camera{
		Target:      target,
		Yaw:         defaultYaw,
		Pitch:       defaultPitch,
		Distance:    defaultDistance,
		FOV:         45,
		MinDistance: 0.5,
		MaxDistance: 8.0,
	}
}

// Position returns the eye position in world coordinates.
func (c *Camera) Position() sim.Vec3 {
	cy := float32(math.Cos(float64(c.Yaw)))
	sy := float32(math.Sin(float64(c.Yaw)))
	cp := float32(math.Cos(float64(c.Pitch)))
	sp := float32(math.Sin(float64(c.Pitch)))
	return sim.Vec3{
		X: c.Target.X + c.Distance*cp*cy,
		Y: c.Target.Y + c.Distance*sp,
		Z: c.Target.Z + c.Distance*cp*sy,
	}
}

// Orbit rotates the camera by the given yaw and pitch deltas in radians.
func (c *Camera) Orbit(dyaw, dpitch float32) {
	c.Yaw += dyaw
	c.Pitch = clamp(c.Pitch+dpitch, -maxPitch, maxPitch)
	c.yawTravel += absf(dyaw)
}

// Dolly multiplies the orbit distance by the given factor, clamped to the
// distance constraints.
func (c *Camera) Dolly(factor float32) {
	c.Distance = clamp(c.Distance*factor, c.MinDistance, c.MaxDistance)
}

// DrainYawTravel returns the absolute yaw distance traveled since the last
// call and resets the accumulator.
func (c *Camera) DrainYawTravel() float32 {
	t := c.yawTravel
	c.yawTravel = 0
	return t
}

// Reset returns the camera to the default pose, keeping the target.
func (c *Camera) Reset() {
	c.Yaw = defaultYaw
	c.Pitch = defaultPitch
	c.Distance = defaultDistance
	c.yawTravel = 0
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
