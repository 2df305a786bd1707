// Package shapes builds the per-particle target point sets the simulation
// morphs between: procedural generators, point-cloud file loaders, and the
// shared-frame normalization that keeps morph blending spatially consistent.
package shapes

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/goop/sim"
)

// Sphere samples n points over a sphere surface using the golden-angle
// spiral, which spaces points evenly without clustering at the poles.
func Sphere(n int) []sim.Vec3 {
	const golden = math.Pi * (3 - 2.2360679775) // π(3-√5)
	pts := make([]sim.Vec3, n)
	for i := 0; i < n; i++ {
		y := 1 - 2*(float64(i)+0.5)/float64(n)
		r := math.Sqrt(1 - y*y)
		a := golden * float64(i)
		pts[i] = sim.Vec3{
			X: float32(r * math.Cos(a)),
			Y: float32(y),
			Z: float32(r * math.Sin(a)),
		}
	}
	return pts
}

// Torus samples n points over a torus surface with the given major and
// minor radii, winding both angles at incommensurate rates so the samples
// cover the surface instead of tracing a closed ring.
func Torus(n int, major, minor float32) []sim.Vec3 {
	pts := make([]sim.Vec3, n)
	for i := 0; i < n; i++ {
		u := float64(i) * 2.399963229728653 // golden angle
		v := float64(i) / float64(n) * 2 * math.Pi * 13
		ring := float64(major) + float64(minor)*math.Cos(v)
		pts[i] = sim.Vec3{
			X: float32(ring * math.Cos(u)),
			Y: float32(float64(minor) * math.Sin(v)),
			Z: float32(ring * math.Sin(u)),
		}
	}
	return pts
}

// Blob samples a sphere whose radius is displaced by smooth simplex noise,
// giving an organic lumpy volume. Deterministic for a given seed.
func Blob(n int, seed int64) []sim.Vec3 {
	noise := opensimplex.New(seed)
	pts := Sphere(n)
	for i, p := range pts {
		d := noise.Eval3(float64(p.X)*1.7, float64(p.Y)*1.7, float64(p.Z)*1.7)
		r := 1 + 0.45*float32(d)
		pts[i] = p.Scale(r)
	}
	return pts
}

// Normalize maps all sets into [0,1]^3 with a single shared transform:
// subtract the midpoint of the bounding box spanning every set, divide by
// the largest axis range, then recentre on 0.5 with a margin that keeps
// targets inside the grid's padded interior. Mutates the sets in place.
func Normalize(sets ...[]sim.Vec3) {
	const margin = 0.8

	lo := sim.Vec3{X: float32(math.Inf(1)), Y: float32(math.Inf(1)), Z: float32(math.Inf(1))}
	hi := sim.Vec3{X: float32(math.Inf(-1)), Y: float32(math.Inf(-1)), Z: float32(math.Inf(-1))}
	for _, set := range sets {
		for _, p := range set {
			lo.X = min(lo.X, p.X)
			lo.Y = min(lo.Y, p.Y)
			lo.Z = min(lo.Z, p.Z)
			hi.X = max(hi.X, p.X)
			hi.Y = max(hi.Y, p.Y)
			hi.Z = max(hi.Z, p.Z)
		}
	}

	mid := lo.Add(hi).Scale(0.5)
	span := max(hi.X-lo.X, hi.Y-lo.Y, hi.Z-lo.Z)
	if span <= 0 {
		span = 1
	}
	scale := margin / span

	for _, set := range sets {
		for i, p := range set {
			set[i] = p.Sub(mid).Scale(scale).Add(sim.Vec3{X: 0.5, Y: 0.5, Z: 0.5})
		}
	}
}

// Assign maps an arbitrary-size point cloud onto exactly n per-particle
// targets. Larger clouds are stride-sampled; smaller ones cycle with a
// little jitter so stacked particles do not share an exact target.
func Assign(points []sim.Vec3, n int, rng *rand.Rand) []sim.Vec3 {
	out := make([]sim.Vec3, n)
	if len(points) == 0 {
		return out
	}
	if len(points) >= n {
		stride := float64(len(points)) / float64(n)
		for i := 0; i < n; i++ {
			out[i] = points[int(float64(i)*stride)]
		}
		return out
	}
	for i := 0; i < n; i++ {
		p := points[i%len(points)]
		if i >= len(points) {
			p = p.Add(sim.Vec3{
				X: (rng.Float32() - 0.5) * 0.01,
				Y: (rng.Float32() - 0.5) * 0.01,
				Z: (rng.Float32() - 0.5) * 0.01,
			})
		}
		out[i] = p
	}
	return out
}

// Default builds the three stock shapes (sphere, torus, blob), normalized
// in a shared frame and assigned one target per particle.
func Default(n int, seed int64) [sim.NumShapes][]sim.Vec3 {
	rng := rand.New(rand.NewSource(seed))
	sphere := Sphere(n)
	torus := Torus(n, 1.0, 0.42)
	blob := Blob(n, seed)
	Normalize(sphere, torus, blob)
	return [sim.NumShapes][]sim.Vec3{
		Assign(sphere, n, rng),
		Assign(torus, n, rng),
		Assign(blob, n, rng),
	}
}
