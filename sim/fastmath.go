package sim

import "math"

// Fast trig for the procedural force fields. These run 27x per particle per
// frame in the worst case and the float32->float64 round trips through the
// math package dominate otherwise.

// fastSin approximates sin(x) using a parabola with a correction term.
// Accurate to ~0.001 for all x.
func fastSin(x float32) float32 {
	const pi = math.Pi
	const pi2 = pi * pi
	// Normalize to [-π, π]
	for x > pi {
		x -= 2 * pi
	}
	for x < -pi {
		x += 2 * pi
	}
	ax := x
	if ax < 0 {
		ax = -ax
	}
	y := 4 * x * (pi - ax) / pi2
	return 0.225*(y*absf(y)-y) + y
}

// fastCos approximates cos(x) using fastSin.
func fastCos(x float32) float32 {
	return fastSin(x + math.Pi/2)
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
