package sim

// Fixed-point codec for the grid accumulators.
//
// P2G scatters from many particles into overlapping grid cells concurrently.
// Plain float addition is not atomic and not order-independent, so the grid
// accumulates scaled int64 values instead: integer addition is both, which
// makes the accumulated result identical regardless of particle order and
// safe under concurrent writers.

// FixedScale is the quantization factor for the real <-> integer mapping.
// Round-trip error is bounded by 0.5/FixedScale.
const FixedScale = 1e7

// EncodeFixed quantizes a real value to its fixed-point representation.
func EncodeFixed(v float32) int64 {
	if v >= 0 {
		return int64(v*FixedScale + 0.5)
	}
	return int64(v*FixedScale - 0.5)
}

// DecodeFixed recovers the real value from its fixed-point representation.
func DecodeFixed(i int64) float32 {
	return float32(float64(i) / FixedScale)
}
