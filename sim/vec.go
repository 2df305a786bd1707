package sim

import "math"

// Vec3 is a float32 3-vector. Value semantics; all methods return copies.
type Vec3 struct {
	X, Y, Z float32
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Dot(o Vec3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Length() float32 {
	return sqrtf(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns the unit vector, or the zero vector when the length
// is too small to divide by.
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l < 1e-8 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// ClampLength limits the vector magnitude to max.
func (v Vec3) ClampLength(max float32) Vec3 {
	l := v.Length()
	if l <= max || l == 0 {
		return v
	}
	return v.Scale(max / l)
}

// Lerp interpolates componentwise between a and b by t.
func Lerp(a, b Vec3, t float32) Vec3 {
	return Vec3{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
	}
}

// Mat3 is a row-major float32 3x3 matrix.
type Mat3 [3][3]float32

// MulVec computes m*v.
func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

func (m Mat3) Scale(s float32) Mat3 {
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			m[r][c] *= s
		}
	}
	return m
}

// AddOuter accumulates the outer product v⊗d: m[r][c] += v[r]*d[c].
func (m Mat3) AddOuter(v, d Vec3) Mat3 {
	m[0][0] += v.X * d.X
	m[0][1] += v.X * d.Y
	m[0][2] += v.X * d.Z
	m[1][0] += v.Y * d.X
	m[1][1] += v.Y * d.Y
	m[1][2] += v.Y * d.Z
	m[2][0] += v.Z * d.X
	m[2][1] += v.Z * d.Y
	m[2][2] += v.Z * d.Z
	return m
}

func sqrtf(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

func floorf(x float32) float32 {
	return float32(math.Floor(float64(x)))
}

// clampf clamps v to [lo, hi].
func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
