package sim

// stencil is the 3x3x3 quadratic B-spline footprint of one particle on the
// grid. The base cell is floor(gp)-1 per axis; w holds the three per-axis
// spline weights, whose products over the 27 neighbors sum to one.
type stencil struct {
	gp   Vec3
	base [3]int
	w    [3][3]float32
}

// makeStencil maps a domain-normalized position into grid-cell space and
// evaluates the quadratic spline weights from the fractional offset.
func makeStencil(pos Vec3, size Vec3) stencil {
	gp := Vec3{pos.X * size.X, pos.Y * size.Y, pos.Z * size.Z}
	var st stencil
	st.gp = gp
	for axis, v := range [3]float32{gp.X, gp.Y, gp.Z} {
		f := floorf(v)
		st.base[axis] = int(f) - 1
		d := v - f - 0.5
		st.w[axis][0] = 0.5 * (0.5 - d) * (0.5 - d)
		st.w[axis][1] = 0.75 - d*d
		st.w[axis][2] = 0.5 * (0.5 + d) * (0.5 + d)
	}
	return st
}

// weight is the product of the per-axis weights for neighbor (i,j,k),
// each in {0,1,2}.
func (st *stencil) weight(i, j, k int) float32 {
	return st.w[0][i] * st.w[1][j] * st.w[2][k]
}

// dist is the offset from the particle to the center of neighbor (i,j,k)
// in grid-cell space.
func (st *stencil) dist(i, j, k int) Vec3 {
	return Vec3{
		float32(st.base[0]+i) + 0.5 - st.gp.X,
		float32(st.base[1]+j) + 0.5 - st.gp.Y,
		float32(st.base[2]+k) + 0.5 - st.gp.Z,
	}
}
