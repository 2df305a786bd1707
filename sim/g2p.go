package sim

// gridUpdateRange converts accumulated momentum to velocity for cells in
// [start, end) and applies the domain wall condition. Each cell has exactly
// one task, so the derived buffer needs no synchronization.
func (s *Simulation) gridUpdateRange(start, end int) {
	g := s.grid
	for i := start; i < end; i++ {
		m := DecodeFixed(g.Mass[i].Load())
		if m <= 0 {
			// Untouched cell: keep whatever the derived buffer holds.
			// G2P only reads cells inside some particle's stencil, and
			// those always received that particle's own mass.
			continue
		}
		inv := 1 / m
		vx := DecodeFixed(g.MomX[i].Load()) * inv
		vy := DecodeFixed(g.MomY[i].Load()) * inv
		vz := DecodeFixed(g.MomZ[i].Load()) * inv

		// No-slip walls: zero the normal component in the one-cell border.
		x, y, z := g.Coords(i)
		if x < 1 || x > g.W-2 {
			vx = 0
		}
		if y < 1 || y > g.H-2 {
			vy = 0
		}
		if z < 1 || z > g.D-2 {
			vz = 0
		}
		g.Cells[i] = GridCell{VX: vx, VY: vy, VZ: vz, Mass: m}
	}
}

// g2pRange gathers grid velocity back onto particles in [start, end),
// rebuilds the affine matrix, applies the external forces in order, then
// integrates and clamps positions into the stencil-safe interior.
func (s *Simulation) g2pRange(start, end int) {
	f := &s.cur
	g := s.grid
	gs := g.sizef
	dt := f.dt

	// Clamp bounds in domain space: grid-space position must stay in
	// [1, size-2] so the stencil base never leaves the lattice.
	loX, hiX := 1/gs.X, (gs.X-2)/gs.X
	loY, hiY := 1/gs.Y, (gs.Y-2)/gs.Y
	loZ, hiZ := 1/gs.Z, (gs.Z-2)/gs.Z

	idle := 1 - f.progress

	for i := start; i < end; i++ {
		pos := s.particles.Pos[i]
		st := makeStencil(pos, gs)

		var v Vec3
		var b Mat3
		for gx := 0; gx < 3; gx++ {
			for gy := 0; gy < 3; gy++ {
				for gz := 0; gz < 3; gz++ {
					w := st.weight(gx, gy, gz)
					cell := g.Cells[g.Index(st.base[0]+gx, st.base[1]+gy, st.base[2]+gz)]
					term := Vec3{cell.VX, cell.VY, cell.VZ}.Scale(w * f.fluidStrength)
					v = v.Add(term)
					b = b.AddOuter(term, st.dist(gx, gy, gz))
				}
			}
		}
		s.particles.C[i] = b.Scale(4 * f.fluidStrength)

		// Gravity in grid space, then convert the rate to domain space.
		v = v.Add(f.gravity.Scale(dt))
		v = Vec3{v.X / gs.X, v.Y / gs.Y, v.Z / gs.Z}

		// Morph spring toward the blended target.
		target := s.targets.Blend(i, f.current, f.next, f.progress)
		s.particles.Target[i] = target
		v = v.Add(target.Sub(pos).Scale(f.stiffness * dt))

		// Unconditional damping, after the spring and before the fields.
		v = v.Scale(f.damping)

		// Low-frequency turbulence.
		v = v.Add(turbulence(pos, f.turbFreq, f.time).Scale(f.turbStrength * dt))

		// Curl flow: strongest while idle, fading through a transition.
		if f.wave2Strength != 0 && idle > 0 {
			flow := curlFlow(pos, f.wave2Freq, f.time).Scale(f.wave2Strength)
			v = v.Add(flow.Scale(dt * idle))
		}

		// Pointer push with cubic falloff around the picking ray.
		d := f.ptrDir.Cross(pos.Sub(f.ptrOrigin)).Length()
		if fall := 1 - 4*d; fall > 0 {
			v = v.Add(f.ptrForce.Scale(fall * fall * fall))
		}

		pos = pos.Add(v.Scale(dt))
		pos.X = clampf(pos.X, loX, hiX)
		pos.Y = clampf(pos.Y, loY, hiY)
		pos.Z = clampf(pos.Z, loZ, hiZ)
		s.particles.Pos[i] = pos

		// Stored velocity is in grid-space units for next frame's P2G.
		s.particles.Vel[i] = Vec3{v.X * gs.X, v.Y * gs.Y, v.Z * gs.Z}
	}
}
