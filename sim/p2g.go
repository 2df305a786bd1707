package sim

import "math"

// Particle-to-grid transfer, stages P2G1 and P2G2. Both scatter into the
// atomic accumulators, so particles in a range can be processed by any
// number of workers in any order. The domain clamp in G2P guarantees every
// stencil stays inside the lattice; there is no per-write bounds check.

// p2g1Range scatters mass and APIC-corrected momentum for particles in
// [start, end). Each particle contributes unit mass, split over its 27-cell
// stencil by the spline weights.
func (s *Simulation) p2g1Range(start, end int) {
	g := s.grid
	for i := start; i < end; i++ {
		st := makeStencil(s.particles.Pos[i], g.sizef)
		vel := s.particles.Vel[i]
		c := s.particles.C[i]
		for gx := 0; gx < 3; gx++ {
			for gy := 0; gy < 3; gy++ {
				for gz := 0; gz < 3; gz++ {
					w := st.weight(gx, gy, gz)
					dist := st.dist(gx, gy, gz)
					mom := vel.Add(c.MulVec(dist)).Scale(w)
					idx := g.Index(st.base[0]+gx, st.base[1]+gy, st.base[2]+gz)
					g.MomX[idx].Add(EncodeFixed(mom.X))
					g.MomY[idx].Add(EncodeFixed(mom.Y))
					g.MomZ[idx].Add(EncodeFixed(mom.Z))
					g.Mass[idx].Add(EncodeFixed(w))
				}
			}
		}
	}
}

// p2g2Range scatters the stress-derived momentum correction. It reads the
// mass P2G1 accumulated (atomic loads; P2G1 has fully completed by the time
// this stage starts) and adds onto the momentum in place.
func (s *Simulation) p2g2Range(start, end int) {
	f := &s.cur
	g := s.grid
	for i := start; i < end; i++ {
		st := makeStencil(s.particles.Pos[i], g.sizef)

		// Density under the particle's own kernel. Always positive: it
		// includes at least this particle's own P2G1 deposit.
		var density float32
		for gx := 0; gx < 3; gx++ {
			for gy := 0; gy < 3; gy++ {
				for gz := 0; gz < 3; gz++ {
					idx := g.Index(st.base[0]+gx, st.base[1]+gy, st.base[2]+gz)
					density += DecodeFixed(g.Mass[idx].Load()) * st.weight(gx, gy, gz)
				}
			}
		}
		volume := 1 / density

		// Equation-of-state pressure. EOSStiffness ships at zero, which
		// makes this a viscosity-only fluid; the term stays in the formula.
		var pressure float32
		if f.eosStiffness > 0 {
			r := density / f.restDensity
			pressure = f.eosStiffness * (powf(r, f.eosPower) - 1)
			if pressure < -0.1 {
				pressure = -0.1
			}
		}

		// stress = -pressure*I + viscosity*(C + C^T)
		c := s.particles.C[i]
		var stress Mat3
		stress[0][0] = -pressure
		stress[1][1] = -pressure
		stress[2][2] = -pressure
		for r := 0; r < 3; r++ {
			for col := 0; col < 3; col++ {
				stress[r][col] += f.viscosity * (c[r][col] + c[col][r])
			}
		}
		eq := stress.Scale(-4 * volume * f.dt)

		for gx := 0; gx < 3; gx++ {
			for gy := 0; gy < 3; gy++ {
				for gz := 0; gz < 3; gz++ {
					w := st.weight(gx, gy, gz)
					mom := eq.MulVec(st.dist(gx, gy, gz)).Scale(w)
					idx := g.Index(st.base[0]+gx, st.base[1]+gy, st.base[2]+gz)
					g.MomX[idx].Add(EncodeFixed(mom.X))
					g.MomY[idx].Add(EncodeFixed(mom.Y))
					g.MomZ[idx].Add(EncodeFixed(mom.Z))
				}
			}
		}
	}
}

func powf(x, y float32) float32 {
	return float32(math.Pow(float64(x), float64(y)))
}
