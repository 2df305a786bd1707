package sim

// Procedural force fields applied in G2P. Both are deterministic standing
// waves in (position, time); they need no storage and evaluate identically
// for any particle order.

// turbulence is the low-frequency drift field. Each axis mixes a sine and a
// cosine of the other two axes with distinct phase offsets and time rates so
// the field never settles into a fixed pattern.
func turbulence(p Vec3, freq, t float32) Vec3 {
	x := p.X * freq
	y := p.Y * freq
	z := p.Z * freq
	return Vec3{
		fastSin(y+t*1.3+1.7) * fastCos(z+t*0.8),
		fastSin(z+t*1.1+4.2) * fastCos(x+t*0.9),
		fastSin(x+t*0.7+2.6) * fastCos(y+t*1.2),
	}
}

// curlFlow is the higher-frequency "smoke" field: three scalar lobes are
// differenced into a curl-like vector, which makes the components sum to
// zero and keeps the flow visually divergence-free, then normalized.
func curlFlow(p Vec3, freq, t float32) Vec3 {
	x := p.X * freq
	y := p.Y * freq
	z := p.Z * freq
	n1 := fastSin(y+t*0.9) * fastCos(z+t*0.6)
	n2 := fastSin(z+t*0.8) * fastCos(x+t*0.7)
	n3 := fastSin(x+t*1.0) * fastCos(y+t*0.5)
	return Vec3{n2 - n3, n3 - n1, n1 - n2}.Normalized()
}
