package fluid

// diffuse blends each velocity component toward its 8-neighbor average by the
// viscosity factor. Ink is carried through unchanged.
func (g *Grid) diffuse() {
	visc := g.settings.Viscosity
	u, v, ink := g.u.current(), g.v.current(), g.ink.current()
	nu, nv, nink := g.u.scratch(), g.v.scratch(), g.ink.scratch()

	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			i := x + y*g.W
			nu[i] = u[i] + (g.neighborAverage(u, x, y)-u[i])*visc
			nv[i] = v[i] + (g.neighborAverage(v, x, y)-v[i])*visc
		}
	}
	copy(nink, ink)
	g.Swap()
}
