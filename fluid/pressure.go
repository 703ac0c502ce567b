package fluid

// applyPressure relaxes the velocity field toward lower divergence. Each of
// the configured iterations estimates P from the current velocity and then
// subtracts its gradient. This is a fixed-point approximation, not a Poisson
// solve; divergence is reduced, not eliminated.
func (g *Grid) applyPressure() {
	for k := 0; k < g.settings.Iterations; k++ {
		g.updatePressure()
		g.subtractPressureGradient()
	}
}

// updatePressure overwrites P with the divergence estimate of the current
// velocity. U and V are only read, so P needs no second buffer.
func (g *Grid) updatePressure() {
	u, v := g.u.current(), g.v.current()
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			nx := g.at(u, x-1, y)
			px := g.at(u, x+1, y)
			ny := g.at(v, x, y-1)
			py := g.at(v, x, y+1)
			g.p[x+y*g.W] = ((nx - px) + (ny - py)) / 4
		}
	}
}

// subtractPressureGradient writes velocity minus the P gradient into the
// scratch buffers and swaps. Ink passes through.
func (g *Grid) subtractPressureGradient() {
	u, v, ink := g.u.current(), g.v.current(), g.ink.current()
	nu, nv, nink := g.u.scratch(), g.v.scratch(), g.ink.scratch()

	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			i := x + y*g.W
			nx := g.at(g.p, x-1, y)
			px := g.at(g.p, x+1, y)
			ny := g.at(g.p, x, y-1)
			py := g.at(g.p, x, y+1)
			nu[i] = u[i] + (nx - px)
			nv[i] = v[i] + (ny - py)
		}
	}
	copy(nink, ink)
	g.Swap()
}
