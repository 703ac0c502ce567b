package fluid

// advect moves U, V and Ink along the velocity field by tracing each cell
// backwards and resampling the source position (semi-Lagrangian transport).
func (g *Grid) advect() {
	dt := g.settings.Speed
	u, v, ink := g.u.current(), g.v.current(), g.ink.current()
	nu, nv, nink := g.u.scratch(), g.v.scratch(), g.ink.scratch()

	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			i := x + y*g.W
			sx := float32(x) - u[i]*dt
			sy := float32(y) - v[i]*dt
			nu[i] = g.sample(u, sx, sy)
			nv[i] = g.sample(v, sx, sy)
			nink[i] = g.sample(ink, sx, sy)
		}
	}
	g.Swap()
}
