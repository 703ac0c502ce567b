package fluid

// clearBorders zeroes velocity on the outer ring of cells, in place.
func (g *Grid) clearBorders() {
	u, v := g.u.current(), g.v.current()
	far := (g.H - 1) * g.W
	for x := 0; x < g.W; x++ {
		u[x], v[x] = 0, 0
		u[far+x], v[far+x] = 0, 0
	}
	for y := 0; y < g.H; y++ {
		row := y * g.W
		u[row], v[row] = 0, 0
		u[row+g.W-1], v[row+g.W-1] = 0, 0
	}
}

// applyHeatForce accelerates dyed cells upward (negative V) in proportion to
// their ink.
func (g *Grid) applyHeatForce() {
	v, ink := g.v.current(), g.ink.current()
	heat := g.settings.HeatForce
	for i := range v {
		v[i] -= ink[i] * heat
	}
}
