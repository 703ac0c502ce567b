package fluid

import "math"

// paintOnArray sets every cell whose center lies within radius of (x, y) to
// value. The bounding box is clipped to the grid; an empty intersection is a
// no-op.
func (g *Grid) paintOnArray(field []float32, x, y, radius, value float32) {
	x0 := max(0, float64(x-radius))
	x1 := min(float64(g.W-1), float64(x+radius))
	y0 := max(0, float64(y-radius))
	y1 := min(float64(g.H-1), float64(y+radius))
	// Written so NaN bounds also bail out.
	if !(x0 <= x1) || !(y0 <= y1) {
		return
	}

	r2 := radius * radius
	for j := int(math.Floor(y0)); j <= int(y1); j++ {
		dy := float32(j) - y
		for i := int(math.Floor(x0)); i <= int(x1); i++ {
			dx := float32(i) - x
			if dx*dx+dy*dy <= r2 {
				field[i+j*g.W] = value
			}
		}
	}
}

// Paint fills a disc with ink = 1.
func (g *Grid) Paint(x, y, radius float32) {
	g.paintOnArray(g.ink.current(), x, y, radius, 1)
}

// Erase clears ink inside a disc.
func (g *Grid) Erase(x, y, radius float32) {
	g.paintOnArray(g.ink.current(), x, y, radius, 0)
}

// PaintVelocity overwrites the velocity inside a disc with (vx, vy).
func (g *Grid) PaintVelocity(x, y, radius, vx, vy float32) {
	g.paintOnArray(g.u.current(), x, y, radius, vx)
	g.paintOnArray(g.v.current(), x, y, radius, vy)
}
