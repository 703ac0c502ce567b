package fluid

import "math"

// at reads a cell, treating anything outside the grid as 0.
func (g *Grid) at(field []float32, x, y int) float32 {
	if x < 0 || x >= g.W || y < 0 || y >= g.H {
		return 0
	}
	return field[x+y*g.W]
}

// Sample bilinearly interpolates a field at a continuous position. Corners
// outside the grid contribute 0 rather than being clamped, so samples near the
// edge are pulled toward zero.
func (g *Grid) Sample(f Field, x, y float32) float32 {
	return g.sample(g.Values(f), x, y)
}

func (g *Grid) sample(field []float32, x, y float32) float32 {
	fx := math.Floor(float64(x))
	fy := math.Floor(float64(y))
	// Every corner is out of range (this also catches NaN and huge values
	// before the int conversion).
	if !(fx >= -1 && fx < float64(g.W)) || !(fy >= -1 && fy < float64(g.H)) {
		return 0
	}

	bx, by := int(fx), int(fy)
	px, py := bx+1, by+1
	lx := x - float32(fx)
	ly := y - float32(fy)

	n00 := g.at(field, bx, by)
	n10 := g.at(field, px, by)
	n01 := g.at(field, bx, py)
	n11 := g.at(field, px, py)

	return (n00*(1-lx)+n10*lx)*(1-ly) + (n01*(1-lx)+n11*lx)*ly
}

// NeighborAverage returns the sum of the 8 neighbors of a cell divided by 8.
// Missing neighbors count as 0; the divisor never changes.
func (g *Grid) NeighborAverage(f Field, x, y int) float32 {
	return g.neighborAverage(g.Values(f), x, y)
}

func (g *Grid) neighborAverage(field []float32, x, y int) float32 {
	var sum float32
	for dy := -1; dy <= 1; dy++ {
		j := y + dy
		if j < 0 || j >= g.H {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			i := x + dx
			if (dx == 0 && dy == 0) || i < 0 || i >= g.W {
				continue
			}
			sum += field[i+j*g.W]
		}
	}
	return sum / 8
}
