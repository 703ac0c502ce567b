// Package camera maps between window pixels and simulation grid cells.
package camera

// Viewport fits the grid into the window at a uniform scale and keeps it
// centered. The grid is drawn at (OffsetX, OffsetY) with each cell Scale
// pixels wide.
type Viewport struct {
	// Window size in pixels
	ViewportW, ViewportH float32

	// Grid size in cells
	GridW, GridH float32

	// Pixels per cell
	Scale float32

	// Screen position of the grid's top-left corner
	OffsetX, OffsetY float32
}

// New creates a viewport that shows the whole grid. A non-positive scale
// picks the largest one that fits the window.
func New(viewportW, viewportH float32, gridW, gridH int, scale float32) *Viewport {
	v := &Viewport{
		ViewportW: viewportW,
		ViewportH: viewportH,
		GridW:     float32(gridW),
		GridH:     float32(gridH),
		Scale:     scale,
	}
	v.fit(scale <= 0)
	return v
}

// fit recenters the grid, recomputing the scale when auto is set.
func (v *Viewport) fit(auto bool) {
	if auto {
		v.Scale = min(v.ViewportW/v.GridW, v.ViewportH/v.GridH)
	}
	v.OffsetX = (v.ViewportW - v.GridW*v.Scale) / 2
	v.OffsetY = (v.ViewportH - v.GridH*v.Scale) / 2
}

// ScreenToGrid converts a screen position to continuous grid coordinates.
// Cell (i, j) covers [i, i+1) on both axes.
func (v *Viewport) ScreenToGrid(sx, sy float32) (gx, gy float32) {
	gx = (sx - v.OffsetX) / v.Scale
	gy = (sy - v.OffsetY) / v.Scale
	return gx, gy
}

// GridToScreen converts grid coordinates to a screen position.
func (v *Viewport) GridToScreen(gx, gy float32) (sx, sy float32) {
	sx = v.OffsetX + gx*v.Scale
	sy = v.OffsetY + gy*v.Scale
	return sx, sy
}

// DeltaToGrid converts a screen-space movement to cells.
func (v *Viewport) DeltaToGrid(dx, dy float32) (float32, float32) {
	return dx / v.Scale, dy / v.Scale
}

// Contains reports whether a screen position falls on the grid.
func (v *Viewport) Contains(sx, sy float32) bool {
	gx, gy := v.ScreenToGrid(sx, sy)
	return gx >= 0 && gy >= 0 && gx < v.GridW && gy < v.GridH
}

// Resize updates the window size and recenters. An automatically fitted
// viewport also rescales.
func (v *Viewport) Resize(viewportW, viewportH float32, autoScale bool) {
	if viewportW == v.ViewportW && viewportH == v.ViewportH {
		return
	}
	v.ViewportW = viewportW
	v.ViewportH = viewportH
	v.fit(autoScale)
}

// Bounds returns the screen rectangle covered by the grid.
func (v *Viewport) Bounds() (x, y, w, h float32) {
	return v.OffsetX, v.OffsetY, v.GridW * v.Scale, v.GridH * v.Scale
}
