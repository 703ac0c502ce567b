package camera

import (
	"math"
	"testing"
)

func TestNewFixedScaleCenters(t *testing.T) {
	v := New(480, 640, 160, 200, 3)

	if v.Scale != 3 {
		t.Errorf("expected scale 3, got %f", v.Scale)
	}
	// 200 cells * 3 = 600 px tall, leaving 40 px split top and bottom
	if v.OffsetX != 0 || v.OffsetY != 20 {
		t.Errorf("expected offset (0, 20), got (%f, %f)", v.OffsetX, v.OffsetY)
	}
}

func TestNewAutoScale(t *testing.T) {
	v := New(800, 600, 100, 100, 0)

	if v.Scale != 6 {
		t.Errorf("expected auto scale 6, got %f", v.Scale)
	}
	if v.OffsetX != 100 || v.OffsetY != 0 {
		t.Errorf("expected offset (100, 0), got (%f, %f)", v.OffsetX, v.OffsetY)
	}
}

func TestScreenToGridRoundtrip(t *testing.T) {
	v := New(480, 640, 160, 200, 3)

	testCases := []struct{ sx, sy float32 }{
		{0, 20},
		{240, 320},
		{479, 619},
	}
	for _, tc := range testCases {
		gx, gy := v.ScreenToGrid(tc.sx, tc.sy)
		sx, sy := v.GridToScreen(gx, gy)
		if math.Abs(float64(sx-tc.sx)) > 0.01 || math.Abs(float64(sy-tc.sy)) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, gx, gy, sx, sy)
		}
	}
}

func TestScreenToGridCells(t *testing.T) {
	v := New(480, 640, 160, 200, 3)

	gx, gy := v.ScreenToGrid(7, 26)
	if int(gx) != 2 || int(gy) != 2 {
		t.Errorf("expected cell (2, 2), got (%f, %f)", gx, gy)
	}
}

func TestContains(t *testing.T) {
	v := New(480, 640, 160, 200, 3)

	tests := []struct {
		name   string
		sx, sy float32
		want   bool
	}{
		{"center", 240, 320, true},
		{"top margin", 240, 10, false},
		{"bottom margin", 240, 630, false},
		{"first pixel", 0, 20, true},
		{"past right", 480, 320, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.Contains(tt.sx, tt.sy); got != tt.want {
				t.Errorf("Contains(%f, %f) = %v, want %v", tt.sx, tt.sy, got, tt.want)
			}
		})
	}
}

func TestDeltaToGrid(t *testing.T) {
	v := New(480, 640, 160, 200, 4)
	dx, dy := v.DeltaToGrid(8, -12)
	if dx != 2 || dy != -3 {
		t.Errorf("expected (2, -3), got (%f, %f)", dx, dy)
	}
}

func TestResize(t *testing.T) {
	v := New(480, 640, 160, 200, 3)

	v.Resize(600, 640, false)
	if v.Scale != 3 {
		t.Errorf("fixed scale changed on resize: %f", v.Scale)
	}
	if v.OffsetX != 60 {
		t.Errorf("expected offset x 60 after resize, got %f", v.OffsetX)
	}

	v.Resize(320, 400, true)
	if v.Scale != 2 {
		t.Errorf("expected auto scale 2, got %f", v.Scale)
	}
	x, y, w, h := v.Bounds()
	if x != 0 || y != 0 || w != 320 || h != 400 {
		t.Errorf("unexpected bounds (%f, %f, %f, %f)", x, y, w, h)
	}
}
