package fluid

import (
	"errors"
	"math"
	"testing"
)

func newTestGrid(t *testing.T, w, h int) *Grid {
	t.Helper()
	g, err := New(w, h)
	if err != nil {
		t.Fatalf("New(%d, %d): %v", w, h, err)
	}
	return g
}

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestNewRejectsInvalidSize(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 4},
		{"zero height", 4, 0},
		{"negative width", -1, 4},
		{"negative height", 4, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.w, tt.h)
			if !errors.Is(err, ErrInvalidSize) {
				t.Errorf("New(%d, %d) error = %v, want ErrInvalidSize", tt.w, tt.h, err)
			}
			if g != nil {
				t.Errorf("New(%d, %d) returned a grid on error", tt.w, tt.h)
			}
		})
	}
}

func TestNewIsZeroed(t *testing.T) {
	g := newTestGrid(t, 7, 5)
	if w, h := g.Size(); w != 7 || h != 5 {
		t.Fatalf("Size() = %dx%d, want 7x5", w, h)
	}
	for _, f := range []Field{FieldU, FieldV, FieldInk, FieldPressure} {
		vals := g.Values(f)
		if len(vals) != 35 {
			t.Fatalf("%s has %d cells, want 35", f, len(vals))
		}
		for i, v := range vals {
			if v != 0 {
				t.Fatalf("%s[%d] = %v, want 0", f, i, v)
			}
		}
	}
	if g.Settings() != DefaultSettings() {
		t.Errorf("Settings() = %+v, want defaults", g.Settings())
	}
}

func TestSwapIsInvolution(t *testing.T) {
	g := newTestGrid(t, 3, 3)
	g.Paint(1, 1, 0)
	before := g.Values(FieldInk)

	g.Swap()
	if &g.Values(FieldInk)[0] == &before[0] {
		t.Fatal("Swap did not change the current ink buffer")
	}
	g.Swap()
	if &g.Values(FieldInk)[0] != &before[0] {
		t.Fatal("double Swap did not restore the original buffer")
	}
	if g.Value(FieldInk, 1, 1) != 1 {
		t.Errorf("ink at center = %v after double swap, want 1", g.Value(FieldInk, 1, 1))
	}
}

func TestValueOutsideGrid(t *testing.T) {
	g := newTestGrid(t, 2, 2)
	g.PaintVelocity(0, 0, 5, 3, 4)
	for _, c := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		if got := g.Value(FieldU, c[0], c[1]); got != 0 {
			t.Errorf("Value(u, %d, %d) = %v, want 0", c[0], c[1], got)
		}
	}
}

func TestResetClearsFields(t *testing.T) {
	g := newTestGrid(t, 4, 4)
	g.SetHeatForce(0.5)
	g.Paint(2, 2, 2)
	g.PaintVelocity(2, 2, 2, 1, 1)
	g.Step()

	g.Reset()
	for _, f := range []Field{FieldU, FieldV, FieldInk, FieldPressure} {
		for i, v := range g.Values(f) {
			if v != 0 {
				t.Fatalf("%s[%d] = %v after Reset", f, i, v)
			}
		}
	}
	if g.Settings().HeatForce != 0.5 {
		t.Errorf("Reset changed settings: %+v", g.Settings())
	}
}

func TestSnapshotRestore(t *testing.T) {
	g := newTestGrid(t, 5, 4)
	g.Paint(2, 2, 1)
	g.PaintVelocity(1, 1, 0, 0.5, -0.25)
	u, v, ink := g.Snapshot()

	g.Reset()
	if err := g.Restore(u, v, ink); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if g.Value(FieldInk, 2, 2) != 1 || g.Value(FieldU, 1, 1) != 0.5 || g.Value(FieldV, 1, 1) != -0.25 {
		t.Errorf("restored values do not match snapshot")
	}

	if err := g.Restore(u[:3], v, ink); err == nil {
		t.Error("Restore with short slice should fail")
	}
}

func TestCloseReleasesEverything(t *testing.T) {
	g := newTestGrid(t, 4, 4)
	g.Close()

	if w, h := g.Size(); w != 0 || h != 0 {
		t.Fatalf("Size() after Close = %dx%d, want 0x0", w, h)
	}
	for _, f := range []Field{FieldU, FieldV, FieldInk, FieldPressure} {
		if len(g.Values(f)) != 0 {
			t.Errorf("%s still holds cells after Close", f)
		}
	}

	// A closed grid is inert.
	g.Step()
	g.Paint(1, 1, 3)
	if got := g.Sample(FieldInk, 1, 1); got != 0 {
		t.Errorf("Sample on closed grid = %v, want 0", got)
	}
}

func TestFieldString(t *testing.T) {
	tests := []struct {
		f    Field
		want string
	}{
		{FieldU, "u"},
		{FieldV, "v"},
		{FieldInk, "ink"},
		{FieldPressure, "pressure"},
		{Field(9), "field(9)"},
	}
	for _, tt := range tests {
		if got := tt.f.String(); got != tt.want {
			t.Errorf("Field(%d).String() = %q, want %q", int(tt.f), got, tt.want)
		}
	}
}
