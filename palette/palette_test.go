package palette

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/mazznoer/colorgrad"

	"github.com/pthm-cable/fluidgrid/config"
	"github.com/pthm-cable/fluidgrid/fluid"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		in      []string
		want    fluid.Palette
		wantErr bool
	}{
		{"six digit", []string{"#000000", "#ff8000"}, fluid.Palette{{0, 0, 0, 255}, {255, 128, 0, 255}}, false},
		{"short form", []string{"#fff", "000"}, fluid.Palette{{255, 255, 255, 255}, {0, 0, 0, 255}}, false},
		{"with alpha", []string{"#01020304", "#ffffff00"}, fluid.Palette{{1, 2, 3, 4}, {255, 255, 255, 0}}, false},
		{"too short", []string{"#ffffff"}, nil, true},
		{"bad digits", []string{"#zzzzzz", "#000000"}, nil, true},
		{"bad length", []string{"#12345", "#000000"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHex(%v) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseHex(%v) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("color %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNamed(t *testing.T) {
	for _, name := range Names() {
		p, err := Named(name)
		if err != nil {
			t.Errorf("Named(%q): %v", name, err)
			continue
		}
		if len(p) < 2 {
			t.Errorf("preset %q has %d colors", name, len(p))
		}
	}
	if _, err := Named("nope"); !errors.Is(err, ErrUnknownName) {
		t.Errorf("Named(nope) error = %v, want ErrUnknownName", err)
	}
}

func TestLoadUsesTopRow(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.RGBA{10, 0, 0, 255})
	img.Set(1, 0, color.RGBA{20, 0, 0, 255})
	img.Set(2, 0, color.RGBA{30, 0, 0, 255})
	img.Set(0, 1, color.RGBA{99, 99, 99, 255})

	path := filepath.Join(t.TempDir(), "ramp.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(p) != 3 {
		t.Fatalf("Load returned %d colors, want 3", len(p))
	}
	for i, want := range []uint8{10, 20, 30} {
		if p[i].R != want {
			t.Errorf("color %d red = %d, want %d", i, p[i].R, want)
		}
	}
}

func TestFromImageTooNarrow(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 4))
	if _, err := FromImage(img); !errors.Is(err, fluid.ErrPaletteTooShort) {
		t.Errorf("FromImage error = %v, want ErrPaletteTooShort", err)
	}
}

func TestFromConfigPrecedence(t *testing.T) {
	p, err := FromConfig(config.PaletteConfig{Name: "mono", Colors: []string{"#ff0000", "#00ff00", "#0000ff"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(p) != 2 {
		t.Errorf("name should win over colors, got %d colors", len(p))
	}

	p, err = FromConfig(config.PaletteConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if len(p) != 2 || p[1] != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("empty config = %v, want default ramp", p)
	}

	if _, err := FromConfig(config.PaletteConfig{Path: filepath.Join(t.TempDir(), "missing.png")}); err == nil {
		t.Error("missing palette image should fail")
	}
}

func TestFromGradient(t *testing.T) {
	grad, err := colorgrad.NewGradient().HtmlColors("#000000", "#ffffff").Build()
	if err != nil {
		t.Fatal(err)
	}

	p := FromGradient(grad, 5)
	if len(p) != 5 {
		t.Fatalf("got %d colors, want 5", len(p))
	}
	if p[0] != (color.RGBA{0, 0, 0, 255}) || p[4] != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("endpoints = %v, %v", p[0], p[4])
	}
	for i := 1; i < len(p); i++ {
		if p[i].R < p[i-1].R {
			t.Errorf("ramp not increasing at %d: %v", i, p)
		}
	}

	if got := FromGradient(grad, 0); len(got) != 2 {
		t.Errorf("n=0 gave %d colors, want 2", len(got))
	}
}
