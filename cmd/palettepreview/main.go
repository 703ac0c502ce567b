// Palette preview tool - shows how ink values map through a palette.
//
// Usage: go run ./cmd/palettepreview [-palette fire|mono|ocean|path/to/ramp.png]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"slices"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fluidgrid/fluid"
	"github.com/pthm-cable/fluidgrid/palette"
)

const (
	windowWidth  = 800
	windowHeight = 360
	rampWidth    = 512
	rampHeight   = 64
)

func load(name string) (fluid.Palette, error) {
	if slices.Contains(palette.Names(), name) {
		return palette.Named(name)
	}
	return palette.Load(name)
}

func main() {
	source := flag.String("palette", "fire", "Palette name or image path")
	flag.Parse()

	pal, err := load(*source)
	if err != nil {
		slog.Error("failed to load palette", "source", *source, "error", err)
		os.Exit(1)
	}

	rl.InitWindow(windowWidth, windowHeight, "Palette Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	img := rl.GenImageColor(rampWidth, 1, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	ramp := make([]color.RGBA, rampWidth)
	upload := func() {
		for x := range ramp {
			ramp[x] = pal.Sample(float32(x) / float32(rampWidth-1))
		}
		rl.UpdateTexture(texture, ramp)
	}
	upload()

	value := float32(0.5)

	for !rl.WindowShouldClose() {
		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawText(fmt.Sprintf("Palette: %s (%d colors)", *source, len(pal)), 10, 10, 20, rl.DarkGray)

		// Ramp stretched vertically
		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: rampWidth, Height: 1},
			rl.Rectangle{X: 10, Y: 45, Width: rampWidth, Height: rampHeight},
			rl.Vector2{},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 45, rampWidth, rampHeight, rl.DarkGray)

		// Stops
		for i, c := range pal {
			x := int32(10)
			if len(pal) > 1 {
				x += int32(float32(i) / float32(len(pal)-1) * (rampWidth - 1))
			}
			rl.DrawLine(x, 45+rampHeight, x, 45+rampHeight+8, rl.DarkGray)
			rl.DrawRectangle(x-4, 45+rampHeight+10, 8, 8, rl.Color{R: c.R, G: c.G, B: c.B, A: 255})
		}

		// Value slider and sampled swatch
		sliderY := float32(45 + rampHeight + 40)
		rl.DrawText("Ink value", 10, int32(sliderY), 14, rl.Gray)
		value = gui.SliderBar(
			rl.Rectangle{X: 10, Y: sliderY + 18, Width: rampWidth, Height: 20},
			"0", "1",
			value, 0, 1,
		)
		c := pal.Sample(value)
		rl.DrawRectangle(rampWidth+40, 45, 120, 120, rl.Color{R: c.R, G: c.G, B: c.B, A: c.A})
		rl.DrawRectangleLines(rampWidth+40, 45, 120, 120, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("v=%.3f", value), rampWidth+40, 175, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("rgba(%d, %d, %d, %d)", c.R, c.G, c.B, c.A), rampWidth+40, 195, 14, rl.DarkGray)

		// Built-in palette buttons
		bx := float32(10)
		for _, name := range palette.Names() {
			if gui.Button(rl.Rectangle{X: bx, Y: sliderY + 60, Width: 90, Height: 26}, name) {
				if p, err := palette.Named(name); err == nil {
					pal = p
					*source = name
					upload()
				}
			}
			bx += 100
		}

		rl.EndDrawing()
	}
}
