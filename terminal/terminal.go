// Package terminal runs the simulation in a text terminal, drawing ink as
// colored glyphs with termbox.
package terminal

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/nsf/termbox-go"

	"github.com/pthm-cable/fluidgrid/fluid"
	"github.com/pthm-cable/fluidgrid/game"
)

// Ramp orders glyphs from empty to saturated ink.
const Ramp = " .:-=+*#%@"

const statusRows = 1

// Terminal drives a game from a termbox event loop.
type Terminal struct {
	game *game.Game
	fps  int

	radius       float32
	velocityGain float32

	// Last mouse position while a button is held, -1 when released
	lastX, lastY int

	tw, th int
	cells  []termbox.Cell
	pixels []color.RGBA
}

// New creates a terminal front end for g. fps bounds the step rate.
func New(g *game.Game, fps int, radius, velocityGain float32) *Terminal {
	if fps < 1 {
		fps = 30
	}
	return &Terminal{
		game:         g,
		fps:          fps,
		radius:       radius,
		velocityGain: velocityGain,
		lastX:        -1,
		lastY:        -1,
	}
}

// Run takes over the terminal until Esc is pressed or ctx is cancelled.
func (t *Terminal) Run(ctx context.Context) error {
	if err := termbox.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer termbox.Close()
	termbox.SetInputMode(termbox.InputEsc | termbox.InputMouse)
	termbox.SetOutputMode(termbox.Output256)
	t.resize(termbox.Size())

	events := make(chan termbox.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := termbox.PollEvent()
			if ev.Type == termbox.EventInterrupt {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	defer termbox.Interrupt()

	ticker := time.NewTicker(time.Second / time.Duration(t.fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if ev.Type == termbox.EventError {
				return fmt.Errorf("terminal event: %w", ev.Err)
			}
			if !t.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			t.game.Step()
			t.draw()
		}
	}
}

// handleEvent applies one input event. It returns false when the user quits.
func (t *Terminal) handleEvent(ev termbox.Event) bool {
	switch ev.Type {
	case termbox.EventKey:
		switch {
		case ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC:
			return false
		case ev.Key == termbox.KeySpace:
			t.game.SetPaused(!t.game.Paused())
		case ev.Ch == 'c':
			t.game.Clear()
		case ev.Ch == '[':
			t.radius = max(t.radius-1, game.MinBrushRadius)
		case ev.Ch == ']':
			t.radius = min(t.radius+1, game.MaxBrushRadius)
		}
	case termbox.EventMouse:
		t.handleMouse(ev)
	case termbox.EventResize:
		t.resize(ev.Width, ev.Height)
	}
	return true
}

func (t *Terminal) handleMouse(ev termbox.Event) {
	if ev.Key == termbox.MouseRelease {
		t.lastX, t.lastY = -1, -1
		return
	}
	if ev.MouseY >= t.fieldRows() {
		return
	}

	gx, gy := t.cellToGrid(ev.MouseX, ev.MouseY)
	switch ev.Key {
	case termbox.MouseLeft:
		t.game.Paint(gx, gy, t.radius)
	case termbox.MouseMiddle:
		t.game.Erase(gx, gy, t.radius)
	case termbox.MouseRight:
		if t.lastX >= 0 {
			px, py := t.cellToGrid(t.lastX, t.lastY)
			t.game.PaintVelocity(gx, gy, t.radius, (gx-px)*t.velocityGain, (gy-py)*t.velocityGain)
		}
	}
	t.lastX, t.lastY = ev.MouseX, ev.MouseY
}

func (t *Terminal) resize(w, h int) {
	t.tw, t.th = w, h
	t.cells = make([]termbox.Cell, w*h)
}

func (t *Terminal) fieldRows() int {
	return max(t.th-statusRows, 0)
}

// cellToGrid maps the center of a terminal cell to grid coordinates.
func (t *Terminal) cellToGrid(cx, cy int) (float32, float32) {
	gw, gh := t.game.Grid().Size()
	rows := max(t.fieldRows(), 1)
	cols := max(t.tw, 1)
	return (float32(cx) + 0.5) * float32(gw) / float32(cols),
		(float32(cy) + 0.5) * float32(gh) / float32(rows)
}

func (t *Terminal) draw() {
	grid := t.game.Grid()
	gw, gh := grid.Size()
	t.pixels = grid.Colorize(t.pixels)

	Rasterize(grid.Values(fluid.FieldInk), t.pixels, gw, gh, t.tw, t.fieldRows(), t.cells)
	copy(termbox.CellBuffer(), t.cells)

	status := fmt.Sprintf(" tick %d  brush %.0f  emitters %d", t.game.Tick(), t.radius, t.game.Emitters())
	if t.game.Paused() {
		status += "  PAUSED"
	}
	status += "  [LMB ink  RMB push  MMB erase  c clear  esc quit]"
	y := t.th - 1
	for x, r := range []rune(status) {
		if x >= t.tw {
			break
		}
		termbox.SetCell(x, y, r, termbox.ColorBlack, termbox.ColorWhite)
	}
	termbox.Flush()
}

// Rasterize fills the first rows*cols cells with glyphs for the nearest grid
// cell. Glyph density follows ink, color follows the palette-mapped pixel.
func Rasterize(ink []float32, pixels []color.RGBA, gw, gh, cols, rows int, cells []termbox.Cell) {
	if cols <= 0 || rows <= 0 {
		return
	}
	ramp := []rune(Ramp)
	last := len(ramp) - 1
	for cy := 0; cy < rows; cy++ {
		gy := min(cy*gh/rows, gh-1)
		for cx := 0; cx < cols; cx++ {
			gx := min(cx*gw/cols, gw-1)
			i := gx + gy*gw

			level := int(ink[i]*float32(last) + 0.5)
			level = max(0, min(level, last))

			cells[cx+cy*cols] = termbox.Cell{
				Ch: ramp[level],
				Fg: Color256(pixels[i]),
				Bg: termbox.ColorDefault,
			}
		}
	}
}

// Color256 maps a color onto the 6x6x6 cube of the 256-color palette.
// termbox 256-color attributes are offset by one.
func Color256(c color.RGBA) termbox.Attribute {
	r := (int(c.R)*5 + 127) / 255
	g := (int(c.G)*5 + 127) / 255
	b := (int(c.B)*5 + 127) / 255
	return termbox.Attribute(16 + 36*r + 6*g + b + 1)
}
