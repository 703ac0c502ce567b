package stream

import (
	"encoding/binary"
	"image/color"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pthm-cable/fluidgrid/fluid"
	"github.com/pthm-cable/fluidgrid/telemetry"
)

func dial(t *testing.T, s *Server) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	// Registration happens in the handler goroutine.
	deadline := time.Now().Add(2 * time.Second)
	for s.Viewers() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("viewer never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
	return conn
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Command
		wantErr bool
	}{
		{"paint", `{"op":"paint","x":3,"y":4,"r":2}`, Command{Op: OpPaint, X: 3, Y: 4, R: 2}, false},
		{"velocity", `{"op":"velocity","x":1,"y":1,"r":1,"vx":0.5,"vy":-1}`, Command{Op: OpVelocity, X: 1, Y: 1, R: 1, VX: 0.5, VY: -1}, false},
		{"clear", `{"op":"clear"}`, Command{Op: OpClear}, false},
		{"unknown op", `{"op":"explode"}`, Command{}, true},
		{"bad json", `{"op":`, Command{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCommand([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCommandApply(t *testing.T) {
	g, err := fluid.New(10, 10)
	if err != nil {
		t.Fatal(err)
	}

	if kind := (Command{Op: OpPaint, X: 5, Y: 5}).Apply(g); kind != telemetry.EventPaint {
		t.Errorf("paint kind = %v", kind)
	}
	if g.Value(fluid.FieldInk, 5, 5) != 1 {
		t.Error("paint did not set ink")
	}

	if kind := (Command{Op: OpVelocity, X: 2, Y: 2, VX: 1, VY: -1}).Apply(g); kind != telemetry.EventVelocity {
		t.Errorf("velocity kind = %v", kind)
	}
	if g.Value(fluid.FieldU, 2, 2) != 1 || g.Value(fluid.FieldV, 2, 2) != -1 {
		t.Error("velocity not painted")
	}

	if kind := (Command{Op: OpErase, X: 5, Y: 5}).Apply(g); kind != telemetry.EventErase {
		t.Errorf("erase kind = %v", kind)
	}
	if g.Value(fluid.FieldInk, 5, 5) != 0 {
		t.Error("erase left ink behind")
	}

	g.Paint(1, 1, 0)
	if kind := (Command{Op: OpClear}).Apply(g); kind != telemetry.EventClear {
		t.Errorf("clear kind = %v", kind)
	}
	if g.Value(fluid.FieldInk, 1, 1) != 0 || g.Value(fluid.FieldU, 2, 2) != 0 {
		t.Error("clear left state behind")
	}
}

func TestEncodeFrame(t *testing.T) {
	pixels := []color.RGBA{{1, 2, 3, 4}, {5, 6, 7, 8}}
	frame := EncodeFrame(2, 1, pixels)

	if len(frame) != 8+8 {
		t.Fatalf("frame length = %d, want 16", len(frame))
	}
	if w := binary.LittleEndian.Uint32(frame[0:]); w != 2 {
		t.Errorf("width = %d", w)
	}
	if h := binary.LittleEndian.Uint32(frame[4:]); h != 1 {
		t.Errorf("height = %d", h)
	}
	if frame[8] != 1 || frame[15] != 8 {
		t.Errorf("pixel bytes = %v", frame[8:])
	}
}

func TestServerReceivesCommands(t *testing.T) {
	s := NewServer("")
	conn := dial(t, s)

	if err := conn.WriteJSON(Command{Op: OpPaint, X: 1, Y: 2, R: 3}); err != nil {
		t.Fatal(err)
	}
	// Garbage is skipped, not fatal to the connection.
	if err := conn.WriteMessage(websocket.TextMessage, []byte("nope")); err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteJSON(Command{Op: OpClear}); err != nil {
		t.Fatal(err)
	}

	want := []string{OpPaint, OpClear}
	for _, op := range want {
		select {
		case cmd := <-s.Commands():
			if cmd.Op != op {
				t.Errorf("op = %q, want %q", cmd.Op, op)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %q", op)
		}
	}
}

func TestServerPublishesFrames(t *testing.T) {
	s := NewServer("")
	conn := dial(t, s)

	s.Publish(1, 1, []color.RGBA{{255, 0, 0, 255}})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	typ, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if typ != websocket.BinaryMessage {
		t.Errorf("message type = %d, want binary", typ)
	}
	if len(data) != 12 || data[8] != 255 || data[9] != 0 {
		t.Errorf("frame = %v", data)
	}
}

func TestServerDropsClosedViewer(t *testing.T) {
	s := NewServer("")
	conn := dial(t, s)
	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for s.Viewers() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("closed viewer was not dropped")
		}
		time.Sleep(5 * time.Millisecond)
	}
	// Publishing with no viewers is a no-op.
	s.Publish(1, 1, []color.RGBA{{}})
}
