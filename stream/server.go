// Package stream serves the simulation to remote viewers over websockets.
//
// Every published frame is sent as one binary message: width and height as
// little-endian uint32 followed by width*height RGBA pixels, row-major.
// Viewers send Command values as JSON text messages.
package stream

import (
	"context"
	"encoding/binary"
	"errors"
	"image/color"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait   = 5 * time.Second
	clientQueue = 4
	inboxSize   = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 64 * 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// client is one connected viewer. Frames are queued and written by its own
// goroutine; a slow viewer drops frames instead of stalling the simulation.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Server accepts viewer connections, broadcasts frames and collects commands.
type Server struct {
	addr  string
	inbox chan Command

	mu      sync.Mutex
	clients map[*client]struct{}
}

// NewServer creates a server that will listen on addr.
func NewServer(addr string) *Server {
	return &Server{
		addr:    addr,
		inbox:   make(chan Command, inboxSize),
		clients: make(map[*client]struct{}),
	}
}

// Commands returns the channel viewer commands arrive on. The simulation
// goroutine drains it between steps.
func (s *Server) Commands() <-chan Command {
	return s.inbox
}

// Handler returns the HTTP handler serving the websocket endpoint at /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info("stream server listening", "addr", s.addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), writeWait)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.closeAll()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		if _, ok := err.(websocket.HandshakeError); !ok {
			slog.Warn("websocket upgrade failed", "error", err)
		}
		return
	}

	c := &client{conn: conn, send: make(chan []byte, clientQueue)}
	s.mu.Lock()
	s.clients[c] = struct{}{}
	n := len(s.clients)
	s.mu.Unlock()
	slog.Info("viewer connected", "remote", r.RemoteAddr, "viewers", n)

	go s.writeLoop(c)
	s.readLoop(c)
}

// readLoop parses commands until the connection closes.
func (s *Server) readLoop(c *client) {
	defer s.drop(c)

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("viewer read failed", "error", err)
			}
			return
		}

		cmd, err := ParseCommand(msg)
		if err != nil {
			slog.Debug("ignoring viewer message", "error", err)
			continue
		}
		s.Submit(cmd)
	}
}

// Submit queues a command as if a viewer had sent it. A full inbox drops it.
func (s *Server) Submit(cmd Command) bool {
	select {
	case s.inbox <- cmd:
		return true
	default:
		slog.Debug("command inbox full, dropping", "op", cmd.Op)
		return false
	}
}

func (s *Server) writeLoop(c *client) {
	for frame := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
			s.drop(c)
			return
		}
	}
}

// drop unregisters a client and closes its connection once.
func (s *Server) drop(c *client) {
	s.mu.Lock()
	_, ok := s.clients[c]
	delete(s.clients, c)
	s.mu.Unlock()
	if ok {
		close(c.send)
		c.conn.Close()
	}
}

func (s *Server) closeAll() {
	s.mu.Lock()
	clients := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()
	for _, c := range clients {
		s.drop(c)
	}
}

// Viewers returns the number of connected viewers.
func (s *Server) Viewers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// EncodeFrame packs pixels into the binary frame layout.
func EncodeFrame(w, h int, pixels []color.RGBA) []byte {
	buf := make([]byte, 8+4*len(pixels))
	binary.LittleEndian.PutUint32(buf[0:], uint32(w))
	binary.LittleEndian.PutUint32(buf[4:], uint32(h))
	for i, p := range pixels {
		o := 8 + 4*i
		buf[o], buf[o+1], buf[o+2], buf[o+3] = p.R, p.G, p.B, p.A
	}
	return buf
}

// Publish queues a frame for every viewer. It never blocks.
func (s *Server) Publish(w, h int, pixels []color.RGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.clients) == 0 {
		return
	}

	frame := EncodeFrame(w, h, pixels)
	for c := range s.clients {
		select {
		case c.send <- frame:
		default:
			// Viewer is behind; skip this frame for it.
		}
	}
}
