// Package telemetry streams a running trajectory.Generator's sampled state
// to WebSocket subscribers, in the same upgrade/write-pump shape as the
// teacher's Moonraker status server.
package telemetry

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

// Frame is one tick's broadcast payload: the sampled (p, v, a) of every DoF
// at a given trajectory-relative time, tagged with the replan that produced
// it.
type Frame struct {
	RunID    string    `json:"run_id"`
	Time     float64   `json:"time"`
	Position []float64 `json:"position"`
	Velocity []float64 `json:"velocity"`
	Acceleration []float64 `json:"acceleration"`
}

// Server upgrades HTTP connections to WebSockets and fans out Frames
// broadcast via Publish to every connected client.
type Server struct {
	addr string

	httpServer *http.Server
	upgrader   websocket.Upgrader

	clientsMu sync.RWMutex
	clients   map[int64]*client
	nextID    int64
}

type client struct {
	id     int64
	conn   *websocket.Conn
	sendCh chan Frame
	done   chan struct{}
	mu     sync.Mutex
}

// New builds a telemetry server that will listen on addr once Serve is
// called. addr follows net/http conventions (e.g. ":7780").
func New(addr string) *Server {
	return &Server{
		addr:    addr,
		clients: make(map[int64]*client),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Serve starts the HTTP listener and blocks until it errors or is shut
// down via Close. Run it in its own goroutine.
func (s *Server) Serve() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/telemetry", s.handleWebSocket)
	s.httpServer = &http.Server{Addr: s.addr, Handler: mux}
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "telemetry: serve")
	}
	return nil
}

// Close shuts down the HTTP listener and disconnects every client.
func (s *Server) Close() error {
	s.clientsMu.Lock()
	for _, c := range s.clients {
		c.close()
	}
	s.clients = make(map[int64]*client)
	s.clientsMu.Unlock()

	if s.httpServer == nil {
		return nil
	}
	if err := s.httpServer.Close(); err != nil {
		return errors.Wrap(err, "telemetry: close")
	}
	return nil
}

// Publish broadcasts one Frame to every connected subscriber. Slow
// subscribers (a full send buffer) drop the frame rather than block the
// caller, since Publish is expected to run on the planner's tick path.
func (s *Server) Publish(f Frame) {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	for _, c := range s.clients {
		c.send(f)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("telemetry: upgrade error: %v", err)
		return
	}

	id := atomic.AddInt64(&s.nextID, 1)
	c := &client{
		id:     id,
		conn:   conn,
		sendCh: make(chan Frame, 32),
		done:   make(chan struct{}),
	}

	s.clientsMu.Lock()
	s.clients[id] = c
	s.clientsMu.Unlock()

	go c.writePump()
	c.readPump(func() {
		s.clientsMu.Lock()
		delete(s.clients, id)
		s.clientsMu.Unlock()
	})
}

func (c *client) send(f Frame) {
	select {
	case c.sendCh <- f:
	case <-c.done:
	default:
		log.Printf("telemetry: dropping frame to client %d (channel full)", c.id)
	}
}

func (c *client) readPump(onClose func()) {
	defer func() {
		onClose()
		c.close()
	}()
	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.close()
	}()
	for {
		select {
		case f, ok := <-c.sendCh:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			payload, err := json.Marshal(f)
			if err != nil {
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	select {
	case <-c.done:
		return
	default:
		close(c.done)
	}
	c.conn.Close()
}
