package remote

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/san-kum/rainfx/internal/input"
	"github.com/san-kum/rainfx/internal/logging"
	"github.com/san-kum/rainfx/internal/rain"
)

const (
	sendBuffer   = 8
	writeTimeout = 2 * time.Second
)

// Forward hands a decoded client event to the host event loop. It is called
// from connection goroutines and must not touch controller state directly.
type Forward func(input.Event)

type client struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.send)
	})
}

// Server accepts websocket clients and implements [rain.Renderer] by
// broadcasting each frame to them.
type Server struct {
	upgrader websocket.Upgrader
	forward  Forward
	log      *slog.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
	frame   uint64
}

func NewServer(forward Forward, log *slog.Logger) *Server {
	if log == nil {
		log = logging.Discard()
	}
	return &Server{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		forward: forward,
		log:     log,
		clients: make(map[*client]struct{}),
	}
}

func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "err", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()
	s.log.Info("client connected", "remote", conn.RemoteAddr().String())

	go s.writeLoop(c)
	s.readLoop(c)
}

func (s *Server) readLoop(c *client) {
	defer s.drop(c)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("client read failed", "err", err)
			}
			return
		}
		ev, err := DecodeMessage(data)
		if err != nil {
			s.log.Debug("ignoring client message", "err", err)
			continue
		}
		if s.forward != nil {
			s.forward(ev)
		}
	}
}

func (s *Server) writeLoop(c *client) {
	defer c.conn.Close()
	for payload := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			s.log.Debug("client write failed", "err", err)
			s.drop(c)
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (s *Server) drop(c *client) {
	s.mu.Lock()
	_, ok := s.clients[c]
	delete(s.clients, c)
	s.mu.Unlock()
	if ok {
		c.close()
		s.log.Info("client disconnected")
	}
}

// Render broadcasts p to every client. Slow clients miss frames instead of
// stalling the loop.
func (s *Server) Render(p rain.RenderParams) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.frame++
	if len(s.clients) == 0 {
		return
	}
	payload, err := json.Marshal(FrameMessage{Type: "frame", Frame: s.frame, Params: p})
	if err != nil {
		s.log.Warn("encode frame failed", "err", err)
		return
	}
	for c := range s.clients {
		select {
		case c.send <- payload:
		default:
		}
	}
}

// Release disconnects every client.
func (s *Server) Release() {
	s.mu.Lock()
	clients := s.clients
	s.clients = make(map[*client]struct{})
	s.mu.Unlock()

	for c := range clients {
		c.close()
	}
}
