// Package debugserver is an optional websocket endpoint that streams
// JSON-encoded GuiFrame snapshots to a connected browser or inspector.
// It exercises the same renderer-agnostic frame contract BuildFrame
// hands to tui/components/nvim, just over the wire instead of straight
// into terminal cells — useful because the engine's core deliverable
// is otherwise invisible without a GPU renderer to look at.
package debugserver

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/grovetools/nvimgui/engine"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server upgrades incoming HTTP connections to websockets and fans out
// whatever frame was last published to every connected client.
//
// Publish must only ever be called from the goroutine that owns the
// engine.EditorState a frame was built from (normally right after
// drainEvents, on the same goroutine that called HandleEvent) — a
// GuiFrame's cell accessors close over a window's live rings, which
// §5 reserves for the render/main thread alone. Publish converts the
// frame into an immutable, JSON-encoded snapshot synchronously in the
// caller's goroutine, so everything after that point (ServeHTTP and
// the client fan-out) only ever touches plain bytes under a
// mutex and is safe to call from any goroutine.
type Server struct {
	log *logrus.Entry

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	latest  []byte
}

// New builds an empty Server. Call Publish at least once before a
// client connects, or it sees nothing until the next publish.
func New(log *logrus.Entry) *Server {
	return &Server{log: log, clients: make(map[*websocket.Conn]struct{})}
}

// Publish encodes frame and fans it out to every connected client,
// caching it so newly-connecting clients see the latest state
// immediately instead of waiting for the next redraw.
func (s *Server) Publish(frame engine.GuiFrame) {
	payload, err := json.Marshal(toWireFrame(frame))
	if err != nil {
		s.log.WithError(err).Warn("debugserver: encoding frame failed")
		return
	}

	s.mu.Lock()
	s.latest = payload
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for c := range s.clients {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		s.send(c, payload)
	}
}

// ServeHTTP implements http.Handler, upgrading the request and sending
// the most recently published snapshot immediately if one exists.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("debugserver: upgrade failed")
		return
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	payload := s.latest
	s.mu.Unlock()

	if payload != nil {
		s.send(conn, payload)
	}
	go s.readLoop(conn)
}

// readLoop drains inbound frames purely so the library's ping/pong and
// close-frame handling runs; the protocol is push-only from the
// server's side, so anything a client sends is discarded.
func (s *Server) readLoop(conn *websocket.Conn) {
	defer s.drop(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) drop(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	conn.Close()
}

func (s *Server) send(conn *websocket.Conn, payload []byte) {
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		s.drop(conn)
	}
}

// ClientCount reports how many websocket clients are currently
// connected, for a /healthz-style check or log line.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}
