// Package livereload pushes reload notices to open browser tabs over a
// websocket while the site runs in development mode.
package livereload

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{}

// Message is the outgoing websocket message format.
type Message struct {
	Type    string `json:"type"` // "hello" or "reload"
	Version string `json:"version,omitempty"`
}

type client struct {
	send chan Message
}

// Hub tracks connected tabs and fans reload notices out to them.
type Hub struct {
	log *zap.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
	version string
	done    chan struct{}
	closed  bool
}

// NewHub returns an empty hub.
func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		log:     log,
		clients: make(map[*client]struct{}),
		done:    make(chan struct{}),
	}
}

// ServeHTTP upgrades the request and holds the connection until the tab
// goes away or the hub is closed.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("livereload: websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	c := &client{send: make(chan Message, 4)}
	version, ok := h.add(c)
	if !ok {
		return
	}
	defer h.remove(c)

	// Reads only detect the tab closing; clients never send anything useful.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					h.log.Debug("livereload: websocket read", zap.Error(err))
				}
				return
			}
		}
	}()

	// hello carries the version the tab connected at, so a reload that
	// races the page load is still noticed.
	if err := conn.WriteJSON(Message{Type: "hello", Version: version}); err != nil {
		h.log.Debug("livereload: websocket write", zap.Error(err))
		return
	}

	for {
		select {
		case msg := <-c.send:
			if err := conn.WriteJSON(msg); err != nil {
				h.log.Debug("livereload: websocket write", zap.Error(err))
				return
			}
		case <-gone:
			return
		case <-h.done:
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
			return
		}
	}
}

// Broadcast tells every connected tab to reload. Tabs whose buffers are
// full already have a reload pending and are skipped.
func (h *Hub) Broadcast(version string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.version = version
	msg := Message{Type: "reload", Version: version}
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
		}
	}
	h.log.Debug("livereload: broadcast", zap.Int("clients", len(h.clients)), zap.String("version", version))
}

// Clients returns the number of connected tabs.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every tab and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	close(h.done)
}

// Version returns the last broadcast version.
func (h *Hub) Version() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.version
}

func (h *Hub) add(c *client) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return "", false
	}
	h.clients[c] = struct{}{}
	return h.version, true
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}
