// Package ws streams session lifecycle events to WebSocket clients.
// The hub implements the engine's observer port; a slow or dead client
// is dropped rather than ever blocking a lifecycle transition.
package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/pathlane/dirview/internal/infrastructure/logging"
	"github.com/pathlane/dirview/internal/shared/id"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Debug API binds to loopback by default
	},
}

// Event is one lifecycle notification.
type Event struct {
	Type      string `json:"type"`
	SurfaceID string `json:"surface_id"`
	SessionID string `json:"session_id,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// Hub fans lifecycle events out to connected clients.
type Hub struct {
	log *logging.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

// NewHub creates an empty hub.
func NewHub(log *logging.Logger) *Hub {
	if log == nil {
		log = logging.NewNop()
	}
	return &Hub{
		log:     log,
		clients: make(map[*websocket.Conn]bool),
	}
}

// HandleConnection upgrades the request and keeps the client registered
// until its read loop fails.
func (h *Hub) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		conn.Close()
	}()

	_ = conn.WriteJSON(Event{Type: "connected", Timestamp: time.Now().Unix()})

	// Clients only listen; the read loop just detects disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) broadcast(event Event) {
	event.Timestamp = time.Now().Unix()

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteJSON(event); err != nil {
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

// SessionActivated implements engine.Observer.
func (h *Hub) SessionActivated(surfaceID id.SurfaceID, sessionID id.SessionID) {
	h.broadcast(Event{Type: "session_activated", SurfaceID: string(surfaceID), SessionID: string(sessionID)})
}

// SessionKilled implements engine.Observer.
func (h *Hub) SessionKilled(surfaceID id.SurfaceID, sessionID id.SessionID) {
	h.broadcast(Event{Type: "session_killed", SurfaceID: string(surfaceID), SessionID: string(sessionID)})
}

// SurfaceReclaimed implements engine.Observer.
func (h *Hub) SurfaceReclaimed(surfaceID id.SurfaceID, currentID id.SessionID) {
	h.broadcast(Event{Type: "surface_reclaimed", SurfaceID: string(surfaceID), SessionID: string(currentID)})
}
