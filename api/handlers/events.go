package handlers

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/cla-bangladesh/cla-portal/app"
)

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // the UI is served from its own origin in development
	},
}

// EventHub pushes orchestrator events (toasts, typing indicators,
// notifications, alerts) to connected UI clients. It implements app.Events.
type EventHub struct {
	clients map[*websocket.Conn]bool
	mutex   sync.Mutex
}

// NewEventHub creates an empty hub.
func NewEventHub() *EventHub {
	return &EventHub{clients: make(map[*websocket.Conn]bool)}
}

// HandleEventsWebSocket upgrades the connection and streams events until the
// client disconnects.
func (h *EventHub) HandleEventsWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Errorw("websocket upgrade error", "error", err)
		return
	}

	h.mutex.Lock()
	h.clients[conn] = true
	h.mutex.Unlock()
	zap.S().Debugw("ui client connected to /ws/events", "remote", conn.RemoteAddr())

	conn.SetCloseHandler(func(code int, text string) error {
		h.mutex.Lock()
		delete(h.clients, conn)
		h.mutex.Unlock()
		zap.S().Debugw("ui client disconnected from /ws/events", "remote", conn.RemoteAddr())
		return nil
	})

	// Keep connection alive
	for {
		if _, _, err := conn.NextReader(); err != nil {
			h.mutex.Lock()
			delete(h.clients, conn)
			h.mutex.Unlock()
			conn.Close()
			break
		}
	}
}

// Publish implements app.Events; every connected client receives the event.
func (h *EventHub) Publish(e app.Event) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn := range h.clients {
		err := conn.WriteJSON(map[string]interface{}{
			"event": e.Kind,
			"data":  e.Payload,
		})
		if err != nil {
			zap.S().Warnw("failed to push event, dropping client", "event", e.Kind, "error", err)
			delete(h.clients, conn)
			conn.Close()
		}
	}
}
