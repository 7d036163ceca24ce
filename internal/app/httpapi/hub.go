package httpapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/roamdine/platform/internal/app/domain/notification"
	"github.com/roamdine/platform/internal/app/services/notifications"
	"github.com/roamdine/platform/pkg/logger"
)

var _ notifications.Broadcaster = (*Hub)(nil)

// writeTimeout bounds how long a broadcast may spend on one client before
// that client is considered stalled.
const writeTimeout = 5 * time.Second

// Hub fans persisted notifications out to connected websocket clients. A
// client that cannot keep up is dropped rather than blocking the broadcast.
type Hub struct {
	log      *logger.Logger
	upgrader websocket.Upgrader

	// writeWait is the per-client write deadline for broadcasts.
	writeWait time.Duration

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewHub creates an empty hub.
func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.NewDefault("notification-hub")
	}
	return &Hub{
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		writeWait: writeTimeout,
		conns:     make(map[*websocket.Conn]struct{}),
	}
}

// Serve upgrades the request and keeps the connection registered until the
// client goes away.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()

	// Drain incoming frames so pings and close messages are processed.
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Broadcast pushes the notification to every connected client. Writes are
// serialized under the hub lock; the websocket library allows one writer per
// connection. Each write carries a deadline so a client that stops reading
// fails its write and gets dropped instead of wedging the hub.
func (h *Hub) Broadcast(n *notification.Notification) {
	h.mu.Lock()
	var failed []*websocket.Conn
	for conn := range h.conns {
		_ = conn.SetWriteDeadline(time.Now().Add(h.writeWait))
		if err := conn.WriteJSON(n); err != nil {
			failed = append(failed, conn)
		}
	}
	h.mu.Unlock()

	for _, conn := range failed {
		h.log.Warn("websocket write failed; dropping client")
		h.drop(conn)
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.conns = make(map[*websocket.Conn]struct{})
	h.mu.Unlock()

	for _, conn := range conns {
		_ = conn.Close()
	}
}

// Clients returns the current connection count.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.conns[conn]
	delete(h.conns, conn)
	h.mu.Unlock()
	if ok {
		_ = conn.Close()
	}
}
