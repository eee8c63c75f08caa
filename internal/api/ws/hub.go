package ws

import (
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/launchdock/backend/internal/infrastructure/logging"
	"github.com/launchdock/backend/internal/infrastructure/monitoring"
	"github.com/launchdock/backend/internal/shared/id"
	"github.com/launchdock/backend/internal/shared/types"
)

// client wraps a connection with a write lock. Gorilla connections permit
// only one concurrent writer, so every write (broadcast, welcome, pong)
// must go through write.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(payload interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(payload)
}

// Hub fans lifecycle events out to all connected clients.
//
// A slow or dead client is dropped on its first failed write rather than
// allowed to stall the broadcast.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]bool

	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewHub creates an empty hub.
func NewHub(logger *logging.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]bool),
		logger:  logger,
	}
}

// WithMetrics adds metrics tracking to the hub
func (h *Hub) WithMetrics(metrics *monitoring.Metrics) *Hub {
	h.metrics = metrics
	return h
}

func (h *Hub) register(conn *websocket.Conn) *client {
	cl := &client{conn: conn}

	h.mu.Lock()
	h.clients[cl] = true
	count := len(h.clients)
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.IncWSConnections()
	}
	h.logger.Debug("Client connected", zap.Int("clients", count))
	return cl
}

func (h *Hub) unregister(cl *client) {
	h.mu.Lock()
	if _, ok := h.clients[cl]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, cl)
	count := len(h.clients)
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.DecWSConnections()
	}
	h.logger.Debug("Client disconnected", zap.Int("clients", count))
}

// Broadcast sends the event to every connected client. Events are stamped
// with a fresh sortable ID unless the caller supplied one.
func (h *Hub) Broadcast(event types.Event) {
	if event.ID == "" {
		event.ID = id.NewEventID().String()
	}

	h.mu.Lock()
	clients := make([]*client, 0, len(h.clients))
	for cl := range h.clients {
		clients = append(clients, cl)
	}
	h.mu.Unlock()

	for _, cl := range clients {
		if err := cl.write(event); err != nil {
			h.logger.Debug("Dropping client after failed write", zap.Error(err))
			cl.conn.Close()
			h.unregister(cl)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
