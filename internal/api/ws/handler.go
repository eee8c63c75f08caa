package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Desktop client connects from its own origin
	},
}

// HandleConnection upgrades the request and streams lifecycle events until
// the client disconnects. Inbound messages are only read to detect closure;
// a "ping" text gets a "pong" back.
func (h *Hub) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	cl := h.register(conn)
	defer h.unregister(cl)

	h.send(cl, map[string]interface{}{
		"type":    "system",
		"message": "Connected to LaunchDock event stream",
	})

	for {
		msgType, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType == websocket.TextMessage && string(payload) == "ping" {
			h.send(cl, map[string]interface{}{"type": "pong"})
		}
	}
}

func (h *Hub) send(cl *client, payload interface{}) {
	if err := cl.write(payload); err != nil {
		h.logger.Debug("WebSocket send failed", zap.Error(err))
	}
}
