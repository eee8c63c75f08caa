package ws

import (
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/launchdock/backend/internal/infrastructure/logging"
	"github.com/launchdock/backend/internal/shared/types"
)

func dial(t *testing.T, hub *Hub) (*websocket.Conn, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/stream", hub.HandleConnection)
	server := httptest.NewServer(router)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		server.Close()
		t.Fatalf("Dial failed: %v", err)
	}

	return conn, func() {
		conn.Close()
		server.Close()
	}
}

func readEvent(t *testing.T, conn *websocket.Conn) map[string]interface{} {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var msg map[string]interface{}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	return msg
}

func waitForClients(hub *Hub, want int) {
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != want && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
}

func TestConnectionReceivesWelcome(t *testing.T) {
	hub := NewHub(logging.NewNop())
	conn, cleanup := dial(t, hub)
	defer cleanup()

	welcome := readEvent(t, conn)
	if welcome["type"] != "system" {
		t.Errorf("Expected system welcome, got %v", welcome)
	}
}

func TestBroadcastReachesClient(t *testing.T) {
	hub := NewHub(logging.NewNop())
	conn, cleanup := dial(t, hub)
	defer cleanup()

	readEvent(t, conn) // welcome

	// Registration happens in the handler goroutine after upgrade
	waitForClients(hub, 1)

	hub.Broadcast(types.Event{
		Type:      types.EventAppLaunched,
		AppID:     "app-1",
		Timestamp: time.Now(),
	})

	event := readEvent(t, conn)
	if event["type"] != string(types.EventAppLaunched) {
		t.Errorf("Expected %s event, got %v", types.EventAppLaunched, event)
	}
	if event["app_id"] != "app-1" {
		t.Errorf("Expected app_id app-1, got %v", event["app_id"])
	}
	if id, _ := event["id"].(string); !strings.HasPrefix(id, "evt_") {
		t.Errorf("Broadcast should stamp an event ID, got %v", event["id"])
	}
}

func TestPingPong(t *testing.T) {
	hub := NewHub(logging.NewNop())
	conn, cleanup := dial(t, hub)
	defer cleanup()

	readEvent(t, conn) // welcome

	if err := conn.WriteMessage(websocket.TextMessage, []byte("ping")); err != nil {
		t.Fatalf("WriteMessage failed: %v", err)
	}

	reply := readEvent(t, conn)
	if reply["type"] != "pong" {
		t.Errorf("Expected pong, got %v", reply)
	}
}

func TestDisconnectUnregisters(t *testing.T) {
	hub := NewHub(logging.NewNop())
	conn, cleanup := dial(t, hub)
	defer cleanup()

	readEvent(t, conn) // welcome

	waitForClients(hub, 1)
	if hub.ClientCount() != 1 {
		t.Fatalf("Expected 1 client, got %d", hub.ClientCount())
	}

	conn.Close()

	waitForClients(hub, 0)
	if hub.ClientCount() != 0 {
		t.Error("Client should be unregistered after disconnect")
	}
}

func TestConcurrentBroadcastsAndPongs(t *testing.T) {
	hub := NewHub(logging.NewNop())
	conn, cleanup := dial(t, hub)
	defer cleanup()

	readEvent(t, conn) // welcome
	waitForClients(hub, 1)

	const writers = 8
	const perWriter = 200

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				hub.Broadcast(types.Event{
					Type:      types.EventAppLaunched,
					AppID:     "app-1",
					Timestamp: time.Now(),
				})
			}
		}()
	}

	// Interleave pings so pong writes from the read loop contend with the
	// broadcasters for the same connection.
	go func() {
		for i := 0; i < 50; i++ {
			conn.WriteMessage(websocket.TextMessage, []byte("ping"))
		}
	}()

	received := 0
	for received < writers*perWriter {
		msg := readEvent(t, conn)
		if msg["type"] == string(types.EventAppLaunched) {
			received++
		}
	}
	wg.Wait()

	if hub.ClientCount() != 1 {
		t.Errorf("Client should survive concurrent writes, count=%d", hub.ClientCount())
	}
}
