package web

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dbehnke/ccsds-fec/pkg/logger"
)

func TestWebSocketHub_New(t *testing.T) {
	log := logger.New(logger.Config{Level: "info"})
	hub := NewWebSocketHub(log)
	if hub == nil {
		t.Fatal("NewWebSocketHub returned nil")
	}
}

func TestWebSocketHub_Run(t *testing.T) {
	log := logger.New(logger.Config{Level: "info"})
	hub := NewWebSocketHub(log)

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	go hub.Run(ctx)
	time.Sleep(50 * time.Millisecond)
	cancel()
	time.Sleep(50 * time.Millisecond)
}

func TestWebSocketHub_Broadcast(t *testing.T) {
	log := logger.New(logger.Config{Level: "info"})
	hub := NewWebSocketHub(log)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	go hub.Run(ctx)
	time.Sleep(50 * time.Millisecond)

	event := Event{Type: "test", Data: map[string]interface{}{"message": "hello"}}
	hub.Broadcast(event)
	time.Sleep(50 * time.Millisecond)
}

func TestWebSocketHub_BroadcastHelpers(t *testing.T) {
	log := logger.New(logger.Config{Level: "info"})
	hub := NewWebSocketHub(log)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	go hub.Run(ctx)
	time.Sleep(50 * time.Millisecond)

	// None of these should panic with zero clients attached.
	hub.BroadcastSweepPoint(3.0, 0.01, 10, 9)
	hub.BroadcastSweepComplete(5)
	hub.BroadcastFrameDecoded(0, true, false, true)
	hub.BroadcastSyncState(true)
	hub.BroadcastStatusUpdate("ok", "dev")
	time.Sleep(50 * time.Millisecond)
}

func TestWebSocketHandler(t *testing.T) {
	log := logger.New(logger.Config{Level: "info"})
	hub := NewWebSocketHub(log)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	go hub.Run(ctx)
	time.Sleep(50 * time.Millisecond)

	handler := hub.Handler()
	server := httptest.NewServer(handler)
	defer server.Close()

	_ = "ws" + strings.TrimPrefix(server.URL, "http")

	if handler == nil {
		t.Fatal("WebSocket handler is nil")
	}
}

func TestEvent_Marshal(t *testing.T) {
	event := Event{
		Type:      "sweep.point",
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"ebn0_db": 3.0,
			"ber":     0.01,
		},
	}

	data, err := event.Marshal()
	if err != nil {
		t.Fatalf("Failed to marshal event: %v", err)
	}
	if len(data) == 0 {
		t.Error("Marshaled data is empty")
	}
	if !strings.Contains(string(data), "sweep.point") {
		t.Error("Marshaled data doesn't contain event type")
	}
}

func TestWebSocketHub_GetClientCount(t *testing.T) {
	log := logger.New(logger.Config{Level: "info"})
	hub := NewWebSocketHub(log)
	if hub.GetClientCount() != 0 {
		t.Errorf("GetClientCount = %d, want 0 with no clients", hub.GetClientCount())
	}
}
