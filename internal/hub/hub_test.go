package hub

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestNotifyUserTargetsOwnConnections(t *testing.T) {
	h := New(zerolog.Nop())
	mine := &Client{ID: "c1", UserID: "u1", Send: make(chan []byte, 1)}
	other := &Client{ID: "c2", UserID: "u2", Send: make(chan []byte, 1)}
	h.Register(mine)
	h.Register(other)

	h.NotifyUser("u1", "role.changed", map[string]string{"role": "admin"})

	select {
	case msg := <-mine.Send:
		var env struct {
			Type    string            `json:"type"`
			Payload map[string]string `json:"payload"`
		}
		if err := json.Unmarshal(msg, &env); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if env.Type != "role.changed" || env.Payload["role"] != "admin" {
			t.Fatalf("unexpected envelope: %+v", env)
		}
	default:
		t.Fatalf("expected message for u1")
	}
	select {
	case <-other.Send:
		t.Fatalf("unexpected message for u2")
	default:
	}
}

func TestSubscriptionFiltersEvents(t *testing.T) {
	h := New(zerolog.Nop())
	client := &Client{ID: "c1", UserID: "u1", Send: make(chan []byte, 2)}
	h.Register(client)
	h.UpdateSubscription(client, Subscription{Events: []string{"leave.reviewed"}})

	h.NotifyUser("u1", "attendance.updated", nil)
	h.NotifyUser("u1", "leave.reviewed", nil)
	if len(client.Send) != 1 {
		t.Fatalf("expected 1 delivered event, got %d", len(client.Send))
	}
}

func TestSlowClientDropsInsteadOfBlocking(t *testing.T) {
	h := New(zerolog.Nop())
	client := &Client{ID: "c1", UserID: "u1", Send: make(chan []byte, 1)}
	h.Register(client)
	h.NotifyUser("u1", "a", nil)
	h.NotifyUser("u1", "b", nil)
	if len(client.Send) != 1 {
		t.Fatalf("expected buffer to hold 1 message, got %d", len(client.Send))
	}
	h.Unregister(client)
	h.Unregister(client)
	if h.Connections("u1") != 0 {
		t.Fatalf("expected no connections after unregister")
	}
}

func TestParseSubscribe(t *testing.T) {
	msg, ok := ParseSubscribe([]byte(`{"action":"subscribe","events":["role.changed"]}`))
	if !ok || len(msg.Events) != 1 {
		t.Fatalf("unexpected parse: %+v %v", msg, ok)
	}
	if _, ok := ParseSubscribe([]byte(`{"action":"publish"}`)); ok {
		t.Fatalf("expected unknown action to be rejected")
	}
	if _, ok := ParseSubscribe([]byte(`not json`)); ok {
		t.Fatalf("expected invalid json to be rejected")
	}
}
