// Package hub fans out per-user events to connected realtime clients.
package hub

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Subscription narrows the event types a client receives. Empty means all.
type Subscription struct {
	Events []string
}

type Client struct {
	ID           string
	UserID       string
	Send         chan []byte
	Subscription Subscription
}

type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	CreatedAt time.Time   `json:"created_at"`
}

type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	log     zerolog.Logger
}

type SubscribeMessage struct {
	Action string   `json:"action"`
	Events []string `json:"events"`
}

func New(logger zerolog.Logger) *Hub {
	return &Hub{clients: make(map[string]*Client), log: logger}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client.ID]; !ok {
		return
	}
	delete(h.clients, client.ID)
	close(client.Send)
}

func (h *Hub) UpdateSubscription(client *Client, sub Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	client.Subscription = sub
}

// NotifyUser sends an event to every connection of userID. Slow clients drop
// messages rather than block the writer.
func (h *Hub) NotifyUser(userID, eventType string, payload interface{}) {
	data, err := json.Marshal(Envelope{Type: eventType, Payload: payload, CreatedAt: time.Now().UTC()})
	if err != nil {
		h.log.Error().Err(err).Str("event", eventType).Msg("marshal realtime event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		if client.UserID != userID || !match(client.Subscription, eventType) {
			continue
		}
		select {
		case client.Send <- data:
		default:
			h.log.Warn().Str("client_id", client.ID).Str("event", eventType).Msg("drop message for client")
		}
	}
}

func (h *Hub) Connections(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	count := 0
	for _, client := range h.clients {
		if client.UserID == userID {
			count++
		}
	}
	return count
}

func match(sub Subscription, eventType string) bool {
	if len(sub.Events) == 0 {
		return true
	}
	for _, event := range sub.Events {
		if event == eventType {
			return true
		}
	}
	return false
}

func ParseSubscribe(data []byte) (SubscribeMessage, bool) {
	var msg SubscribeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return SubscribeMessage{}, false
	}
	if msg.Action != "subscribe" && msg.Action != "unsubscribe" {
		return SubscribeMessage{}, false
	}
	return msg, true
}
