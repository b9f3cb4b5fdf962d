package hub

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Event represents a real-time event to be sent to clients.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Client is a single subscriber. The SSE handler reads encoded events from it.
type Client chan []byte

// Hub fans events out to the clients subscribed to a topic.
type Hub struct {
	topics map[string]map[Client]bool
	mu     sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		topics: make(map[string]map[Client]bool),
	}
}

// Subscribe adds a client to a topic.
func (h *Hub) Subscribe(topic string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.topics[topic]; !ok {
		h.topics[topic] = make(map[Client]bool)
	}
	h.topics[topic][client] = true
}

// Unsubscribe removes a client from a topic and closes it.
func (h *Hub) Unsubscribe(topic string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.topics[topic]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client) // signals the SSE handler to stop
			if len(clients) == 0 {
				delete(h.topics, topic)
			}
		}
	}
}

// Subscribers returns the number of clients on a topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// Broadcast sends an event to all clients of a topic.
func (h *Hub) Broadcast(topic string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.topics[topic]
	if !ok {
		return
	}

	messageBytes, err := json.Marshal(event)
	if err != nil {
		slog.Warn("failed to encode hub event", "topic", topic, "type", event.Type, "err", err)
		return
	}

	for client := range clients {
		// a slow client drops events instead of blocking the producer
		select {
		case client <- messageBytes:
		default:
		}
	}
}
