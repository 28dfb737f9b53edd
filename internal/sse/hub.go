package sse

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// EventType defines the SSE event name.
type EventType string

const (
	EventOrderPaid       EventType = "order.paid"
	EventShipmentUpdated EventType = "shipment.updated"
	EventChatMessage     EventType = "chat.message"
)

// Event is the payload broadcast to SSE clients. Topic scopes chat events to
// one conversation; order and shipment events leave it empty and reach only
// admin listeners.
type Event struct {
	Event          EventType `json:"event"`
	Topic          string    `json:"-"`
	OrderNo        string    `json:"orderNo,omitempty"`
	Status         string    `json:"status,omitempty"`
	TrackingNo     string    `json:"trackingNo,omitempty"`
	ConversationID string    `json:"conversationId,omitempty"`
	Sender         string    `json:"sender,omitempty"`
	Body           string    `json:"body,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// Client represents a connected SSE client. Topic is empty for admin clients,
// which receive every event.
type Client struct {
	ID     string
	Topic  string
	Events chan []byte
}

// Hub manages SSE client connections and broadcasts.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewHub creates a new SSE hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

// Register adds a new client and returns it for streaming. An empty topic
// subscribes to everything.
func (h *Hub) Register(clientID, topic string) *Client {
	h.mu.Lock()
	defer h.mu.Unlock()

	c := &Client{
		ID:     clientID,
		Topic:  topic,
		Events: make(chan []byte, 64),
	}
	h.clients[clientID] = c
	log.Info().Str("client_id", clientID).Int("total_clients", len(h.clients)).Msg("SSE client connected")
	return c
}

// Unregister removes a client and closes its channel.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c, ok := h.clients[clientID]; ok {
		close(c.Events)
		delete(h.clients, clientID)
		log.Info().Str("client_id", clientID).Int("total_clients", len(h.clients)).Msg("SSE client disconnected")
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends an event to admin clients and to clients subscribed to the
// event's topic. Non-blocking: drops message if client buffer is full.
func (h *Hub) Broadcast(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal SSE event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.clients {
		if c.Topic != "" && c.Topic != event.Topic {
			continue
		}
		select {
		case c.Events <- data:
		default:
			log.Warn().Str("client_id", c.ID).Msg("SSE client buffer full, dropping event")
		}
	}
}
