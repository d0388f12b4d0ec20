package ws

import (
	"log/slog"
	"sync"
	"time"
)

// Hub tracks every live connection and routes outbound events to one of
// three recipient sets: the originating connection only, every connection
// but the origin, or every connection including the origin. The last mode
// marshals the payload once, so the actor and every other client converge
// on a byte-identical frame.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool
	logger  *slog.Logger

	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

// NewHub creates a new Hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		logger:     logger.With(slog.String("component", "hub")),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's connection-tracking loop
func (h *Hub) Run() {
	h.logger.Info("hub started")
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			clientCount := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("client registered",
				slog.String("conn_id", client.id),
				slog.Int("total_clients", clientCount))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				clientCount := len(h.clients)
				h.mu.Unlock()
				h.logger.Info("client unregistered",
					slog.String("conn_id", client.id),
					slog.Duration("connection_duration", time.Since(client.connectedAt)),
					slog.Int("total_clients", clientCount))
			} else {
				h.mu.Unlock()
			}

		case <-h.done:
			h.mu.Lock()
			clientCount := len(h.clients)
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Info("hub stopped", slog.Int("disconnected_clients", clientCount))
			return
		}
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Close shuts down the hub
func (h *Hub) Close() {
	close(h.done)
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// SendTo delivers an event to a single connection. Used for direct replies
// and every failure outcome; failures are never broadcast.
func (h *Hub) SendTo(client *Client, event string, payload any) {
	msg, err := encodeEvent(event, payload)
	if err != nil {
		h.logger.Error("encode event failed",
			slog.String("event", event),
			slog.Any("error", err))
		return
	}

	// The membership check under the read lock excludes a concurrent
	// unregister closing the send channel.
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.clients[client] {
		h.deliver(client, msg, event)
	}
}

// BroadcastOthers delivers an event to every connection except the origin.
// Used for presence and motion fan-out.
func (h *Hub) BroadcastOthers(origin *Client, event string, payload any) {
	msg, err := encodeEvent(event, payload)
	if err != nil {
		h.logger.Error("encode event failed",
			slog.String("event", event),
			slog.Any("error", err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		if client == origin {
			continue
		}
		h.deliver(client, msg, event)
	}
}

// BroadcastAll delivers an identical frame to every connection, the origin
// included. Used for successful task mutations so all clients converge
// without a refetch.
func (h *Hub) BroadcastAll(event string, payload any) {
	msg, err := encodeEvent(event, payload)
	if err != nil {
		h.logger.Error("encode event failed",
			slog.String("event", event),
			slog.Any("error", err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		h.deliver(client, msg, event)
	}
}

// deliver enqueues a frame on a client's send buffer, dropping it when the
// buffer is full rather than stalling other connections
func (h *Hub) deliver(client *Client, msg []byte, event string) {
	select {
	case client.send <- msg:
	default:
		h.logger.Warn("message dropped - client buffer full",
			slog.String("conn_id", client.id),
			slog.String("event", event))
	}
}
