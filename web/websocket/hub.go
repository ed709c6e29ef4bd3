// Package websocket provides the topic-based notification hub for live
// updates. Connected clients subscribe to board/project/user topics and
// receive bare {"type"} notifications telling them to re-fetch state.
package websocket

import (
	"context"
	"sync"
	"time"

	"boardhub/logger"

	json "github.com/goccy/go-json"
)

// Event types carried in notifications. The payload is the type alone;
// subscribers re-fetch full state over REST.
const (
	EventProjectUpdated = "project-updated"
	EventProjectDeleted = "project-deleted"
	EventBoardUpdated   = "board-updated"
	EventBoardDeleted   = "board-deleted"
	EventUserUpdated    = "user-updated"
)

// Message is the single frame shape pushed to subscribers.
type Message struct {
	Type string `json:"type"`
}

// BoardTopic returns the topic name for a board id.
func BoardTopic(id string) string { return "board-" + id }

// ProjectTopic returns the topic name for a project id.
func ProjectTopic(id string) string { return "project-" + id }

// UserTopic returns the topic name for a user id.
func UserTopic(id string) string { return "user-" + id }

type publication struct {
	topic string
	data  []byte
}

// Hub is the explicit connection registry: clients are registered on
// connect, deregistered on disconnect or error, and publications fan out to
// the clients subscribed to the publication's topic. Delivery is
// fire-and-forget with no ordering or replay.
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Topic -> subscribed clients
	topics map[string]map[*Client]bool

	publish    chan publication
	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub creates a hub. Run must be called for it to serve.
func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:    make(map[*Client]bool),
		topics:     make(map[string]map[*Client]bool),
		publish:    make(chan publication, 256),
		register:   make(chan *Client, 16),
		unregister: make(chan *Client, 16),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Run starts the hub's main loop.
func (h *Hub) Run() {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("WebSocket hub panic recovered:", r)
			go h.Run()
		}
	}()

	for {
		select {
		case <-h.ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
			}
			h.clients = make(map[*Client]bool)
			h.topics = make(map[string]map[*Client]bool)
			h.mu.Unlock()
			logger.Info("WebSocket hub stopped")
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			logger.Debugf("WebSocket client connected: %s (total: %d)", client.id, count)

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				for topic := range client.topics {
					h.dropSubscription(topic, client)
				}
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			logger.Debugf("WebSocket client disconnected: %s (total: %d)", client.id, count)

		case p := <-h.publish:
			h.mu.RLock()
			subs := h.topics[p.topic]
			clients := make([]*Client, 0, len(subs))
			for client := range subs {
				clients = append(clients, client)
			}
			h.mu.RUnlock()

			for _, client := range clients {
				select {
				case client.send <- p.data:
				default:
					// Send buffer full, drop the slow client. Non-blocking
					// because this goroutine is the unregister consumer.
					logger.Debugf("WebSocket client %s send buffer full, disconnecting", client.id)
					select {
					case h.unregister <- client:
					default:
					}
				}
			}
		}
	}
}

// dropSubscription removes a client from a topic set. Caller holds h.mu.
func (h *Hub) dropSubscription(topic string, client *Client) {
	subs, ok := h.topics[topic]
	if !ok {
		return
	}
	delete(subs, client)
	if len(subs) == 0 {
		delete(h.topics, topic)
	}
}

// Subscribe adds the client to a topic.
func (h *Hub) Subscribe(client *Client, topic string) {
	if h == nil || client == nil || topic == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.clients[client] {
		return
	}
	if h.topics[topic] == nil {
		h.topics[topic] = make(map[*Client]bool)
	}
	h.topics[topic][client] = true
	client.topics[topic] = true
}

// Unsubscribe removes the client from a topic.
func (h *Hub) Unsubscribe(client *Client, topic string) {
	if h == nil || client == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropSubscription(topic, client)
	delete(client.topics, topic)
}

// Publish queues a {"type": eventType} notification for every subscriber of
// the topic. Safe to call on a nil hub so services stay testable without a
// running hub.
func (h *Hub) Publish(topic string, eventType string) {
	if h == nil || topic == "" {
		return
	}

	data, err := json.Marshal(Message{Type: eventType})
	if err != nil {
		logger.Error("Failed to marshal WebSocket message:", err)
		return
	}

	select {
	case h.publish <- publication{topic: topic, data: data}:
	case <-time.After(100 * time.Millisecond):
		logger.Warning("WebSocket publish channel is full, dropping message")
	case <-h.ctx.Done():
	}
}

// GetClientCount returns the number of connected clients.
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Register registers a client with the hub.
func (h *Hub) Register(client *Client) {
	if h == nil || client == nil {
		return
	}
	select {
	case h.register <- client:
	case <-h.ctx.Done():
	}
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(client *Client) {
	if h == nil || client == nil {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.ctx.Done():
	}
}

// Stop shuts the hub down and closes all client send channels.
func (h *Hub) Stop() {
	if h == nil {
		return
	}
	if h.cancel != nil {
		h.cancel()
	}
}
