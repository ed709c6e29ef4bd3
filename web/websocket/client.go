package websocket

import (
	"strings"
	"time"

	"boardhub/logger"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// Control messages are tiny; anything larger is a misbehaving client.
	maxControlMessageSize = 512

	sendBufferSize = 32
)

// controlMessage is what clients send on the socket: subscribe/unsubscribe
// requests keyed by topic.
type controlMessage struct {
	Action string `json:"action"`
	Topic  string `json:"topic"`
}

// Client is one WebSocket connection registered with the hub.
type Client struct {
	id     string
	userId string
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte

	// Subscribed topics, guarded by hub.mu.
	topics map[string]bool
}

// NewClient wraps an upgraded connection for the given authenticated user.
func NewClient(hub *Hub, conn *websocket.Conn, userId string) *Client {
	return &Client{
		id:     uuid.NewString(),
		userId: userId,
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		topics: make(map[string]bool),
	}
}

// Serve registers the client and runs the read/write pumps. It returns when
// the connection is closed; the client is deregistered on the way out.
func (c *Client) Serve() {
	c.hub.Register(c)
	go c.writePump()
	c.readPump()
}

// validTopic accepts only the topic families the hub carries.
func validTopic(topic string) bool {
	for _, prefix := range []string{"board-", "project-", "user-"} {
		if strings.HasPrefix(topic, prefix) && len(topic) > len(prefix) {
			return true
		}
	}
	return false
}

// readPump consumes subscribe/unsubscribe control messages until the
// connection drops.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxControlMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("WebSocket read error:", err)
			}
			return
		}

		var msg controlMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Debugf("WebSocket client %s sent malformed control message", c.id)
			continue
		}
		if !validTopic(msg.Topic) {
			continue
		}

		switch msg.Action {
		case "subscribe":
			c.hub.Subscribe(c, msg.Topic)
		case "unsubscribe":
			c.hub.Unsubscribe(c, msg.Topic)
		}
	}
}

// writePump forwards hub notifications to the connection and keeps it alive
// with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				logger.Debug("WebSocket write error:", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
