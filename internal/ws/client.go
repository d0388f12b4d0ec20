package ws

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/flooyd/gameserver/internal/model"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192

	// Buffer size for outgoing messages
	sendBufferSize = 256
)

// Client represents one WebSocket connection. Its inbound events are
// processed in order by a single read loop; the session pointer is owned by
// that loop and is nil until the connection authenticates.
type Client struct {
	id          string
	hub         *Hub
	conn        *websocket.Conn
	send        chan []byte
	gateway     *Gateway
	connectedAt time.Time

	// set by the read loop on successful login
	session *model.Session
}

// newClient creates a client for an upgraded connection
func newClient(hub *Hub, conn *websocket.Conn, gateway *Gateway) *Client {
	id, _ := generateConnID()
	return &Client{
		id:          id,
		hub:         hub,
		conn:        conn,
		send:        make(chan []byte, sendBufferSize),
		gateway:     gateway,
		connectedAt: time.Now(),
	}
}

// readPump pumps messages from the WebSocket connection into the gateway.
// It is the connection's single serial event-processing context: a slow
// storage round trip suspends only this connection's events.
func (c *Client) readPump() {
	defer func() {
		c.gateway.disconnect(c)
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.gateway.logger.Error("websocket read error",
					slog.String("conn_id", c.id),
					slog.Any("error", err))
			}
			return
		}
		c.gateway.handleMessage(c, message)
	}
}

// writePump pumps frames from the send buffer to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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

// generateConnID generates a random connection id for logging
func generateConnID() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
