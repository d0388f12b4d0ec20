package cli

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"github.com/flooyd/gameserver/internal/model"
	"github.com/flooyd/gameserver/internal/ws"
)

// Client is a WebSocket client for the game protocol
type Client struct {
	serverURL string
	timeout   time.Duration
	conn      *websocket.Conn
}

// NewClient creates a new protocol client
func NewClient(serverURL string, timeout time.Duration) *Client {
	return &Client{
		serverURL: serverURL,
		timeout:   timeout,
	}
}

// Dial opens the WebSocket connection
func (c *Client) Dial() error {
	wsURL, err := websocketURL(c.serverURL)
	if err != nil {
		return err
	}

	dialer := websocket.Dialer{HandshakeTimeout: c.timeout}
	conn, _, err := dialer.Dial(wsURL, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", wsURL, err)
	}
	c.conn = conn
	return nil
}

// Close closes the connection
func (c *Client) Close() {
	if c.conn != nil {
		_ = c.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		_ = c.conn.Close()
	}
}

// Send writes one event frame
func (c *Client) Send(event string, payload any) error {
	env := struct {
		Event string `json:"event"`
		Data  any    `json:"data,omitempty"`
	}{Event: event, Data: payload}

	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", event, err)
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(c.timeout))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// WaitFor reads frames until one of the named events arrives. Unrelated
// events (presence fan-out from other clients, for instance) are skipped.
func (c *Client) WaitFor(events ...string) (*ws.Envelope, error) {
	deadline := time.Now().Add(c.timeout)
	_ = c.conn.SetReadDeadline(deadline)

	wanted := make(map[string]bool, len(events))
	for _, e := range events {
		wanted[e] = true
	}

	for time.Now().Before(deadline) {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}
		var env ws.Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, fmt.Errorf("unmarshal frame: %w", err)
		}
		if wanted[env.Event] {
			return &env, nil
		}
	}
	return nil, fmt.Errorf("no %v event within %s", events, c.timeout)
}

// Login authenticates and returns the player view
func (c *Client) Login(name, password string) (*model.PlayerView, error) {
	if err := c.Send(ws.EventLogin, ws.LoginPayload{Name: name, Password: password}); err != nil {
		return nil, err
	}

	env, err := c.WaitFor(ws.EventLoginSuccess, ws.EventLoginFailed)
	if err != nil {
		return nil, err
	}
	if env.Event == ws.EventLoginFailed {
		return nil, fmt.Errorf("login failed for %q", name)
	}

	var view model.PlayerView
	if err := json.Unmarshal(env.Data, &view); err != nil {
		return nil, fmt.Errorf("unmarshal player: %w", err)
	}
	return &view, nil
}

// websocketURL converts the configured server URL to the /ws endpoint
func websocketURL(serverURL string) (string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return "", fmt.Errorf("parse server url: %w", err)
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = "/ws"
	return u.String(), nil
}
