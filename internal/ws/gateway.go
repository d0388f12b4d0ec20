// Package ws is the connection gateway: it upgrades incoming connections,
// owns the per-connection lifecycle state machine, dispatches inbound
// events to the auth and todo services, and fans results out through the
// hub.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/flooyd/gameserver/internal/model"
	"github.com/flooyd/gameserver/internal/services/auth"
	"github.com/flooyd/gameserver/internal/services/todo"
	"github.com/flooyd/gameserver/internal/session"
	"github.com/flooyd/gameserver/internal/storage"
)

// Gateway binds connection events to the application services
type Gateway struct {
	logger   *slog.Logger
	hub      *Hub
	registry *session.Registry
	auth     *auth.Service
	todos    *todo.Service
	storage  storage.Storage
	upgrader websocket.Upgrader
}

// NewGateway creates a gateway
func NewGateway(logger *slog.Logger, hub *Hub, registry *session.Registry, authService *auth.Service, todoService *todo.Service, store storage.Storage) *Gateway {
	return &Gateway{
		logger:   logger.With(slog.String("component", "gateway")),
		hub:      hub,
		registry: registry,
		auth:     authService,
		todos:    todoService,
		storage:  store,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Clients connect from arbitrary origins
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeWS upgrades an HTTP request to a WebSocket connection and starts the
// connection's pumps
func (g *Gateway) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("websocket upgrade failed", slog.Any("error", err))
		return
	}

	client := newClient(g.hub, conn, g)
	g.hub.Register(client)
	g.logger.Info("anonymous connection opened", slog.String("conn_id", client.id))

	go client.writePump()
	go client.readPump()
}

// handleMessage dispatches one inbound frame according to the connection's
// state: anonymous connections may only register or log in; move and todo
// events require an authenticated session.
func (g *Gateway) handleMessage(c *Client, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		g.logger.Warn("malformed frame",
			slog.String("conn_id", c.id),
			slog.Any("error", err))
		return
	}

	if c.session == nil {
		switch env.Event {
		case EventRegister:
			g.handleRegister(c, env.Data)
		case EventLogin:
			g.handleLogin(c, env.Data)
		default:
			g.logger.Debug("event ignored for anonymous connection",
				slog.String("conn_id", c.id),
				slog.String("event", env.Event))
		}
		return
	}

	switch env.Event {
	case EventPlayerMove:
		g.handlePlayerMove(c, env.Data)
	case EventCreateTodo:
		g.handleCreateTodo(c, env.Data)
	case EventEditTodo:
		g.handleEditTodo(c, env.Data)
	case EventToggleTodo:
		g.handleToggleTodo(c, env.Data)
	case EventMoveTodo:
		g.handleMoveTodo(c, env.Data)
	case EventDeleteTodo:
		g.handleDeleteTodo(c, env.Data)
	case EventGetTodos:
		g.handleGetTodos(c)
	default:
		g.logger.Debug("event ignored for authenticated connection",
			slog.String("conn_id", c.id),
			slog.String("event", env.Event))
	}
}

func (g *Gateway) handleRegister(c *Client, data json.RawMessage) {
	var payload RegisterPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		g.hub.SendTo(c, EventRegistrationFailed, nil)
		return
	}

	view, err := g.auth.Register(context.Background(), payload.Name, payload.Password, payload.Email)
	if err != nil {
		g.logger.Info("registration failed",
			slog.String("conn_id", c.id),
			slog.Any("error", err))
		g.hub.SendTo(c, EventRegistrationFailed, nil)
		return
	}

	// The registering client must still log in separately
	g.hub.SendTo(c, EventRegistered, view)
}

func (g *Gateway) handleLogin(c *Client, data json.RawMessage) {
	var payload LoginPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		g.hub.SendTo(c, EventLoginFailed, nil)
		return
	}

	view, err := g.auth.Login(context.Background(), payload.Name, payload.Password)
	if err != nil {
		g.logger.Info("login failed",
			slog.String("conn_id", c.id),
			slog.Any("error", err))
		g.hub.SendTo(c, EventLoginFailed, nil)
		return
	}

	// Seed the new client with the world as it was before it joined, then
	// add its session and announce it to everyone else.
	g.hub.SendTo(c, EventLoginSuccess, view)
	g.hub.SendTo(c, EventExistingPlayers, g.registry.All())

	sess := model.NewSession(*view)
	g.registry.Add(sess)
	c.session = &sess

	g.hub.BroadcastOthers(c, EventOtherPlayerConnected, sess)

	g.logger.Info("player logged in",
		slog.String("conn_id", c.id),
		slog.String("player_id", string(sess.ID)),
		slog.String("name", sess.Name))
}

func (g *Gateway) handlePlayerMove(c *Client, data json.RawMessage) {
	var payload PlayerMovePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return
	}

	// Late or duplicate moves for a departed session are dropped silently.
	// Nothing checks that the mover owns the moved id.
	if !g.registry.UpdatePosition(payload.ID, payload.X, payload.Y) {
		return
	}

	g.hub.BroadcastOthers(c, EventOtherPlayerMove, payload)
}

func (g *Gateway) handleCreateTodo(c *Client, data json.RawMessage) {
	var payload CreateTodoPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		g.hub.SendTo(c, EventTodoCreationFailed, nil)
		return
	}

	created, err := g.todos.Create(context.Background(), payload.Task, payload.X, payload.Y, payload.PlayerID)
	if err != nil {
		g.logger.Info("todo creation failed",
			slog.String("conn_id", c.id),
			slog.Any("error", err))
		g.hub.SendTo(c, EventTodoCreationFailed, nil)
		return
	}

	g.hub.BroadcastAll(EventTodoCreated, created)
}

func (g *Gateway) handleEditTodo(c *Client, data json.RawMessage) {
	var payload EditTodoPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		g.hub.SendTo(c, EventTodoEditFailed, nil)
		return
	}

	updated, err := g.todos.Edit(context.Background(), payload.ID, payload.Task, payload.X, payload.Y, payload.PlayerID)
	if err != nil {
		g.logger.Info("todo edit failed",
			slog.String("conn_id", c.id),
			slog.Any("error", err))
		g.hub.SendTo(c, EventTodoEditFailed, nil)
		return
	}

	g.hub.BroadcastAll(EventTodoEdited, updated)
}

func (g *Gateway) handleToggleTodo(c *Client, data json.RawMessage) {
	var payload ToggleTodoPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		g.hub.SendTo(c, EventTodoToggleFailed, nil)
		return
	}

	toggled, err := g.todos.Toggle(context.Background(), payload.ID, payload.PlayerID)
	if err != nil {
		g.logger.Info("todo toggle failed",
			slog.String("conn_id", c.id),
			slog.Any("error", err))
		g.hub.SendTo(c, EventTodoToggleFailed, nil)
		return
	}

	g.hub.BroadcastAll(EventTodoToggled, toggled)
}

func (g *Gateway) handleMoveTodo(c *Client, data json.RawMessage) {
	var payload MoveTodoPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		g.hub.SendTo(c, EventTodoMoveFailed, nil)
		return
	}

	moved, err := g.todos.Move(context.Background(), payload.ID, payload.X, payload.Y, payload.PlayerID)
	if err != nil {
		g.logger.Info("todo move failed",
			slog.String("conn_id", c.id),
			slog.Any("error", err))
		g.hub.SendTo(c, EventTodoMoveFailed, nil)
		return
	}

	g.hub.BroadcastAll(EventTodoMoved, moved)
}

func (g *Gateway) handleDeleteTodo(c *Client, data json.RawMessage) {
	var payload DeleteTodoPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		g.hub.SendTo(c, EventTodoDeletionFailed, nil)
		return
	}

	if err := g.todos.Delete(context.Background(), payload.ID, payload.PlayerID); err != nil {
		g.logger.Info("todo deletion failed",
			slog.String("conn_id", c.id),
			slog.Any("error", err))
		g.hub.SendTo(c, EventTodoDeletionFailed, nil)
		return
	}

	g.hub.BroadcastAll(EventTodoDeleted, TodoDeletedPayload{ID: payload.ID})
}

func (g *Gateway) handleGetTodos(c *Client) {
	todos, err := g.todos.List(context.Background())
	if err != nil {
		// GetTodos has no failure event; the client may simply re-issue
		g.logger.Error("todo list failed",
			slog.String("conn_id", c.id),
			slog.Any("error", err))
		return
	}
	g.hub.SendTo(c, EventTodos, todos)
}

// disconnect runs when a connection's read loop ends, whether by a clean
// close or a transport failure. It removes the session, writes the last
// known position best-effort, and announces the departure to the others.
func (g *Gateway) disconnect(c *Client) {
	if c.session == nil {
		g.logger.Info("anonymous connection closed", slog.String("conn_id", c.id))
		return
	}

	id := c.session.ID
	sess, ok := g.registry.Find(id)
	g.registry.Remove(id)

	if ok {
		if err := g.storage.UpdatePlayerPosition(context.Background(), id, sess.X, sess.Y); err != nil {
			// Best-effort write; dropped, not retried
			g.logger.Warn("final position write failed",
				slog.String("player_id", string(id)),
				slog.Any("error", err))
		}
	}

	g.hub.BroadcastOthers(c, EventOtherPlayerDisconnected, PlayerDisconnectedPayload{ID: id})

	g.logger.Info("player disconnected",
		slog.String("conn_id", c.id),
		slog.String("player_id", string(id)))
}
