package ws

import (
	"encoding/json"

	"github.com/flooyd/gameserver/internal/model"
)

// Inbound event names
const (
	EventRegister   = "Register"
	EventLogin      = "Login"
	EventPlayerMove = "PlayerMove"
	EventCreateTodo = "CreateTodo"
	EventEditTodo   = "EditTodo"
	EventToggleTodo = "ToggleTodo"
	EventMoveTodo   = "MoveTodo"
	EventDeleteTodo = "DeleteTodo"
	EventGetTodos   = "GetTodos"
)

// Outbound event names
const (
	EventRegistered         = "Registered"
	EventRegistrationFailed = "RegistrationFailed"
	EventLoginSuccess       = "LoginSuccess"
	EventLoginFailed        = "LoginFailed"
	EventExistingPlayers    = "ExistingPlayers"

	EventOtherPlayerConnected    = "OtherPlayerConnected"
	EventOtherPlayerMove         = "OtherPlayerMove"
	EventOtherPlayerDisconnected = "OtherPlayerDisconnected"

	EventTodoCreated        = "TodoCreated"
	EventTodoCreationFailed = "TodoCreationFailed"
	EventTodoEdited         = "TodoEdited"
	EventTodoEditFailed     = "TodoEditFailed"
	EventTodoToggled        = "TodoToggled"
	EventTodoToggleFailed   = "TodoToggleFailed"
	EventTodoMoved          = "TodoMoved"
	EventTodoMoveFailed     = "TodoMoveFailed"
	EventTodoDeleted        = "TodoDeleted"
	EventTodoDeletionFailed = "TodoDeletionFailed"
	EventTodos              = "Todos"
)

// Envelope frames every message in both directions as a JSON text frame
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// encodeEvent marshals an event and its payload into a wire frame. A nil
// payload produces an envelope with no data field.
func encodeEvent(event string, payload any) ([]byte, error) {
	env := Envelope{Event: event}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		env.Data = data
	}
	return json.Marshal(env)
}

// Inbound payloads

type RegisterPayload struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
}

type LoginPayload struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type PlayerMovePayload struct {
	ID model.PlayerID `json:"id"`
	X  float64        `json:"x"`
	Y  float64        `json:"y"`
}

type CreateTodoPayload struct {
	Task     string         `json:"task"`
	X        float64        `json:"x"`
	Y        float64        `json:"y"`
	PlayerID model.PlayerID `json:"playerId"`
}

type EditTodoPayload struct {
	ID       model.TodoID   `json:"id"`
	Task     string         `json:"task"`
	X        float64        `json:"x"`
	Y        float64        `json:"y"`
	PlayerID model.PlayerID `json:"playerId"`
}

type ToggleTodoPayload struct {
	ID       model.TodoID   `json:"id"`
	PlayerID model.PlayerID `json:"playerId"`
}

type MoveTodoPayload struct {
	ID       model.TodoID   `json:"id"`
	X        float64        `json:"x"`
	Y        float64        `json:"y"`
	PlayerID model.PlayerID `json:"playerId"`
}

type DeleteTodoPayload struct {
	ID       model.TodoID   `json:"id"`
	PlayerID model.PlayerID `json:"playerId"`
}

// Outbound payloads that are not entity views

type TodoDeletedPayload struct {
	ID model.TodoID `json:"id"`
}

type PlayerDisconnectedPayload struct {
	ID model.PlayerID `json:"id"`
}
