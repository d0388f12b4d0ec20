package model

import (
	"time"

	"github.com/google/uuid"
)

// TodoID uniquely identifies a task item
type TodoID string

// Todo is a shared task item anchored to a position in the world.
// Author stores the creating player's name, not their id; it is the
// authorization key for every mutation.
type Todo struct {
	ID        TodoID    `json:"id"`
	Author    string    `json:"author"`
	Task      string    `json:"task"`
	Done      bool      `json:"done"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewTodo creates a task item with a fresh id, authored by the given player name
func NewTodo(author, task string, x, y float64, now time.Time) *Todo {
	return &Todo{
		ID:        TodoID(uuid.NewString()),
		Author:    author,
		Task:      task,
		X:         x,
		Y:         y,
		CreatedAt: now,
	}
}
