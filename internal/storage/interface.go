package storage

import (
	"context"

	"github.com/flooyd/gameserver/internal/model"
)

// Storage defines the interface for data persistence. There is no durable
// cache in front of it; every read is a fresh fetch and concurrent writes
// resolve by last write to reach the backend.
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayerByName(ctx context.Context, name string) (*model.Player, error)
	UpdatePlayerPosition(ctx context.Context, id model.PlayerID, x, y float64) error

	// Todo operations
	SaveTodo(ctx context.Context, todo *model.Todo) error
	GetTodo(ctx context.Context, id model.TodoID) (*model.Todo, error)
	DeleteTodo(ctx context.Context, id model.TodoID) error
	ListTodos(ctx context.Context) ([]*model.Todo, error)
}
