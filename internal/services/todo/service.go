// Package todo implements the shared task board: CRUD over task items with
// author-gated mutation. The acting player's name is resolved from the live
// session registry and must equal the stored author for any mutation to
// proceed.
package todo

import (
	"context"

	"github.com/flooyd/gameserver/internal/dependencies/clock"
	"github.com/flooyd/gameserver/internal/model"
	"github.com/flooyd/gameserver/internal/session"
	"github.com/flooyd/gameserver/internal/storage"
)

// Service handles task board operations. It holds no durable cache; every
// read is a fresh fetch from storage.
type Service struct {
	storage  storage.Storage
	registry *session.Registry
	clock    clock.Clock
}

// New creates a new todo service
func New(storage storage.Storage, registry *session.Registry, clock clock.Clock) *Service {
	return &Service{
		storage:  storage,
		registry: registry,
		clock:    clock,
	}
}

// Create persists a new task item authored by the session with the given
// player id
func (s *Service) Create(ctx context.Context, task string, x, y float64, authorID model.PlayerID) (*model.Todo, error) {
	author, ok := s.registry.Find(authorID)
	if !ok {
		return nil, model.ErrAuthorNotFound
	}

	todo := model.NewTodo(author.Name, task, x, y, s.clock.Now())
	if err := s.storage.SaveTodo(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// Edit updates the task text and position of an item the actor authored
func (s *Service) Edit(ctx context.Context, id model.TodoID, task string, x, y float64, actorID model.PlayerID) (*model.Todo, error) {
	todo, err := s.authorized(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	todo.Task = task
	todo.X = x
	todo.Y = y
	if err := s.storage.SaveTodo(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// Toggle flips the done flag of an item the actor authored
func (s *Service) Toggle(ctx context.Context, id model.TodoID, actorID model.PlayerID) (*model.Todo, error) {
	todo, err := s.authorized(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	todo.Done = !todo.Done
	if err := s.storage.SaveTodo(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// Move updates only the position of an item the actor authored
func (s *Service) Move(ctx context.Context, id model.TodoID, x, y float64, actorID model.PlayerID) (*model.Todo, error) {
	todo, err := s.authorized(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	todo.X = x
	todo.Y = y
	if err := s.storage.SaveTodo(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// Delete removes an item the actor authored
func (s *Service) Delete(ctx context.Context, id model.TodoID, actorID model.PlayerID) error {
	if _, err := s.authorized(ctx, id, actorID); err != nil {
		return err
	}
	return s.storage.DeleteTodo(ctx, id)
}

// List returns every task item. It needs no author resolution and is safe
// to serve to any requester.
func (s *Service) List(ctx context.Context) ([]*model.Todo, error) {
	return s.storage.ListTodos(ctx)
}

// authorized fetches the item and applies the author gate: the actor's
// current session name must equal the stored author.
func (s *Service) authorized(ctx context.Context, id model.TodoID, actorID model.PlayerID) (*model.Todo, error) {
	todo, err := s.storage.GetTodo(ctx, id)
	if err != nil {
		return nil, err
	}

	actor, ok := s.registry.Find(actorID)
	if !ok || actor.Name != todo.Author {
		return nil, model.ErrNotAuthor
	}
	return todo, nil
}
