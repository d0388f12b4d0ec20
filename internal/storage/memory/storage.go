package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/flooyd/gameserver/internal/model"
	"github.com/flooyd/gameserver/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players   map[model.PlayerID]*model.Player
	nameIndex map[string]model.PlayerID
	todos     map[model.TodoID]*model.Todo
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:   make(map[model.PlayerID]*model.Player),
		nameIndex: make(map[string]model.PlayerID),
		todos:     make(map[model.TodoID]*model.Todo),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.nameIndex[player.Name]; ok && existing != player.ID {
		return model.ErrNameTaken
	}
	cp := *player
	s.players[player.ID] = &cp
	s.nameIndex[player.Name] = player.ID
	return nil
}

func (s *Storage) GetPlayerByName(ctx context.Context, name string) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.nameIndex[name]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	cp := *player
	return &cp, nil
}

func (s *Storage) UpdatePlayerPosition(ctx context.Context, id model.PlayerID, x, y float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	player, ok := s.players[id]
	if !ok {
		return model.ErrPlayerNotFound
	}
	player.X = x
	player.Y = y
	return nil
}

// Todo operations

func (s *Storage) SaveTodo(ctx context.Context, todo *model.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *todo
	s.todos[todo.ID] = &cp
	return nil
}

func (s *Storage) GetTodo(ctx context.Context, id model.TodoID) (*model.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	todo, ok := s.todos[id]
	if !ok {
		return nil, model.ErrTodoNotFound
	}
	cp := *todo
	return &cp, nil
}

func (s *Storage) DeleteTodo(ctx context.Context, id model.TodoID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.todos, id)
	return nil
}

func (s *Storage) ListTodos(ctx context.Context) ([]*model.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Todo, 0, len(s.todos))
	for _, todo := range s.todos {
		cp := *todo
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
