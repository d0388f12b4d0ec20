package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/flooyd/gameserver/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := model.NewPlayer("alice", "hash", "alice@example.com", time.Now().UTC())
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	got, err := s.storage.GetPlayerByName(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(player.ID, got.ID)
	s.Equal("hash", got.PasswordHash)
	s.Equal("alice@example.com", got.Email)
	s.Equal(model.DefaultWidth, got.Width)
}

func (s *StorageSuite) TestGetPlayerByNameNotFound() {
	_, err := s.storage.GetPlayerByName(s.ctx, "missing")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestSavePlayerRejectsTakenName() {
	first := model.NewPlayer("alice", "hash1", "", time.Now().UTC())
	s.Require().NoError(s.storage.SavePlayer(s.ctx, first))

	second := model.NewPlayer("alice", "hash2", "", time.Now().UTC())
	s.ErrorIs(s.storage.SavePlayer(s.ctx, second), model.ErrNameTaken)
}

func (s *StorageSuite) TestSavePlayerSameIDUpdates() {
	player := model.NewPlayer("alice", "hash", "", time.Now().UTC())
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	player.Color = "#ff0000"
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	got, err := s.storage.GetPlayerByName(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("#ff0000", got.Color)
}

func (s *StorageSuite) TestUpdatePlayerPosition() {
	player := model.NewPlayer("alice", "hash", "", time.Now().UTC())
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	s.Require().NoError(s.storage.UpdatePlayerPosition(s.ctx, player.ID, 7, 8))

	got, err := s.storage.GetPlayerByName(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(7.0, got.X)
	s.Equal(8.0, got.Y)
	// Position write must not clobber credentials
	s.Equal("hash", got.PasswordHash)
}

func (s *StorageSuite) TestUpdatePlayerPositionUnknownID() {
	err := s.storage.UpdatePlayerPosition(s.ctx, "missing", 1, 2)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Todo tests

func (s *StorageSuite) TestSaveAndGetTodo() {
	todo := model.NewTodo("alice", "water plants", 1, 2, time.Now().UTC())
	s.Require().NoError(s.storage.SaveTodo(s.ctx, todo))

	got, err := s.storage.GetTodo(s.ctx, todo.ID)
	s.Require().NoError(err)
	s.Equal(todo.ID, got.ID)
	s.Equal("alice", got.Author)
	s.Equal("water plants", got.Task)
}

func (s *StorageSuite) TestGetTodoNotFound() {
	_, err := s.storage.GetTodo(s.ctx, "missing")
	s.ErrorIs(err, model.ErrTodoNotFound)
}

func (s *StorageSuite) TestDeleteTodoRemovesFromList() {
	todo := model.NewTodo("alice", "water plants", 1, 2, time.Now().UTC())
	s.Require().NoError(s.storage.SaveTodo(s.ctx, todo))
	s.Require().NoError(s.storage.DeleteTodo(s.ctx, todo.ID))

	_, err := s.storage.GetTodo(s.ctx, todo.ID)
	s.ErrorIs(err, model.ErrTodoNotFound)

	todos, err := s.storage.ListTodos(s.ctx)
	s.Require().NoError(err)
	s.Empty(todos)
}

func (s *StorageSuite) TestListTodosOrderedByCreation() {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	first := model.NewTodo("alice", "first", 0, 0, base)
	second := model.NewTodo("bob", "second", 0, 0, base.Add(time.Minute))

	s.Require().NoError(s.storage.SaveTodo(s.ctx, second))
	s.Require().NoError(s.storage.SaveTodo(s.ctx, first))

	todos, err := s.storage.ListTodos(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(todos, 2)
	s.Equal("first", todos[0].Task)
	s.Equal("second", todos[1].Task)
}

func (s *StorageSuite) TestListTodosEmpty() {
	todos, err := s.storage.ListTodos(s.ctx)
	s.Require().NoError(err)
	s.Empty(todos)
}
