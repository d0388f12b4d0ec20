package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/flooyd/gameserver/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := model.NewPlayer("alice", "hash", "alice@example.com", time.Now())
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	got, err := s.storage.GetPlayerByName(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(player.ID, got.ID)
	s.Equal("hash", got.PasswordHash)
	s.Equal(model.DefaultArea, got.Area)
}

func (s *StorageSuite) TestGetPlayerByNameNotFound() {
	_, err := s.storage.GetPlayerByName(s.ctx, "missing")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestSavePlayerRejectsTakenName() {
	first := model.NewPlayer("alice", "hash1", "", time.Now())
	s.Require().NoError(s.storage.SavePlayer(s.ctx, first))

	second := model.NewPlayer("alice", "hash2", "other@example.com", time.Now())
	s.ErrorIs(s.storage.SavePlayer(s.ctx, second), model.ErrNameTaken)
}

func (s *StorageSuite) TestSavePlayerSameIDUpdates() {
	player := model.NewPlayer("alice", "hash", "", time.Now())
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	player.X = 42
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	got, err := s.storage.GetPlayerByName(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(42.0, got.X)
}

func (s *StorageSuite) TestUpdatePlayerPosition() {
	player := model.NewPlayer("alice", "hash", "", time.Now())
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	s.Require().NoError(s.storage.UpdatePlayerPosition(s.ctx, player.ID, 3, 4))

	got, err := s.storage.GetPlayerByName(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(3.0, got.X)
	s.Equal(4.0, got.Y)
}

func (s *StorageSuite) TestUpdatePlayerPositionUnknownID() {
	err := s.storage.UpdatePlayerPosition(s.ctx, "missing", 1, 2)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Todo tests

func (s *StorageSuite) TestSaveAndGetTodo() {
	todo := model.NewTodo("alice", "water plants", 1, 2, time.Now())
	s.Require().NoError(s.storage.SaveTodo(s.ctx, todo))

	got, err := s.storage.GetTodo(s.ctx, todo.ID)
	s.Require().NoError(err)
	s.Equal("alice", got.Author)
	s.Equal("water plants", got.Task)
	s.False(got.Done)
}

func (s *StorageSuite) TestGetTodoNotFound() {
	_, err := s.storage.GetTodo(s.ctx, "missing")
	s.ErrorIs(err, model.ErrTodoNotFound)
}

func (s *StorageSuite) TestDeleteTodo() {
	todo := model.NewTodo("alice", "water plants", 1, 2, time.Now())
	s.Require().NoError(s.storage.SaveTodo(s.ctx, todo))
	s.Require().NoError(s.storage.DeleteTodo(s.ctx, todo.ID))

	_, err := s.storage.GetTodo(s.ctx, todo.ID)
	s.ErrorIs(err, model.ErrTodoNotFound)
}

func (s *StorageSuite) TestDeleteTodoUnknownIDIsNoop() {
	s.NoError(s.storage.DeleteTodo(s.ctx, "missing"))
}

func (s *StorageSuite) TestListTodosOrderedByCreation() {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	first := model.NewTodo("alice", "first", 0, 0, base)
	second := model.NewTodo("bob", "second", 0, 0, base.Add(time.Minute))

	// Insert out of order
	s.Require().NoError(s.storage.SaveTodo(s.ctx, second))
	s.Require().NoError(s.storage.SaveTodo(s.ctx, first))

	todos, err := s.storage.ListTodos(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(todos, 2)
	s.Equal("first", todos[0].Task)
	s.Equal("second", todos[1].Task)
}

func (s *StorageSuite) TestStoredTodoIsIsolatedFromCaller() {
	todo := model.NewTodo("alice", "water plants", 1, 2, time.Now())
	s.Require().NoError(s.storage.SaveTodo(s.ctx, todo))

	todo.Task = "mutated"

	got, err := s.storage.GetTodo(s.ctx, todo.ID)
	s.Require().NoError(err)
	s.Equal("water plants", got.Task)
}
