package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/flooyd/gameserver/internal/dependencies/mocks"
	"github.com/flooyd/gameserver/internal/model"
	"github.com/flooyd/gameserver/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock)
	s.ctx = context.Background()
}

// Register tests

func (s *ServiceSuite) TestRegisterSucceeds() {
	view, err := s.service.Register(s.ctx, "alice", "password123", "alice@example.com")
	s.Require().NoError(err)

	s.Equal("alice", view.Name)
	s.Equal(model.DefaultWidth, view.Width)
	s.Equal(model.DefaultHeight, view.Height)
	s.Equal(0.0, view.X)
	s.Equal(0.0, view.Y)
}

func (s *ServiceSuite) TestRegisterCaseFoldsName() {
	view, err := s.service.Register(s.ctx, "Alice", "password123", "")
	s.Require().NoError(err)
	s.Equal("alice", view.Name)

	player, err := s.storage.GetPlayerByName(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("alice", player.Name)
}

func (s *ServiceSuite) TestRegisterHashesPassword() {
	_, err := s.service.Register(s.ctx, "alice", "password123", "")
	s.Require().NoError(err)

	player, err := s.storage.GetPlayerByName(s.ctx, "alice")
	s.Require().NoError(err)
	s.NotEqual("password123", player.PasswordHash)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(player.PasswordHash), []byte("password123")))
}

func (s *ServiceSuite) TestRegisterFailsIfNameTaken() {
	_, err := s.service.Register(s.ctx, "alice", "password123", "")
	s.Require().NoError(err)

	// A different password and email do not change the outcome
	_, err = s.service.Register(s.ctx, "alice", "other", "other@example.com")
	s.ErrorIs(err, model.ErrNameTaken)
}

func (s *ServiceSuite) TestRegisterFailsIfCaseFoldedNameTaken() {
	_, err := s.service.Register(s.ctx, "alice", "password123", "")
	s.Require().NoError(err)

	_, err = s.service.Register(s.ctx, "ALICE", "other", "")
	s.ErrorIs(err, model.ErrNameTaken)
}

func (s *ServiceSuite) TestRegisterAppliesDefaults() {
	_, err := s.service.Register(s.ctx, "alice", "password123", "")
	s.Require().NoError(err)

	player, err := s.storage.GetPlayerByName(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.DefaultArea, player.Area)
	s.Equal(model.DefaultColor, player.Color)
	s.NotEmpty(player.ID)
	s.Equal(s.clock.CurrentTime, player.CreatedAt)
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	_, err := s.service.Register(s.ctx, "alice", "password123", "")
	s.Require().NoError(err)

	view, err := s.service.Login(s.ctx, "alice", "password123")
	s.Require().NoError(err)
	s.Equal("alice", view.Name)
	s.NotEmpty(view.ID)
}

func (s *ServiceSuite) TestLoginFailsWithWrongPassword() {
	_, err := s.service.Register(s.ctx, "alice", "password123", "")
	s.Require().NoError(err)

	_, err = s.service.Login(s.ctx, "alice", "wrong")
	s.ErrorIs(err, model.ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginFailsForUnknownName() {
	_, err := s.service.Login(s.ctx, "nobody", "password123")
	s.ErrorIs(err, model.ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginMatchesExactStoredName() {
	// Registration stores the case-folded name; login does not fold
	_, err := s.service.Register(s.ctx, "Alice", "password123", "")
	s.Require().NoError(err)

	_, err = s.service.Login(s.ctx, "Alice", "password123")
	s.ErrorIs(err, model.ErrInvalidCredentials)

	view, err := s.service.Login(s.ctx, "alice", "password123")
	s.Require().NoError(err)
	s.Equal("alice", view.Name)
}
