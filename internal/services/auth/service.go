// Package auth registers and authenticates players against the credential
// store and produces sanitized player views.
package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/flooyd/gameserver/internal/dependencies/clock"
	"github.com/flooyd/gameserver/internal/model"
	"github.com/flooyd/gameserver/internal/storage"
)

// Service handles player registration and login
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	cost    int
}

// New creates a new auth service. The bcrypt cost is fixed at the library
// default (10 rounds).
func New(storage storage.Storage, clock clock.Clock) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		cost:    bcrypt.DefaultCost,
	}
}

// Register creates a new player account. The name is case-folded before the
// uniqueness check. The returned view carries no id; the registering client
// is not logged in yet.
func (s *Service) Register(ctx context.Context, name, password, email string) (*model.RegisteredView, error) {
	name = strings.ToLower(name)

	_, err := s.storage.GetPlayerByName(ctx, name)
	if err == nil {
		return nil, model.ErrNameTaken
	}
	if !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}

	player := model.NewPlayer(name, string(hash), email, s.clock.Now())
	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	view := player.Registered()
	return &view, nil
}

// Login authenticates a player by exact stored name and password. The hash
// comparison is constant-time via bcrypt.
func (s *Service) Login(ctx context.Context, name, password string) (*model.PlayerView, error) {
	player, err := s.storage.GetPlayerByName(ctx, name)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(player.PasswordHash), []byte(password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	view := player.View()
	return &view, nil
}
