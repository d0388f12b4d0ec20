package model

import (
	"time"

	"github.com/google/uuid"
)

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Defaults applied to newly registered players
const (
	DefaultWidth  = 30.0
	DefaultHeight = 30.0
	DefaultArea   = "The Beginning"
	DefaultColor  = "#000000"
)

// Player is the persistent account record. The password hash never appears
// in any payload sent to a client; only the storage layer sees it.
type Player struct {
	ID           PlayerID
	Name         string // unique, lowercased at registration
	PasswordHash string // bcrypt hash
	Email        string // optional
	X            float64
	Y            float64
	Width        float64
	Height       float64
	Area         string
	Color        string
	CreatedAt    time.Time
}

// NewPlayer creates a player record with a fresh id and default appearance
func NewPlayer(name, passwordHash, email string, now time.Time) *Player {
	return &Player{
		ID:           PlayerID(uuid.NewString()),
		Name:         name,
		PasswordHash: passwordHash,
		Email:        email,
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		Area:         DefaultArea,
		Color:        DefaultColor,
		CreatedAt:    now,
	}
}

// PlayerView is the sanitized projection returned on login
type PlayerView struct {
	ID     PlayerID `json:"id"`
	Name   string   `json:"name"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Width  float64  `json:"width"`
	Height float64  `json:"height"`
}

// RegisteredView is the projection returned on registration. It omits the
// id: the registering client is not logged in yet.
type RegisteredView struct {
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// View returns the login projection of the player
func (p *Player) View() PlayerView {
	return PlayerView{
		ID:     p.ID,
		Name:   p.Name,
		X:      p.X,
		Y:      p.Y,
		Width:  p.Width,
		Height: p.Height,
	}
}

// Registered returns the registration projection of the player
func (p *Player) Registered() RegisteredView {
	return RegisteredView{
		Name:   p.Name,
		X:      p.X,
		Y:      p.Y,
		Width:  p.Width,
		Height: p.Height,
	}
}
