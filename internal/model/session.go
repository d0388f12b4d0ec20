package model

// Session is the runtime projection of a player while connected. It is
// never persisted; the session registry owns exactly one per logged-in
// player id.
type Session struct {
	ID     PlayerID `json:"id"`
	Name   string   `json:"name"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Width  float64  `json:"width"`
	Height float64  `json:"height"`
}

// NewSession builds a session from a login view
func NewSession(view PlayerView) Session {
	return Session{
		ID:     view.ID,
		Name:   view.Name,
		X:      view.X,
		Y:      view.Y,
		Width:  view.Width,
		Height: view.Height,
	}
}
