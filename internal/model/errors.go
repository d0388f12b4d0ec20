package model

import "errors"

// Common errors used across the application
var (
	// Authentication errors
	ErrNameTaken          = errors.New("player name already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Todo errors
	ErrAuthorNotFound = errors.New("author session not found")
	ErrTodoNotFound   = errors.New("todo not found")
	ErrNotAuthor      = errors.New("player is not the todo author")

	// Storage errors
	ErrStorageUnavailable = errors.New("storage unavailable")
)
