// Package postgres implements the storage interface on PostgreSQL via
// database/sql and lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/flooyd/gameserver/internal/model"
	"github.com/flooyd/gameserver/internal/storage"
)

// uniqueViolation is the Postgres error code for unique constraint violations
const uniqueViolation = "23505"

// Storage is a Postgres-backed implementation of the storage interface
type Storage struct {
	db *sql.DB
}

// New opens a connection pool, verifies it, and ensures the schema exists
func New(cfg Config) (*Storage, error) {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storage{db: db}, nil
}

// NewWithDB creates a Postgres storage with an existing pool (for testing)
func NewWithDB(db *sql.DB) *Storage {
	return &Storage{db: db}
}

// Close closes the connection pool
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// storageErr tags a driver fault so callers can classify it with
// errors.Is(err, model.ErrStorageUnavailable).
func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(model.ErrStorageUnavailable, err))
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO players (id, name, password_hash, email, x, y, width, height, area, color, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			password_hash = EXCLUDED.password_hash,
			email = EXCLUDED.email,
			x = EXCLUDED.x,
			y = EXCLUDED.y,
			width = EXCLUDED.width,
			height = EXCLUDED.height,
			area = EXCLUDED.area,
			color = EXCLUDED.color`,
		string(player.ID), player.Name, player.PasswordHash, player.Email,
		player.X, player.Y, player.Width, player.Height,
		player.Area, player.Color, player.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return model.ErrNameTaken
		}
		return storageErr("save player", err)
	}
	return nil
}

func (s *Storage) GetPlayerByName(ctx context.Context, name string) (*model.Player, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, password_hash, email, x, y, width, height, area, color, created_at
		FROM players WHERE name = $1`, name)

	var p model.Player
	var id string
	err := row.Scan(&id, &p.Name, &p.PasswordHash, &p.Email,
		&p.X, &p.Y, &p.Width, &p.Height, &p.Area, &p.Color, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrPlayerNotFound
	}
	if err != nil {
		return nil, storageErr("get player by name", err)
	}
	p.ID = model.PlayerID(id)
	return &p, nil
}

func (s *Storage) UpdatePlayerPosition(ctx context.Context, id model.PlayerID, x, y float64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE players SET x = $1, y = $2 WHERE id = $3`, x, y, string(id))
	if err != nil {
		return storageErr("update player position", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storageErr("update player position", err)
	}
	if affected == 0 {
		return model.ErrPlayerNotFound
	}
	return nil
}

// Todo operations

func (s *Storage) SaveTodo(ctx context.Context, todo *model.Todo) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO todos (id, author, task, done, x, y, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			task = EXCLUDED.task,
			done = EXCLUDED.done,
			x = EXCLUDED.x,
			y = EXCLUDED.y`,
		string(todo.ID), todo.Author, todo.Task, todo.Done,
		todo.X, todo.Y, todo.CreatedAt,
	)
	if err != nil {
		return storageErr("save todo", err)
	}
	return nil
}

func (s *Storage) GetTodo(ctx context.Context, id model.TodoID) (*model.Todo, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, author, task, done, x, y, created_at
		FROM todos WHERE id = $1`, string(id))

	todo, err := scanTodo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrTodoNotFound
	}
	if err != nil {
		return nil, storageErr("get todo", err)
	}
	return todo, nil
}

func (s *Storage) DeleteTodo(ctx context.Context, id model.TodoID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, string(id)); err != nil {
		return storageErr("delete todo", err)
	}
	return nil
}

func (s *Storage) ListTodos(ctx context.Context) ([]*model.Todo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, author, task, done, x, y, created_at
		FROM todos ORDER BY created_at, id`)
	if err != nil {
		return nil, storageErr("list todos", err)
	}
	defer rows.Close()

	todos := make([]*model.Todo, 0)
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, storageErr("list todos", err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list todos", err)
	}
	return todos, nil
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(row scanner) (*model.Todo, error) {
	var t model.Todo
	var id string
	if err := row.Scan(&id, &t.Author, &t.Task, &t.Done, &t.X, &t.Y, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.ID = model.TodoID(id)
	return &t, nil
}
