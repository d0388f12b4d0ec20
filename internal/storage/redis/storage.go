package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/flooyd/gameserver/internal/model"
	"github.com/flooyd/gameserver/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// playerRecord is the persisted form of a Player. model.Player deliberately
// has no JSON shape of its own so the password hash cannot leak into wire
// payloads; persistence gets its own record type instead.
type playerRecord struct {
	ID           model.PlayerID `json:"id"`
	Name         string         `json:"name"`
	PasswordHash string         `json:"passwordHash"`
	Email        string         `json:"email,omitempty"`
	X            float64        `json:"x"`
	Y            float64        `json:"y"`
	Width        float64        `json:"width"`
	Height       float64        `json:"height"`
	Area         string         `json:"area,omitempty"`
	Color        string         `json:"color,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}

func toRecord(p *model.Player) playerRecord {
	return playerRecord{
		ID:           p.ID,
		Name:         p.Name,
		PasswordHash: p.PasswordHash,
		Email:        p.Email,
		X:            p.X,
		Y:            p.Y,
		Width:        p.Width,
		Height:       p.Height,
		Area:         p.Area,
		Color:        p.Color,
		CreatedAt:    p.CreatedAt,
	}
}

func (r playerRecord) toPlayer() *model.Player {
	return &model.Player{
		ID:           r.ID,
		Name:         r.Name,
		PasswordHash: r.PasswordHash,
		Email:        r.Email,
		X:            r.X,
		Y:            r.Y,
		Width:        r.Width,
		Height:       r.Height,
		Area:         r.Area,
		Color:        r.Color,
		CreatedAt:    r.CreatedAt,
	}
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	// The name index is the uniqueness enforcement point
	existing, err := s.client.Get(ctx, nameIndexKey(player.Name)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if err == nil && model.PlayerID(existing) != player.ID {
		return model.ErrNameTaken
	}

	data, err := json.Marshal(toRecord(player))
	if err != nil {
		return err
	}

	// Pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, playerKey(player.ID), data, 0)
	pipe.Set(ctx, nameIndexKey(player.Name), string(player.ID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayerByName(ctx context.Context, name string) (*model.Player, error) {
	id, err := s.client.Get(ctx, nameIndexKey(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	return s.getPlayer(ctx, model.PlayerID(id))
}

func (s *Storage) getPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var record playerRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return record.toPlayer(), nil
}

func (s *Storage) UpdatePlayerPosition(ctx context.Context, id model.PlayerID, x, y float64) error {
	// Read-modify-write; concurrent writers resolve by last write
	player, err := s.getPlayer(ctx, id)
	if err != nil {
		return err
	}
	player.X = x
	player.Y = y

	data, err := json.Marshal(toRecord(player))
	if err != nil {
		return err
	}
	return s.client.Set(ctx, playerKey(id), data, 0).Err()
}

// Todo operations

func (s *Storage) SaveTodo(ctx context.Context, todo *model.Todo) error {
	data, err := json.Marshal(todo)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, todoKey(todo.ID), data, 0)
	pipe.SAdd(ctx, todoIndexKey(), string(todo.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetTodo(ctx context.Context, id model.TodoID) (*model.Todo, error) {
	data, err := s.client.Get(ctx, todoKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrTodoNotFound
		}
		return nil, err
	}

	var todo model.Todo
	if err := json.Unmarshal(data, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (s *Storage) DeleteTodo(ctx context.Context, id model.TodoID) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, todoKey(id))
	pipe.SRem(ctx, todoIndexKey(), string(id))
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) ListTodos(ctx context.Context) ([]*model.Todo, error) {
	ids, err := s.client.SMembers(ctx, todoIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.Todo{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = todoKey(model.TodoID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	todos := make([]*model.Todo, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Index entry without a value; the todo was deleted mid-read
			continue
		}
		var todo model.Todo
		if err := json.Unmarshal([]byte(raw), &todo); err != nil {
			return nil, err
		}
		todos = append(todos, &todo)
	}
	sort.Slice(todos, func(i, j int) bool {
		if todos[i].CreatedAt.Equal(todos[j].CreatedAt) {
			return todos[i].ID < todos[j].ID
		}
		return todos[i].CreatedAt.Before(todos[j].CreatedAt)
	})
	return todos, nil
}
