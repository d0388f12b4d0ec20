package redis

import (
	"fmt"

	"github.com/flooyd/gameserver/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "gameserver"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// nameIndexKey returns the Redis key for the name -> player_id index
func nameIndexKey(name string) string {
	return fmt.Sprintf("%s:idx:name:%s", keyPrefix, name)
}

// todoKey returns the Redis key for a Todo
func todoKey(id model.TodoID) string {
	return fmt.Sprintf("%s:todo:%s", keyPrefix, id)
}

// todoIndexKey returns the Redis key for the SET of all todo ids
func todoIndexKey() string {
	return fmt.Sprintf("%s:idx:todos", keyPrefix)
}
