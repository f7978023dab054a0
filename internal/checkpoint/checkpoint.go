package checkpoint

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/feral-file/hub-shuttle/internal/adapter"
)

// Checkpoint records the last-processed hub event id per hub identifier
type Checkpoint interface {
	// Load returns the saved event id for a hub, or 0 when none was saved
	Load(ctx context.Context, hubID string) (uint64, error)
	// Save stores the event id for a hub
	Save(ctx context.Context, hubID string, eventID uint64) error
	// Clear drops every saved checkpoint
	Clear(ctx context.Context) error
}

type redisCheckpoint struct {
	client adapter.RedisClient
}

// NewRedisCheckpoint creates a checkpoint store backed by Redis
func NewRedisCheckpoint(client adapter.RedisClient) Checkpoint {
	return &redisCheckpoint{client: client}
}

func checkpointKey(hubID string) string {
	return fmt.Sprintf("hub:%s:last-hub-event-id", hubID)
}

// Load returns the saved event id for a hub, or 0 when none was saved
func (c *redisCheckpoint) Load(ctx context.Context, hubID string) (uint64, error) {
	value, err := c.client.Get(ctx, checkpointKey(hubID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load checkpoint for hub %s: %w", hubID, err)
	}
	eventID, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt checkpoint for hub %s: %w", hubID, err)
	}
	return eventID, nil
}

// Save stores the event id for a hub as a decimal string without expiration
func (c *redisCheckpoint) Save(ctx context.Context, hubID string, eventID uint64) error {
	err := c.client.Set(ctx, checkpointKey(hubID), strconv.FormatUint(eventID, 10), 0).Err()
	if err != nil {
		return fmt.Errorf("failed to save checkpoint for hub %s: %w", hubID, err)
	}
	return nil
}

// Clear drops every saved checkpoint
func (c *redisCheckpoint) Clear(ctx context.Context) error {
	if err := c.client.FlushDB(ctx).Err(); err != nil {
		return fmt.Errorf("failed to clear checkpoints: %w", err)
	}
	return nil
}
