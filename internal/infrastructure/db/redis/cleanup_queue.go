package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/JHanslik/restaurants-back/internal/core/ports"
)

const (
	cleanupKey      = "media:cleanup"
	dequeueInterval = 5 * time.Second
)

// CleanupQueue is a Redis-list-backed queue of pending delegate-side
// image deletions. Producers LPUSH, the worker BRPOPs, so tasks survive a
// process restart.
type CleanupQueue struct {
	client *redis.Client
}

func NewCleanupQueue(client *redis.Client) *CleanupQueue {
	return &CleanupQueue{client: client}
}

func (q *CleanupQueue) Enqueue(ctx context.Context, task ports.CleanupTask) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal cleanup task: %w", err)
	}
	if err := q.client.LPush(ctx, cleanupKey, payload).Err(); err != nil {
		return fmt.Errorf("enqueue cleanup task: %w", err)
	}
	return nil
}

// Dequeue blocks up to dequeueInterval and returns nil when no task
// arrived, letting the worker re-check its context.
func (q *CleanupQueue) Dequeue(ctx context.Context) (*ports.CleanupTask, error) {
	res, err := q.client.BRPop(ctx, dequeueInterval, cleanupKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("dequeue cleanup task: %w", err)
	}

	// BRPop returns [key, value].
	var task ports.CleanupTask
	if err := json.Unmarshal([]byte(res[1]), &task); err != nil {
		return nil, fmt.Errorf("decode cleanup task: %w", err)
	}
	return &task, nil
}
