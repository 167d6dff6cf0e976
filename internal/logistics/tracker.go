// Package logistics keeps the state of the simulated Droplatam sync.
package logistics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LastSyncKey is the Redis key holding the last sync timestamp.
const LastSyncKey = "logistics:last_sync"

// Tracker records when the logistics data was last synced.
type Tracker struct {
	client *redis.Client
}

// NewTracker builds a Tracker on top of a Redis client.
func NewTracker(client *redis.Client) *Tracker {
	return &Tracker{client: client}
}

// MarkSynced stores at as the last sync time.
func (t *Tracker) MarkSynced(ctx context.Context, at time.Time) error {
	if t == nil || t.client == nil {
		return errors.New("logistics: tracker not configured")
	}
	if err := t.client.Set(ctx, LastSyncKey, at.UTC().Format(time.RFC3339Nano), 0).Err(); err != nil {
		return fmt.Errorf("logistics: mark synced: %w", err)
	}
	return nil
}

// LastSync returns the last sync time. ok is false when no sync happened yet.
func (t *Tracker) LastSync(ctx context.Context) (at time.Time, ok bool, err error) {
	if t == nil || t.client == nil {
		return time.Time{}, false, nil
	}
	raw, err := t.client.Get(ctx, LastSyncKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("logistics: last sync: %w", err)
	}
	at, err = time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("logistics: parse last sync: %w", err)
	}
	return at, true, nil
}
