package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/devcollab/devcollab-api/internal/core/domain"
)

// PresenceTTL bounds how long an entry survives without a refresh. It is the
// safety net against missed disconnect events and the basis for sharing the
// presence set across instances.
const PresenceTTL = 90 * time.Second

// PresenceStore mirrors the in-process presence registry into Redis.
// Key format: presence:<user_id>, value: JSON-encoded user reference.
type PresenceStore struct {
	client *redis.Client
}

// NewPresenceStore creates a PresenceStore wrapping the given Redis client.
func NewPresenceStore(client *redis.Client) *PresenceStore {
	return &PresenceStore{client: client}
}

// Put records the user as online, overwriting any previous entry.
func (p *PresenceStore) Put(ctx context.Context, userID string, info domain.UserRef) error {
	payload, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("presence put: %w", err)
	}
	return p.client.Set(ctx, p.key(userID), payload, PresenceTTL).Err()
}

// Refresh extends the TTL of an existing entry. A missing entry is not an
// error: the next Put recreates it.
func (p *PresenceStore) Refresh(ctx context.Context, userID string) error {
	return p.client.Expire(ctx, p.key(userID), PresenceTTL).Err()
}

// Remove deletes the entry on disconnect.
func (p *PresenceStore) Remove(ctx context.Context, userID string) error {
	return p.client.Del(ctx, p.key(userID)).Err()
}

func (p *PresenceStore) key(userID string) string {
	return "presence:" + userID
}
