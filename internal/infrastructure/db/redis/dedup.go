package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultDedupTTL = 24 * time.Hour

// SubscriptionDedup remembers addresses that already received the newsletter
// welcome mail. Key format: newsletter:<email>
type SubscriptionDedup struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewSubscriptionDedup wraps client. A non-positive ttl falls back to 24h.
func NewSubscriptionDedup(client redis.Cmdable, ttl time.Duration) *SubscriptionDedup {
	if ttl <= 0 {
		ttl = defaultDedupTTL
	}
	return &SubscriptionDedup{client: client, ttl: ttl}
}

// IsDuplicate reports whether email was marked within the TTL.
func (d *SubscriptionDedup) IsDuplicate(ctx context.Context, email string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(email)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records email until the TTL elapses.
func (d *SubscriptionDedup) Mark(ctx context.Context, email string) error {
	return d.client.Set(ctx, d.key(email), "1", d.ttl).Err()
}

func (d *SubscriptionDedup) key(email string) string {
	return "newsletter:" + email
}
