package redis

import (
	"context"
	"fmt"
	"time"
)

// RateLimiter caps how many updates a single sender may have processed per
// fixed window, using a counter that expires with the window.
type RateLimiter struct {
	client RedisClient
}

func NewRateLimiter(client RedisClient) *RateLimiter {
	return &RateLimiter{client: client}
}

func (r *RateLimiter) Allow(ctx context.Context, senderID string, limit int, window time.Duration) (bool, error) {
	key := fmt.Sprintf("rate_limit:%s", senderID)

	count, err := r.client.Incr(ctx, key)
	if err != nil {
		return false, err
	}

	if count == 1 {
		if err := r.client.Expire(ctx, key, window); err != nil {
			return false, err
		}
	}

	if count > int64(limit) {
		return false, nil
	}

	return true, nil
}
