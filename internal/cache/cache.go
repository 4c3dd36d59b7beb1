package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// New connects a Redis client and verifies the connection with a short ping.
// Callers that can run without Redis should treat the error as a degraded
// mode rather than fatal.
func New(addr string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}
