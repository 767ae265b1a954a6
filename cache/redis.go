// Package cache keeps rendered order-list views in Redis so the admin
// dashboard and customer order pages don't hit MongoDB on every refresh.
// Without REDIS_HOST configured every operation is a no-op.
package cache

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const viewTTL = 60 * time.Second

const AdminOrdersKey = "views:admin:orders"

func UserOrdersKey(userID string) string {
	return "views:user:orders:" + userID
}

type Views struct {
	client *redis.Client
	log    *logrus.Logger
}

// Connect dials Redis when REDIS_HOST is set. A nil client disables view
// caching rather than failing startup; the cache is an optimization, not a
// dependency.
func Connect(log *logrus.Logger) *Views {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		log.Info("REDIS_HOST not set, view caching disabled")
		return &Views{log: log}
	}

	client := redis.NewClient(&redis.Options{
		Addr:         host,
		Password:     os.Getenv("REDIS_PASSWORD"),
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		log.WithError(err).Warn("Redis unreachable, view caching disabled")
		return &Views{log: log}
	}

	log.Info("✅ Redis connected")
	return &Views{client: client, log: log}
}

// Get returns a cached view body, if present.
func (v *Views) Get(ctx context.Context, key string) ([]byte, bool) {
	if v.client == nil {
		return nil, false
	}
	data, err := v.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// Put stores a rendered view body under key for the view TTL.
func (v *Views) Put(ctx context.Context, key string, body []byte) {
	if v.client == nil {
		return
	}
	if err := v.client.Set(ctx, key, body, viewTTL).Err(); err != nil {
		v.log.WithError(err).WithField("key", key).Warn("failed to cache view")
	}
}

// InvalidateOrders drops the admin order list and the given user's order
// list. Called after any mutation that changes what those pages show.
func (v *Views) InvalidateOrders(ctx context.Context, userID string) {
	if v.client == nil {
		return
	}
	keys := []string{AdminOrdersKey}
	if userID != "" {
		keys = append(keys, UserOrdersKey(userID))
	}
	if err := v.client.Del(ctx, keys...).Err(); err != nil {
		v.log.WithError(err).Warn(fmt.Sprintf("failed to invalidate %d view keys", len(keys)))
	}
}

// Close releases the Redis connection.
func (v *Views) Close() error {
	if v.client == nil {
		return nil
	}
	return v.client.Close()
}
