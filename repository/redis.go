// redis.go
package repository

import (
	"context"
	"fmt"

	"go-tabletop/config"

	"github.com/go-redis/redis/v8"
)

// NewRedis connects and pings the configured redis server.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis connect %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}
