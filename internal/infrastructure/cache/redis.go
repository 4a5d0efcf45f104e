// Package cache connects to the Redis instance backing the catalog cache
// and the motivation rate limiter.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/housekeep/core/internal/infrastructure/config"
	"github.com/housekeep/core/internal/infrastructure/logger"
)

const (
	connectAttempts = 5
	firstRetryDelay = 500 * time.Millisecond
)

// Connect dials Redis and pings it, retrying with exponential backoff.
// It returns nil without error when Redis is disabled.
func Connect(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.GetAddr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	delay := firstRetryDelay
	var err error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		if err = Ping(ctx, client); err == nil {
			log.Infow("Connected to Redis", "address", cfg.GetAddr(), "db", cfg.DB)
			return client, nil
		}

		log.Warnw("Redis connection failed", "attempt", attempt, "error", err)
		if attempt == connectAttempts {
			break
		}

		select {
		case <-ctx.Done():
			client.Close()
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	client.Close()
	return nil, fmt.Errorf("failed to connect to Redis after %d attempts: %w", connectAttempts, err)
}

// Ping checks the connection with a short deadline
func Ping(ctx context.Context, client *redis.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err()
}
