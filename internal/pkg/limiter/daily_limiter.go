// Package limiter enforces the per-user daily chat quota on top of redis.
package limiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"ai-agenthub-be/internal/pkg/logger"
)

type IDailyLimiter interface {
	// Allow increments the user's counter for today and reports whether the
	// request is within quota. Redis outages fail open.
	Allow(ctx context.Context, userId string, limit int) (bool, error)
	Remaining(ctx context.Context, userId string, limit int) (int, error)
}

type dailyLimiter struct {
	client *redis.Client
	log    logger.ILogger
}

func NewDailyLimiter(client *redis.Client, log logger.ILogger) IDailyLimiter {
	return &dailyLimiter{client: client, log: log}
}

func quotaKey(userId string, now time.Time) string {
	return fmt.Sprintf("chat_quota:%s:%s", userId, now.UTC().Format("2006-01-02"))
}

func (l *dailyLimiter) Allow(ctx context.Context, userId string, limit int) (bool, error) {
	if limit <= 0 {
		return true, nil
	}

	now := time.Now()
	key := quotaKey(userId, now)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		l.log.Warn("limiter", "redis unavailable, allowing request", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		return true, nil
	}

	if count == 1 {
		midnight := now.UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
		if err := l.client.ExpireAt(ctx, key, midnight).Err(); err != nil {
			l.log.Warn("limiter", "failed to set quota expiry", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}

	return count <= int64(limit), nil
}

func (l *dailyLimiter) Remaining(ctx context.Context, userId string, limit int) (int, error) {
	if limit <= 0 {
		return -1, nil
	}

	count, err := l.client.Get(ctx, quotaKey(userId, time.Now())).Int()
	if err != nil && err != redis.Nil {
		return limit, nil
	}

	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}
