package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const loginAttemptsPrefix = "login_attempts:"

type AttemptsRedis struct {
	client *redis.Client
}

func NewAttemptsRedis(client *redis.Client) *AttemptsRedis {
	return &AttemptsRedis{client: client}
}

var _ LoginAttempts = (*AttemptsRedis)(nil)

// Failures returns the current failure count; a missing key counts as zero.
func (r *AttemptsRedis) Failures(ctx context.Context, key string) (int64, error) {
	n, err := r.client.Get(ctx, loginAttemptsPrefix+key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("get login attempts: %w", err)
	}
	return n, nil
}

// RecordFailure increments the counter. The window starts at the first failure
// and is not extended by later ones.
func (r *AttemptsRedis) RecordFailure(ctx context.Context, key string, window time.Duration) (int64, error) {
	k := loginAttemptsPrefix + key
	var incr *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.ExpireNX(ctx, k, window)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("record login failure: %w", err)
	}
	return incr.Val(), nil
}

func (r *AttemptsRedis) Reset(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, loginAttemptsPrefix+key).Err(); err != nil {
		return fmt.Errorf("reset login attempts: %w", err)
	}
	return nil
}
