// Package ratelimit throttles the unauthenticated supplier token endpoints.
// The key is the client IP; the window slides over the last minute.
package ratelimit

import "context"

type Limiter interface {
	// Allow reports whether the request identified by key may proceed.
	Allow(ctx context.Context, key string) (bool, error)
	// Remaining returns how many requests the key has used in the current window.
	Remaining(ctx context.Context, key string) (int64, error)
	Reset(ctx context.Context, key string) error
}

// NoopLimiter allows everything. Used when rate limiting is disabled.
type NoopLimiter struct{}

func (NoopLimiter) Allow(ctx context.Context, key string) (bool, error) { return true, nil }

func (NoopLimiter) Remaining(ctx context.Context, key string) (int64, error) { return 0, nil }

func (NoopLimiter) Reset(ctx context.Context, key string) error { return nil }
