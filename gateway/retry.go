/*
Copyright 2026 Meetingops, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package gateway

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/chainguard-dev/clog"
)

// RetryConfig configures rate-limit retry behavior for completion calls.
type RetryConfig struct {
	// MaxRetries is the maximum number of retry attempts (default: 5).
	// 0 means do not retry at all.
	MaxRetries int
	// BaseBackoff is the initial backoff duration (default: 1s).
	BaseBackoff time.Duration
	// MaxBackoff caps both computed backoff and any server retry-after
	// hint (default: 60s).
	MaxBackoff time.Duration
	// MaxJitter caps the random jitter added to each delay (default: 2s).
	// Jitter is also bounded to 20% of the computed delay.
	MaxJitter time.Duration
}

// Validate checks that the retry configuration has valid values.
func (c RetryConfig) Validate() error {
	if c.MaxRetries < 0 {
		return errors.New("max retries cannot be negative")
	}
	if c.BaseBackoff < 0 {
		return errors.New("base backoff cannot be negative")
	}
	if c.MaxBackoff < 0 {
		return errors.New("max backoff cannot be negative")
	}
	if c.MaxJitter < 0 {
		return errors.New("max jitter cannot be negative")
	}
	return nil
}

// DefaultRetryConfig returns a retry configuration suitable for quota and
// rate limit errors. Backoffs are longer than typical retry configs because
// quota-based limits often need more time to recover.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:  5,
		BaseBackoff: 1 * time.Second,
		MaxBackoff:  60 * time.Second,
		MaxJitter:   2 * time.Second,
	}
}

// retryDelay computes the wait before the next attempt. A server-provided
// retry-after hint wins over exponential backoff; both are capped at
// MaxBackoff. Jitter is random in [0, min(delay/5, MaxJitter)].
func (c RetryConfig) retryDelay(attempt int, hint time.Duration) time.Duration {
	delay := min(c.BaseBackoff<<attempt, c.MaxBackoff)
	if hint > 0 {
		delay = min(hint, c.MaxBackoff)
	}

	maxJitter := min(delay/5, c.MaxJitter)
	if maxJitter <= 0 {
		return delay
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(maxJitter)))
	if err != nil {
		return delay
	}
	return delay + time.Duration(n.Int64())
}

// retryOnRateLimit executes fn, retrying on rate-limit errors with backoff.
// Other errors propagate immediately; exhausting retries propagates the last
// error.
func retryOnRateLimit[T any](ctx context.Context, cfg RetryConfig, operation string, fn func() (T, error)) (T, error) {
	var result T
	var lastErr error

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		result, lastErr = fn()
		if lastErr == nil {
			return result, nil
		}

		if !IsRateLimit(lastErr) {
			return result, lastErr
		}

		if attempt >= cfg.MaxRetries {
			break
		}

		delay := cfg.retryDelay(attempt, retryAfterHint(lastErr))

		clog.FromContext(ctx).With("operation", operation).
			With("attempt", attempt+1).
			With("max_retries", cfg.MaxRetries).
			With("delay", delay).
			With("error", lastErr.Error()).
			Warn("Rate limit hit, retrying")

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(delay):
		}
	}

	return result, fmt.Errorf("%s failed after %d retries: %w", operation, cfg.MaxRetries, lastErr)
}
