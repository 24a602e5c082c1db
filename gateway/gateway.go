/*
Copyright 2026 Meetingops, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package gateway

import (
	"context"
	"fmt"

	"github.com/chainguard-dev/clog"
	"golang.org/x/sync/semaphore"
)

// DefaultConcurrency bounds in-flight completion calls when no override is
// configured. The completion service is quota-limited, so this stays small.
const DefaultConcurrency = 2

// Completer is the protocol-level contract a completion backend implements.
// Backends normalize their SDK failures into *RemoteError.
type Completer interface {
	// Complete sends instructions plus input and returns the raw text
	// response.
	Complete(ctx context.Context, instructions, input string) (string, error)
}

// Gateway bounds concurrent access to a completion backend and retries
// rate-limited calls with backoff. It is shared by every handler that talks
// to the completion service.
type Gateway struct {
	backend     Completer
	sem         *semaphore.Weighted
	retryConfig RetryConfig
}

// Option configures a Gateway.
type Option func(*Gateway) error

// WithConcurrency sets the maximum number of in-flight completion calls.
func WithConcurrency(n int) Option {
	return func(g *Gateway) error {
		if n <= 0 {
			return fmt.Errorf("concurrency must be positive, got %d", n)
		}
		g.sem = semaphore.NewWeighted(int64(n))
		return nil
	}
}

// WithRetryConfig overrides the rate-limit retry configuration.
func WithRetryConfig(cfg RetryConfig) Option {
	return func(g *Gateway) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		g.retryConfig = cfg
		return nil
	}
}

// New creates a Gateway over the given backend.
func New(backend Completer, opts ...Option) (*Gateway, error) {
	if backend == nil {
		return nil, fmt.Errorf("backend cannot be nil")
	}

	g := &Gateway{
		backend:     backend,
		sem:         semaphore.NewWeighted(DefaultConcurrency),
		retryConfig: DefaultRetryConfig(),
	}

	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, fmt.Errorf("applying option: %w", err)
		}
	}

	return g, nil
}

// Complete sends a completion request, queueing behind the concurrency bound.
// Queued callers are admitted in FIFO order as slots free up. Rate-limit
// failures are retried per the configured policy; other failures propagate
// immediately.
func (g *Gateway) Complete(ctx context.Context, instructions, input string) (string, error) {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("waiting for completion slot: %w", err)
	}
	defer g.sem.Release(1)

	clog.FromContext(ctx).With("input_length", len(input)).
		Debug("Dispatching completion call")

	return retryOnRateLimit(ctx, g.retryConfig, "complete", func() (string, error) {
		return g.backend.Complete(ctx, instructions, input)
	})
}

// CompleteJSON sends a completion request with a JSON directive appended and
// parses the response into T. A response that does not parse fails with
// *ParseError and is not retried.
func CompleteJSON[T any](ctx context.Context, g *Gateway, instructions, input string) (T, error) {
	var zero T
	text, err := g.Complete(ctx, instructions, input+"\n\nRespond with JSON.")
	if err != nil {
		return zero, err
	}
	return decodeJSON[T](text)
}
