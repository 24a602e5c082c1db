/*
Copyright 2026 Meetingops, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package gateway_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/meetingops/actioneer/gateway"
	"golang.org/x/sync/errgroup"
)

// fakeCompleter scripts responses and tracks in-flight concurrency.
type fakeCompleter struct {
	mu        sync.Mutex
	responses []string
	errs      []error
	calls     int

	delay       time.Duration
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func (f *fakeCompleter) Complete(ctx context.Context, instructions, input string) (string, error) {
	cur := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		observed := f.maxInFlight.Load()
		if cur <= observed || f.maxInFlight.CompareAndSwap(observed, cur) {
			break
		}
	}

	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.delay):
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return "done", nil
}

func fastRetry() gateway.RetryConfig {
	return gateway.RetryConfig{
		MaxRetries:  5,
		BaseBackoff: time.Millisecond,
		MaxBackoff:  5 * time.Millisecond,
		MaxJitter:   time.Millisecond,
	}
}

func TestComplete(t *testing.T) {
	t.Parallel()
	fake := &fakeCompleter{responses: []string{"hello"}}
	gw, err := gateway.New(fake)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got, err := gw.Complete(context.Background(), "be brief", "hi")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "hello" {
		t.Fatalf("expected %q, got %q", "hello", got)
	}
}

func TestComplete_RetriesRateLimit(t *testing.T) {
	t.Parallel()
	fake := &fakeCompleter{
		errs:      []error{&gateway.RemoteError{StatusCode: 429, Message: "too many requests"}, nil},
		responses: []string{"", "recovered"},
	}
	gw, err := gateway.New(fake, gateway.WithRetryConfig(fastRetry()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got, err := gw.Complete(context.Background(), "", "input")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "recovered" {
		t.Fatalf("expected %q, got %q", "recovered", got)
	}
	if fake.calls != 2 {
		t.Fatalf("expected 2 backend calls, got %d", fake.calls)
	}
}

func TestComplete_NonRateLimitPropagates(t *testing.T) {
	t.Parallel()
	boom := &gateway.RemoteError{StatusCode: 400, Message: "bad request"}
	fake := &fakeCompleter{errs: []error{boom}}
	gw, err := gateway.New(fake, gateway.WithRetryConfig(fastRetry()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = gw.Complete(context.Background(), "", "input")
	if !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}
	if fake.calls != 1 {
		t.Fatalf("expected no retries, got %d calls", fake.calls)
	}
}

// With bound N and M>N concurrent callers, at most N calls are ever in
// flight at the backend and all M complete.
func TestComplete_Backpressure(t *testing.T) {
	t.Parallel()
	const bound = 2
	const callers = 8

	fake := &fakeCompleter{delay: 20 * time.Millisecond}
	gw, err := gateway.New(fake, gateway.WithConcurrency(bound))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var g errgroup.Group
	for range callers {
		g.Go(func() error {
			_, err := gw.Complete(context.Background(), "", "x")
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("caller failed: %v", err)
	}

	if got := fake.maxInFlight.Load(); got > bound {
		t.Fatalf("observed %d in-flight calls, bound is %d", got, bound)
	}
	if fake.calls != callers {
		t.Fatalf("expected %d completed calls, got %d", callers, fake.calls)
	}
}

// With bound 1 and 3 callers each taking T, total elapsed must be at least
// 3T: the semaphore fully serializes them.
func TestComplete_SerializesAtBoundOne(t *testing.T) {
	t.Parallel()
	const T = 30 * time.Millisecond

	fake := &fakeCompleter{delay: T}
	gw, err := gateway.New(fake, gateway.WithConcurrency(1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	start := time.Now()
	var g errgroup.Group
	for range 3 {
		g.Go(func() error {
			_, err := gw.Complete(context.Background(), "", "x")
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("caller failed: %v", err)
	}

	if elapsed := time.Since(start); elapsed < 3*T {
		t.Fatalf("expected serialization (>= %v), finished in %v", 3*T, elapsed)
	}
	if fake.calls != 3 {
		t.Fatalf("expected each call to complete exactly once, got %d", fake.calls)
	}
}

func TestCompleteJSON(t *testing.T) {
	t.Parallel()
	type out struct {
		Name string `json:"name"`
	}

	fake := &fakeCompleter{responses: []string{"```json\n{\"name\": \"alpha\"}\n```"}}
	gw, err := gateway.New(fake)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got, err := gateway.CompleteJSON[out](context.Background(), gw, "extract", "alpha thing")
	if err != nil {
		t.Fatalf("CompleteJSON: %v", err)
	}
	if got.Name != "alpha" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestCompleteJSON_ParseError(t *testing.T) {
	t.Parallel()
	fake := &fakeCompleter{responses: []string{"sorry, I can't do JSON today"}}
	gw, err := gateway.New(fake)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = gateway.CompleteJSON[map[string]any](context.Background(), gw, "extract", "x")
	var pe *gateway.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()
	if _, err := gateway.New(nil); err == nil {
		t.Fatal("expected error for nil backend")
	}
	if _, err := gateway.New(&fakeCompleter{}, gateway.WithConcurrency(0)); err == nil {
		t.Fatal("expected error for zero concurrency")
	}
	if _, err := gateway.New(&fakeCompleter{}, gateway.WithRetryConfig(gateway.RetryConfig{MaxRetries: -1})); err == nil {
		t.Fatal("expected error for invalid retry config")
	}
}
