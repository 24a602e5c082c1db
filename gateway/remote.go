/*
Copyright 2026 Meetingops, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package gateway

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// RemoteError is the normalized shape of a completion-service failure.
// Each backend converts its SDK error type into one of these at the protocol
// boundary, so the retry logic never has to understand SDK-specific shapes.
type RemoteError struct {
	StatusCode int
	RetryAfter time.Duration // 0 when the service gave no hint
	Message    string
	wrapped    error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("completion service error (status %d): %s", e.StatusCode, e.Message)
}

func (e *RemoteError) Unwrap() error {
	return e.wrapped
}

// ParseError indicates the completion service returned text that could not be
// parsed as the requested structured form. It is fatal for the single call,
// never retried.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed structured response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// rateLimitSignatures are textual markers of quota exhaustion used when a
// backend cannot supply a status code.
var rateLimitSignatures = []string{
	"rate limit",
	"rate_limit",
	"too many requests",
	"quota",
	"resource exhausted",
	"resource_exhausted",
	"overloaded",
}

// IsRateLimit reports whether an error is a rate-limit condition worth
// retrying. It recognizes 429, transient server saturation (503, 504, 529)
// and generic quota signatures in the message text.
func IsRateLimit(err error) bool {
	var re *RemoteError
	if errors.As(err, &re) {
		switch re.StatusCode {
		case 429, 503, 504, 529:
			return true
		}
	}
	msg := strings.ToLower(err.Error())
	for _, sig := range rateLimitSignatures {
		if strings.Contains(msg, sig) {
			return true
		}
	}
	return false
}

// retryAfterHint extracts the service-provided retry delay, if any.
func retryAfterHint(err error) time.Duration {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.RetryAfter
	}
	return 0
}
