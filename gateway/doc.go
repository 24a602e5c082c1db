/*
Copyright 2026 Meetingops, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package gateway provides a concurrency-bounded, retrying client for a
// language-model completion service.
//
// A Gateway wraps a Completer backend (OpenAI or Anthropic) with a counting
// semaphore that bounds in-flight calls and a retry loop that handles
// rate-limit responses with exponential backoff, honoring any server-provided
// retry-after hint. Queued callers are admitted in FIFO order for fairness;
// completion order is not guaranteed.
//
// Backends normalize SDK failures into *RemoteError so the retry logic
// consumes one error shape regardless of which service is configured.
// CompleteJSON layers structured output on top: it appends a JSON directive,
// strips markdown fences from the response and unmarshals into the caller's
// type, surfacing failures as *ParseError.
package gateway
