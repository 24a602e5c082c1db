/*
Copyright 2026 Meetingops, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package chat is the boundary to the chat platform: posting messages and
// formatting action-item announcements. The core treats the platform as an
// opaque formatting sink.
package chat

import (
	"context"

	"github.com/chainguard-dev/clog"
)

// Poster posts a message to a channel, optionally threaded. It returns the
// platform timestamp of the posted message.
type Poster interface {
	PostMessage(ctx context.Context, channel, threadTS, text string) (string, error)
}

// NopPoster logs messages instead of delivering them. Used for dry runs and
// when no chat platform is configured.
type NopPoster struct{}

// PostMessage implements Poster.
func (NopPoster) PostMessage(ctx context.Context, channel, threadTS, text string) (string, error) {
	clog.FromContext(ctx).With("channel", channel).
		With("thread_ts", threadTS).
		Debug("Chat not configured, dropping message: " + text)
	return "", nil
}
