/*
Copyright 2026 Meetingops, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/slack-go/slack"
)

// SlackPoster implements Poster over the Slack Web API.
type SlackPoster struct {
	client *slack.Client
}

// NewSlackPoster creates a Slack poster with the given bot token.
func NewSlackPoster(token string) (*SlackPoster, error) {
	if token == "" {
		return nil, errors.New("slack bot token cannot be empty")
	}
	return &SlackPoster{client: slack.New(token)}, nil
}

// PostMessage implements Poster. An empty threadTS posts to the channel
// top-level.
func (p *SlackPoster) PostMessage(ctx context.Context, channel, threadTS, text string) (string, error) {
	opts := []slack.MsgOption{
		slack.MsgOptionText(text, false),
		slack.MsgOptionDisableLinkUnfurl(),
	}
	if threadTS != "" {
		opts = append(opts, slack.MsgOptionTS(threadTS))
	}

	_, ts, err := p.client.PostMessageContext(ctx, channel, opts...)
	if err != nil {
		return "", fmt.Errorf("posting to %s: %w", channel, err)
	}
	return ts, nil
}
