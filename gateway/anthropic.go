/*
Copyright 2026 Meetingops, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultAnthropicModel is used when no model override is configured.
const DefaultAnthropicModel = "claude-sonnet-4-5"

const anthropicMaxTokens = 4096

// AnthropicBackend implements Completer over the Anthropic Messages API.
type AnthropicBackend struct {
	client anthropic.Client
	model  string
}

// NewAnthropicBackend creates an Anthropic-backed Completer. An empty model
// selects DefaultAnthropicModel.
func NewAnthropicBackend(apiKey, model string) (*AnthropicBackend, error) {
	if apiKey == "" {
		return nil, errors.New("anthropic api key cannot be empty")
	}
	if model == "" {
		model = DefaultAnthropicModel
	}
	return &AnthropicBackend{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}, nil
}

// Complete implements Completer.
func (b *AnthropicBackend) Complete(ctx context.Context, instructions, input string) (string, error) {
	msg, err := b.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(b.model),
		MaxTokens: anthropicMaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: instructions},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(input)),
		},
	})
	if err != nil {
		return "", normalizeAnthropicError(err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}

// normalizeAnthropicError converts an Anthropic SDK error into a *RemoteError.
func normalizeAnthropicError(err error) error {
	var apiErr *anthropic.Error
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("anthropic call failed: %w", err)
	}
	return &RemoteError{
		StatusCode: apiErr.StatusCode,
		RetryAfter: retryAfterFromResponse(apiErr.Response),
		Message:    apiErr.Error(),
		wrapped:    err,
	}
}
