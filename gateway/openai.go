/*
Copyright 2026 Meetingops, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
)

// DefaultOpenAIModel is used when no model override is configured.
const DefaultOpenAIModel = "gpt-4o"

// OpenAIBackend implements Completer over the OpenAI Responses API.
type OpenAIBackend struct {
	client openai.Client
	model  string
}

// NewOpenAIBackend creates an OpenAI-backed Completer. An empty model selects
// DefaultOpenAIModel.
func NewOpenAIBackend(apiKey, model string) (*OpenAIBackend, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key cannot be empty")
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIBackend{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}, nil
}

// Complete implements Completer.
func (b *OpenAIBackend) Complete(ctx context.Context, instructions, input string) (string, error) {
	resp, err := b.client.Responses.New(ctx, responses.ResponseNewParams{
		Model:        shared.ResponsesModel(b.model),
		Instructions: openai.String(instructions),
		Input:        responses.ResponseNewParamsInputUnion{OfString: openai.String(input)},
	})
	if err != nil {
		return "", normalizeOpenAIError(err)
	}
	return resp.OutputText(), nil
}

// normalizeOpenAIError converts an OpenAI SDK error into a *RemoteError,
// carrying the retry-after hint when the service supplied one.
func normalizeOpenAIError(err error) error {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("openai call failed: %w", err)
	}
	return &RemoteError{
		StatusCode: apiErr.StatusCode,
		RetryAfter: retryAfterFromResponse(apiErr.Response),
		Message:    apiErr.Error(),
		wrapped:    err,
	}
}

// retryAfterFromResponse parses Retry-After style headers. Returns 0 when no
// usable hint is present.
func retryAfterFromResponse(resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}
	if ms := resp.Header.Get("Retry-After-Ms"); ms != "" {
		if n, err := strconv.Atoi(ms); err == nil && n > 0 {
			return time.Duration(n) * time.Millisecond
		}
	}
	if s := resp.Header.Get("Retry-After"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return 0
}
