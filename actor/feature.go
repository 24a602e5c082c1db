/*
Copyright 2026 Meetingops, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package actor

import (
	"context"

	"github.com/chainguard-dev/clog"
	"github.com/meetingops/actioneer/actionitem"
	"github.com/meetingops/actioneer/providers"
)

const prdInstructions = `You are a product manager. Given a feature request from a meeting, write a concise PRD (Product Requirements Document).

Format:
## Problem
(What problem does this solve?)

## Proposed Solution
(High-level approach)

## Requirements
- (Bullet list of functional requirements)

## Success Criteria
- (How do we know it's done?)

Keep it concise — max 300 words.`

// FeatureHandler expands a feature request into a PRD via the completion
// gateway and files it as a "prd" issue.
type FeatureHandler struct {
	deps *Deps
}

// NewFeatureHandler creates the feature handler.
func NewFeatureHandler(deps *Deps) *FeatureHandler {
	return &FeatureHandler{deps: deps}
}

// Execute implements Handler.
func (h *FeatureHandler) Execute(ctx context.Context, item actionitem.Item, _ ExecutionContext) (actionitem.HandlerResult, error) {
	tm := h.deps.Registry.FirstTaskManager()
	if tm == nil {
		return actionitem.HandlerResult{
			StatusText: "No task-manager provider configured",
			Err:        "no_provider",
		}, nil
	}

	prd := h.generatePRD(ctx, item)

	created, err := tm.CreateItem(ctx, providers.CreateItemParams{
		Title:         "[Feature] " + item.Task,
		Description:   prd,
		Assignee:      item.AssigneeName(),
		AssigneeEmail: item.AssigneeEmail,
		Type:          providers.ItemTypePRD,
	})
	if err != nil {
		return actionitem.HandlerResult{
			StatusText: "Feature PRD creation failed: " + item.Task,
			Err:        err.Error(),
		}, nil
	}

	return actionitem.HandlerResult{
		Success:    true,
		Item:       &created,
		StatusText: "Feature PRD created: " + created.Title,
	}, nil
}

// generatePRD asks the gateway for a requirements document. When the gateway
// is unavailable or fails, the raw request text stands in so the issue is
// still filed.
func (h *FeatureHandler) generatePRD(ctx context.Context, item actionitem.Item) string {
	if h.deps.Gateway == nil {
		return orTask(item.Context, item.Task)
	}

	input := "Feature request: " + item.Task
	if item.Context != "" {
		input += "\n\nContext from meeting: " + item.Context
	}

	prd, err := h.deps.Gateway.Complete(ctx, prdInstructions, input)
	if err != nil || prd == "" {
		clog.FromContext(ctx).With("error", errText(err)).
			Warn("PRD generation failed, using raw request")
		return orTask(item.Context, item.Task)
	}
	return prd
}

func errText(err error) string {
	if err == nil {
		return "empty response"
	}
	return err.Error()
}
