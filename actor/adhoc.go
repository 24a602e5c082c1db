/*
Copyright 2026 Meetingops, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package actor

import (
	"context"
	"fmt"

	"github.com/chainguard-dev/clog"
	"github.com/meetingops/actioneer/actionitem"
	"github.com/meetingops/actioneer/chat"
	"github.com/meetingops/actioneer/gateway"
	"github.com/meetingops/actioneer/providers"
)

const extractInstructions = `Extract a work item from the user text. Return JSON:
{"title": "short actionable title (start with verb)", "description": "detailed description", "assigneeName": "person name or null", "type": "issue"}
Type must be one of: "issue", "pr", "prd", "bug", "task".`

type extractedAction struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	AssigneeName string `json:"assigneeName"`
	Type         string `json:"type"`
}

// AdhocResult is the outcome of a free-text action execution.
type AdhocResult struct {
	Item     actionitem.CreatedItem
	Assignee string
}

// ExecuteAdhoc turns free text into a work item: the gateway extracts the
// fields, the first task-manager provider creates the item, and progress is
// announced around the call. Returns ErrNotConfigured when no task manager
// is registered.
func ExecuteAdhoc(ctx context.Context, deps *Deps, text string, ectx ExecutionContext) (*AdhocResult, error) {
	tm := deps.Registry.FirstTaskManager()
	if tm == nil {
		clog.FromContext(ctx).Info("No task-manager providers configured, skipping")
		return nil, providers.ErrNotConfigured
	}
	if deps.Gateway == nil {
		return nil, fmt.Errorf("extracting action fields: %w", providers.ErrNotConfigured)
	}

	extracted, err := gateway.CompleteJSON[extractedAction](ctx, deps.Gateway, extractInstructions, text)
	if err != nil {
		return nil, fmt.Errorf("extracting action fields: %w", err)
	}
	if extracted.Title == "" {
		extracted.Title = "Untitled"
	}
	if extracted.Type == "" {
		extracted.Type = string(providers.ItemTypeIssue)
	}

	assigneeLabel := extracted.AssigneeName
	if u := matchUser(tm, extracted.AssigneeName, ""); u != nil {
		assigneeLabel = u.Name
	}
	if assigneeLabel == "" {
		assigneeLabel = "unassigned"
	}

	// Pre-announce, execute, notify.
	ectx.post(ctx, fmt.Sprintf("🔔 Creating %s in *%s*: *%s* → %s",
		extracted.Type, tm.Name(), extracted.Title, assigneeLabel))

	item, err := tm.CreateItem(ctx, providers.CreateItemParams{
		Title:       extracted.Title,
		Description: extracted.Description,
		Assignee:    extracted.AssigneeName,
		Type:        providers.ItemType(extracted.Type),
	})
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	ectx.post(ctx, fmt.Sprintf("✅ Created in %s: %s — %s",
		tm.Name(), chat.Ref(item), assigneeLabel))

	return &AdhocResult{Item: item, Assignee: assigneeLabel}, nil
}
