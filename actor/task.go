/*
Copyright 2026 Meetingops, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package actor

import (
	"context"

	"github.com/meetingops/actioneer/actionitem"
	"github.com/meetingops/actioneer/providers"
)

// TaskHandler files the item verbatim as a ticket. No AI call.
type TaskHandler struct {
	deps *Deps
}

// NewTaskHandler creates the task handler.
func NewTaskHandler(deps *Deps) *TaskHandler {
	return &TaskHandler{deps: deps}
}

// Execute implements Handler.
func (h *TaskHandler) Execute(ctx context.Context, item actionitem.Item, _ ExecutionContext) (actionitem.HandlerResult, error) {
	tm := h.deps.Registry.FirstTaskManager()
	if tm == nil {
		return actionitem.HandlerResult{
			StatusText: "No task-manager provider configured",
			Err:        "no_provider",
		}, nil
	}

	created, err := tm.CreateItem(ctx, providers.CreateItemParams{
		Title:         item.Task,
		Description:   orTask(item.Context, item.Task),
		Assignee:      item.AssigneeName(),
		AssigneeEmail: item.AssigneeEmail,
		Type:          providers.ItemTypeTask,
	})
	if err != nil {
		return actionitem.HandlerResult{
			StatusText: "Task creation failed: " + item.Task,
			Err:        err.Error(),
		}, nil
	}

	return actionitem.HandlerResult{
		Success:    true,
		Item:       &created,
		StatusText: "Task created: " + created.Title,
	}, nil
}
