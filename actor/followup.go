/*
Copyright 2026 Meetingops, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package actor

import (
	"context"

	"github.com/meetingops/actioneer/actionitem"
)

// FollowUpHandler produces a reminder line. No external item is created and
// the result is always a success.
type FollowUpHandler struct{}

// NewFollowUpHandler creates the follow-up handler.
func NewFollowUpHandler() *FollowUpHandler {
	return &FollowUpHandler{}
}

// Execute implements Handler.
func (h *FollowUpHandler) Execute(_ context.Context, item actionitem.Item, _ ExecutionContext) (actionitem.HandlerResult, error) {
	assignee := item.AssigneeName()
	if assignee == "" {
		assignee = "team"
	}

	return actionitem.HandlerResult{
		Success:    true,
		StatusText: "Reminder for " + assignee + ": " + item.Task,
	}, nil
}
