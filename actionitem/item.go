/*
Copyright 2026 Meetingops, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package actionitem

// Type categorizes an action item and selects which handler processes it.
type Type string

const (
	TypeTask     Type = "task"
	TypeBug      Type = "bug"
	TypeFeature  Type = "feature"
	TypeFollowUp Type = "follow_up"
)

// Priority orders action items for dispatch. The zero value is treated as
// PriorityMedium everywhere.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns the sort rank of a priority: high < medium < low.
// Unknown or empty priorities rank as medium.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityLow:
		return 2
	default:
		return 1
	}
}

// Item is a single action item extracted from a meeting or conversation.
// Items are produced upstream and consumed read-only here.
type Item struct {
	Task             string   `json:"task"`
	Assignee         string   `json:"assignee,omitempty"`
	AssigneeFullName string   `json:"assigneeFullName,omitempty"`
	AssigneeEmail    string   `json:"assigneeEmail,omitempty"`
	Type             Type     `json:"type,omitempty"`
	Priority         Priority `json:"priority,omitempty"`
	Context          string   `json:"context,omitempty"`
}

// AssigneeName returns the best available human name for the assignee,
// preferring the full name over the short handle.
func (i Item) AssigneeName() string {
	if i.AssigneeFullName != "" {
		return i.AssigneeFullName
	}
	return i.Assignee
}

// CreatedItem is a receipt for a work item created in an external system.
type CreatedItem struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Title    string `json:"title"`
	Provider string `json:"provider"`
}

// HandlerResult is the outcome of processing one action item.
// It is immutable once returned.
type HandlerResult struct {
	Success        bool
	Item           *CreatedItem
	SecondaryItems []CreatedItem
	StatusText     string
	Err            string
}

// ItemResult pairs an item with its handler outcome.
type ItemResult struct {
	Item   Item
	Result HandlerResult
}

// Result aggregates one orchestration call. Results holds per-item detail in
// priority-sorted launch order; dispatches that failed without producing a
// HandlerResult are counted in Failed but carry no entry.
type Result struct {
	Total     int
	Succeeded int
	Failed    int
	Results   []ItemResult
}
