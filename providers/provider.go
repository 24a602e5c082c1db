/*
Copyright 2026 Meetingops, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package providers

import (
	"context"
	"errors"
	"fmt"

	"github.com/meetingops/actioneer/actionitem"
)

// Kind tags what a provider can do: task managers create issues, code
// platforms create pull requests.
type Kind string

const (
	KindTaskManager  Kind = "task-manager"
	KindCodePlatform Kind = "code-platform"
)

// ItemType classifies the work item being created in the remote system.
type ItemType string

const (
	ItemTypeIssue ItemType = "issue"
	ItemTypePR    ItemType = "pr"
	ItemTypePRD   ItemType = "prd"
	ItemTypeBug   ItemType = "bug"
	ItemTypeTask  ItemType = "task"
)

// CreateItemParams describes a work item to create in an external system.
type CreateItemParams struct {
	Title         string
	Description   string
	Assignee      string
	AssigneeEmail string
	Type          ItemType
}

// User is a cached identity record from an external system. The cache is
// refreshed once at provider initialization and read-only thereafter.
type User struct {
	ID    string
	Name  string
	Email string
}

// Provider is an adapter for an external system that creates work items.
type Provider interface {
	// Name identifies the provider, e.g. "linear" or "github".
	Name() string

	// Kind reports the provider's capability variant.
	Kind() Kind

	// Init prepares the provider (auth check, user cache). It is
	// best-effort: partial failure such as an unreachable user list must
	// log and leave an empty cache rather than return an error.
	Init(ctx context.Context) error

	// CreateItem creates a work item and returns its receipt.
	CreateItem(ctx context.Context, params CreateItemParams) (actionitem.CreatedItem, error)
}

// UserMatcher is an optional provider capability for resolving assignees.
// Detect it with a type assertion; providers lacking it simply skip identity
// resolution.
type UserMatcher interface {
	// MatchUser fuzzy-matches a free-text name (and optional email)
	// against the provider's known users. Returns nil when nothing
	// clears any matching tier.
	MatchUser(name, email string) *User

	// ListUsers returns the cached user list.
	ListUsers() []User
}

// ErrNotConfigured indicates a provider is missing required credentials.
// Callers degrade the dependent feature rather than failing the batch.
var ErrNotConfigured = errors.New("provider not configured")

// Error wraps a remote provider failure.
type Error struct {
	Provider string
	Op       string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
