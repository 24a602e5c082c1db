/*
Copyright 2026 Meetingops, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package actor

import (
	"context"

	"github.com/chainguard-dev/clog"
	"github.com/meetingops/actioneer/actionitem"
	"github.com/meetingops/actioneer/chat"
	"github.com/meetingops/actioneer/gateway"
	"github.com/meetingops/actioneer/providers"
	"github.com/meetingops/actioneer/providers/githubprovider"
)

// ExecutionContext carries the chat-posting capability and the channel/thread
// addressing pair handlers and the orchestrator report into.
type ExecutionContext struct {
	Chat     chat.Poster
	Channel  string
	ThreadTS string
}

// post delivers a message best-effort: chat failures are logged, never
// propagated.
func (e ExecutionContext) post(ctx context.Context, text string) {
	if e.Chat == nil {
		return
	}
	if _, err := e.Chat.PostMessage(ctx, e.Channel, e.ThreadTS, text); err != nil {
		clog.FromContext(ctx).With("error", err.Error()).
			Warn("Chat post failed")
	}
}

// Handler turns one action item into concrete external effects. Expected
// failures (missing provider, remote rejection) come back as a failed
// HandlerResult; the error return is reserved for unexpected conditions and
// is converted by the orchestrator into a counted failure.
type Handler interface {
	Execute(ctx context.Context, item actionitem.Item, ectx ExecutionContext) (actionitem.HandlerResult, error)
}

// RepoReader lists and reads files on the code host's base branch.
type RepoReader interface {
	ListFiles(ctx context.Context) ([]string, error)
	ReadFile(ctx context.Context, path string) (string, error)
}

// ChangeCreator materializes file edits into a branch, commit and review
// request.
type ChangeCreator interface {
	CreateChange(ctx context.Context, req githubprovider.ChangeRequest) (actionitem.CreatedItem, error)
}

// Deps are the collaborators handlers are constructed with. Any field may be
// nil; handlers degrade the dependent behavior instead of failing.
type Deps struct {
	Registry *providers.Registry
	Gateway  *gateway.Gateway
	Repo     RepoReader
	Changes  ChangeCreator
}

// matchUser resolves an assignee through the provider's optional identity
// capability. Returns nil when the provider lacks it or nothing matches.
func matchUser(p providers.Provider, name, email string) *providers.User {
	if name == "" {
		return nil
	}
	if m, ok := p.(providers.UserMatcher); ok {
		return m.MatchUser(name, email)
	}
	return nil
}

func orTask(context, task string) string {
	if context != "" {
		return context
	}
	return task
}
