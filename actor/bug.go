/*
Copyright 2026 Meetingops, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package actor

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/chainguard-dev/clog"
	"github.com/meetingops/actioneer/actionitem"
	"github.com/meetingops/actioneer/gateway"
	"github.com/meetingops/actioneer/providers"
	"github.com/meetingops/actioneer/providers/githubprovider"
)

const pickFilesInstructions = `You are a senior developer. Given a bug description and a list of files in a repository, pick 3-5 files most likely to contain the bug or need changes.

Return JSON: {"files": ["path/to/file1.go", "path/to/file2.go"]}

Only pick files that exist in the provided list. Prefer source files over configs/tests.`

const generateFixInstructions = `You are a senior developer. Given a bug description and relevant source files, generate a fix.

Return JSON:
{
  "files": [{"path": "exact/file/path.go", "content": "complete file content with fix applied"}],
  "commitMessage": "fix: short description of the fix",
  "prBody": "## Bug\n(description)\n\n## Fix\n(what was changed and why)"
}

IMPORTANT:
- Return the COMPLETE file content for each changed file, not just the diff.
- Only include files that actually need changes.
- Keep changes minimal — fix the bug, don't refactor.`

type fileSelection struct {
	Files []string `json:"files"`
}

type generatedFix struct {
	Files         []githubprovider.FileChange `json:"files"`
	CommitMessage string                      `json:"commitMessage"`
	PRBody        string                      `json:"prBody"`
}

// BugHandler files a bug ticket and then best-effort attempts an automated
// fix PR. The ticket is Phase A and alone determines the item's success; the
// fix attempt is Phase B, whose failure only downgrades the status text.
type BugHandler struct {
	deps *Deps
}

// NewBugHandler creates the bug handler.
func NewBugHandler(deps *Deps) *BugHandler {
	return &BugHandler{deps: deps}
}

// Execute implements Handler.
func (h *BugHandler) Execute(ctx context.Context, item actionitem.Item, _ ExecutionContext) (actionitem.HandlerResult, error) {
	log := clog.FromContext(ctx)

	// Phase A: file the ticket. A missing provider degrades, a remote
	// rejection fails the item, and neither stops the fix attempt.
	var issue *actionitem.CreatedItem
	var issueErr error
	if tm := h.deps.Registry.FirstTaskManager(); tm != nil {
		created, err := tm.CreateItem(ctx, providers.CreateItemParams{
			Title:         "[Bug] " + item.Task,
			Description:   orTask(item.Context, item.Task),
			Assignee:      item.AssigneeName(),
			AssigneeEmail: item.AssigneeEmail,
			Type:          providers.ItemTypeBug,
		})
		if err != nil {
			issueErr = err
			log.With("error", err.Error()).Warn("Bug ticket creation failed")
		} else {
			issue = &created
		}
	} else {
		log.Info("No task manager configured, attempting auto-fix only")
	}

	// Phase B: best-effort fix PR. Any failure is caught here so it can
	// never mask Phase A's outcome.
	pr, fixErr := h.attemptFix(ctx, item)
	if fixErr != nil {
		log.With("error", fixErr.Error()).Warn("Auto-fix PR skipped")
	}

	res := actionitem.HandlerResult{
		Success: issue != nil,
		Item:    issue,
	}
	if pr != nil {
		res.SecondaryItems = []actionitem.CreatedItem{*pr}
	}

	switch {
	case issue != nil && pr != nil:
		res.StatusText = "Bug tracked + fix PR created: " + issue.Title
	case issue != nil:
		res.StatusText = "Bug tracked: " + issue.Title
	case issueErr != nil:
		res.StatusText = "Bug ticket creation failed: " + item.Task
		res.Err = issueErr.Error()
	default:
		res.StatusText = "Bug reported (no task manager): " + item.Task
		res.Err = "no_provider"
	}
	return res, nil
}

// attemptFix runs the automated-fix pipeline: list files, select candidates,
// fetch contents, generate replacements, open the change.
func (h *BugHandler) attemptFix(ctx context.Context, item actionitem.Item) (*actionitem.CreatedItem, error) {
	if h.deps.Repo == nil || h.deps.Changes == nil {
		return nil, errors.New("code host not configured")
	}
	if h.deps.Gateway == nil {
		return nil, errors.New("completion service not configured")
	}

	fileList, err := h.deps.Repo.ListFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing repository files: %w", err)
	}
	if len(fileList) == 0 {
		return nil, errors.New("repository listing is empty")
	}

	selection, err := gateway.CompleteJSON[fileSelection](ctx, h.deps.Gateway,
		pickFilesInstructions,
		"Bug: "+item.Task+"\n\nRepository files:\n"+strings.Join(fileList, "\n"))
	if err != nil {
		return nil, fmt.Errorf("selecting relevant files: %w", err)
	}

	// Constrain the selection to files that actually exist in the listing.
	var paths []string
	for _, p := range selection.Files {
		if slices.Contains(fileList, p) {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		return nil, errors.New("no relevant files identified")
	}

	contents := h.fetchFiles(ctx, paths)
	if len(contents) == 0 {
		return nil, errors.New("could not fetch any relevant files")
	}

	var sb strings.Builder
	sb.WriteString("Bug: " + item.Task + "\n\nSource files:")
	for _, fc := range contents {
		sb.WriteString("\n\n### " + fc.Path + "\n```\n" + fc.Content + "\n```")
	}

	fix, err := gateway.CompleteJSON[generatedFix](ctx, h.deps.Gateway, generateFixInstructions, sb.String())
	if err != nil {
		return nil, fmt.Errorf("generating fix: %w", err)
	}
	if len(fix.Files) == 0 {
		return nil, errors.New("no fix generated")
	}

	title := fix.CommitMessage
	if title == "" {
		title = "fix: " + item.Task
	}
	body := fix.PRBody
	if body == "" {
		body = "Auto-generated fix for: " + item.Task
	}

	created, err := h.deps.Changes.CreateChange(ctx, githubprovider.ChangeRequest{
		Title:      title,
		Body:       body,
		BranchName: githubprovider.BranchName(item.Task),
		Files:      fix.Files,
	})
	if err != nil {
		return nil, fmt.Errorf("creating fix PR: %w", err)
	}
	return &created, nil
}

// fetchFiles reads each selected path, skipping files that fail to fetch.
func (h *BugHandler) fetchFiles(ctx context.Context, paths []string) []githubprovider.FileChange {
	log := clog.FromContext(ctx)

	var out []githubprovider.FileChange
	for _, path := range paths {
		content, err := h.deps.Repo.ReadFile(ctx, path)
		if err != nil {
			log.With("path", path).With("error", err.Error()).
				Warn("Could not fetch file, skipping")
			continue
		}
		out = append(out, githubprovider.FileChange{Path: path, Content: content})
	}
	return out
}
