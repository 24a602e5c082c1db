/*
Copyright 2026 Meetingops, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package githubprovider

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v75/github"
	"github.com/meetingops/actioneer/actionitem"
)

// FileChange is one file's complete replacement content.
type FileChange struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// ChangeRequest describes a set of file edits to materialize as a branch,
// commit and pull request.
type ChangeRequest struct {
	Title      string
	Body       string
	BranchName string
	Files      []FileChange
}

// CreateChange runs the ordered change transaction against the GitHub API:
//
//	1. read the base branch's latest commit SHA
//	2. create the branch ref (tolerating "already exists" on retries)
//	3. create a blob per file
//	4. build a tree on the base tree
//	5. create a commit with the base as sole parent
//	6. force-update the branch ref to the commit
//	7. open a pull request against the base branch
//
// Each step depends on the previous; only step 2 is retry-safe. A failure
// aborts and propagates, leaving any partial state (e.g. an orphaned branch)
// in place for a re-run to pick up.
func (p *Provider) CreateChange(ctx context.Context, req ChangeRequest) (actionitem.CreatedItem, error) {
	log := clog.FromContext(ctx).With("branch", req.BranchName)

	// 1. Base commit SHA.
	baseRef, _, err := p.client.Git.GetRef(ctx, p.owner, p.repo, "refs/heads/"+p.baseBranch)
	if err != nil {
		return actionitem.CreatedItem{}, fmt.Errorf("reading base ref %s: %w", p.baseBranch, err)
	}
	baseSHA := baseRef.GetObject().GetSHA()

	// 2. Branch ref. A 422 means the branch already exists from an earlier
	// attempt; continue on it.
	_, _, err = p.client.Git.CreateRef(ctx, p.owner, p.repo, github.CreateRef{
		Ref: "refs/heads/" + req.BranchName,
		SHA: baseSHA,
	})
	if err != nil {
		if !isAlreadyExists(err) {
			return actionitem.CreatedItem{}, fmt.Errorf("creating branch: %w", err)
		}
		log.Info("Branch already exists, reusing it")
	}

	// 3. Blobs.
	entries := make([]*github.TreeEntry, 0, len(req.Files))
	for _, file := range req.Files {
		blob, _, err := p.client.Git.CreateBlob(ctx, p.owner, p.repo, github.Blob{
			Content:  github.Ptr(file.Content),
			Encoding: github.Ptr("utf-8"),
		})
		if err != nil {
			return actionitem.CreatedItem{}, fmt.Errorf("creating blob for %s: %w", file.Path, err)
		}
		entries = append(entries, &github.TreeEntry{
			Path: github.Ptr(file.Path),
			Mode: github.Ptr("100644"),
			Type: github.Ptr("blob"),
			SHA:  github.Ptr(blob.GetSHA()),
		})
	}

	// 4. Tree.
	tree, _, err := p.client.Git.CreateTree(ctx, p.owner, p.repo, baseSHA, entries)
	if err != nil {
		return actionitem.CreatedItem{}, fmt.Errorf("creating tree: %w", err)
	}

	// 5. Commit.
	commit, _, err := p.client.Git.CreateCommit(ctx, p.owner, p.repo, github.Commit{
		Message: github.Ptr(req.Title),
		Tree:    tree,
		Parents: []*github.Commit{{SHA: github.Ptr(baseSHA)}},
	}, nil)
	if err != nil {
		return actionitem.CreatedItem{}, fmt.Errorf("creating commit: %w", err)
	}

	// 6. Point the branch at the commit.
	_, _, err = p.client.Git.UpdateRef(ctx, p.owner, p.repo, "refs/heads/"+req.BranchName, github.UpdateRef{
		SHA:   commit.GetSHA(),
		Force: github.Ptr(true),
	})
	if err != nil {
		return actionitem.CreatedItem{}, fmt.Errorf("updating branch ref: %w", err)
	}

	// 7. Pull request.
	pr, _, err := p.client.PullRequests.Create(ctx, p.owner, p.repo, &github.NewPullRequest{
		Title: github.Ptr(req.Title),
		Body:  github.Ptr(req.Body),
		Head:  github.Ptr(req.BranchName),
		Base:  github.Ptr(p.baseBranch),
	})
	if err != nil {
		return actionitem.CreatedItem{}, fmt.Errorf("creating pull request: %w", err)
	}

	log.With("pr", pr.GetNumber()).Info("Opened pull request")

	return actionitem.CreatedItem{
		ID:       fmt.Sprintf("#%d", pr.GetNumber()),
		URL:      pr.GetHTMLURL(),
		Title:    req.Title,
		Provider: p.Name(),
	}, nil
}

func isAlreadyExists(err error) bool {
	var ghErr *github.ErrorResponse
	return errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == 422
}

var slugRuns = regexp.MustCompile(`[^a-z0-9]+`)

const slugMaxLen = 40

// Slug derives a branch-safe fragment from a task description: lowercased,
// non-alphanumeric runs collapsed to single hyphens, trailing hyphen trimmed,
// capped length.
func Slug(task string) string {
	if len(task) > slugMaxLen {
		task = task[:slugMaxLen]
	}
	s := slugRuns.ReplaceAllString(strings.ToLower(task), "-")
	return strings.Trim(s, "-")
}

// BranchName builds a unique branch name for a generated fix: a time-ordered
// prefix plus the task slug. Uniqueness across retries comes from the
// timestamp, with no coordination service needed.
func BranchName(task string) string {
	return fmt.Sprintf("fix/%d-%s", time.Now().UnixMilli(), Slug(task))
}
