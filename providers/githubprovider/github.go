/*
Copyright 2026 Meetingops, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package githubprovider implements a code-platform provider that
// materializes file changes into branches and pull requests via the GitHub
// REST API, with no local clone.
package githubprovider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v75/github"
	"github.com/meetingops/actioneer/actionitem"
	"github.com/meetingops/actioneer/providers"
	"golang.org/x/oauth2"
)

// DefaultBaseBranch is the branch changes are proposed against when no
// override is configured.
const DefaultBaseBranch = "main"

// Provider talks to one GitHub repository.
type Provider struct {
	client     *github.Client
	owner      string
	repo       string
	baseBranch string
}

// Option configures a Provider.
type Option func(*Provider)

// WithBaseBranch overrides the base branch.
func WithBaseBranch(branch string) Option {
	return func(p *Provider) {
		if branch != "" {
			p.baseBranch = branch
		}
	}
}

// WithBaseURL points the client at a different API endpoint. Used in tests.
func WithBaseURL(url string, httpClient *http.Client) Option {
	return func(p *Provider) {
		c := github.NewClient(httpClient)
		if u, err := c.BaseURL.Parse(url); err == nil {
			c.BaseURL = u
		}
		p.client = c
	}
}

// New creates a GitHub provider for "owner/repo".
func New(ctx context.Context, token, repoFull string, opts ...Option) (*Provider, error) {
	if token == "" {
		return nil, errors.New("github token cannot be empty")
	}
	owner, repo, ok := strings.Cut(repoFull, "/")
	if !ok || owner == "" || repo == "" {
		return nil, fmt.Errorf("repository must be owner/repo, got %q", repoFull)
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	p := &Provider{
		client:     github.NewClient(oauth2.NewClient(ctx, ts)),
		owner:      owner,
		repo:       repo,
		baseBranch: DefaultBaseBranch,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (p *Provider) Name() string         { return "github" }
func (p *Provider) Kind() providers.Kind { return providers.KindCodePlatform }

// Init verifies the repository is reachable. A failure logs a warning only;
// the provider stays registered and individual operations surface their own
// errors.
func (p *Provider) Init(ctx context.Context) error {
	if _, _, err := p.client.Repositories.Get(ctx, p.owner, p.repo); err != nil {
		clog.FromContext(ctx).With("repo", p.owner+"/"+p.repo).
			With("error", err.Error()).
			Warn("Could not reach GitHub repository")
	}
	return nil
}

// CreateItem implements providers.Provider by opening a pull request whose
// body carries the description. It exists so the registry can treat GitHub
// uniformly; handlers with file changes use CreateChange directly.
func (p *Provider) CreateItem(ctx context.Context, params providers.CreateItemParams) (actionitem.CreatedItem, error) {
	created, err := p.CreateChange(ctx, ChangeRequest{
		Title:      params.Title,
		Body:       params.Description,
		BranchName: BranchName(params.Title),
	})
	if err != nil {
		return actionitem.CreatedItem{}, &providers.Error{Provider: p.Name(), Op: "create pull request", Err: err}
	}
	return created, nil
}

// ListFiles returns the paths of all blobs on the base branch.
func (p *Provider) ListFiles(ctx context.Context) ([]string, error) {
	tree, _, err := p.client.Git.GetTree(ctx, p.owner, p.repo, p.baseBranch, true)
	if err != nil {
		return nil, fmt.Errorf("listing repository tree: %w", err)
	}

	var paths []string
	for _, entry := range tree.Entries {
		if entry.GetType() == "blob" {
			paths = append(paths, entry.GetPath())
		}
	}
	return paths, nil
}

// ReadFile fetches one file's decoded content from the base branch.
func (p *Provider) ReadFile(ctx context.Context, path string) (string, error) {
	content, _, _, err := p.client.Repositories.GetContents(ctx, p.owner, p.repo, path,
		&github.RepositoryContentGetOptions{Ref: p.baseBranch})
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", path, err)
	}
	if content == nil {
		return "", fmt.Errorf("no content for %s (directory?)", path)
	}
	decoded, err := content.GetContent()
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", path, err)
	}
	return decoded, nil
}
