/*
Copyright 2026 Meetingops, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package linearprovider implements a task-manager provider backed by the
// Linear GraphQL API.
package linearprovider

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/chainguard-dev/clog"
	"github.com/meetingops/actioneer/actionitem"
	"github.com/meetingops/actioneer/providers"
	"github.com/meetingops/actioneer/providers/identity"
	"github.com/shurcooL/graphql"
)

const defaultEndpoint = "https://api.linear.app/graphql"

// Provider creates Linear issues and resolves assignees against the team's
// member list, which is cached once at Init.
type Provider struct {
	client *graphql.Client
	teamID string
	users  []providers.User
}

// Option configures a Provider.
type Option func(*Provider)

// WithEndpoint overrides the Linear GraphQL endpoint. Used in tests.
func WithEndpoint(url string, httpClient *http.Client) Option {
	return func(p *Provider) {
		p.client = graphql.NewClient(url, httpClient)
	}
}

// apiKeyTransport injects the Linear personal API key. Linear expects the
// raw key in the Authorization header, not a Bearer scheme, so the oauth2
// transport cannot be used here.
type apiKeyTransport struct {
	key  string
	base http.RoundTripper
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", t.key)
	return t.base.RoundTrip(clone)
}

// New creates a Linear provider.
func New(apiKey, teamID string, opts ...Option) (*Provider, error) {
	if apiKey == "" {
		return nil, errors.New("linear api key cannot be empty")
	}
	if teamID == "" {
		return nil, errors.New("linear team id cannot be empty")
	}

	httpClient := &http.Client{
		Transport: &apiKeyTransport{key: apiKey, base: http.DefaultTransport},
	}
	p := &Provider{
		client: graphql.NewClient(defaultEndpoint, httpClient),
		teamID: teamID,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (p *Provider) Name() string         { return "linear" }
func (p *Provider) Kind() providers.Kind { return providers.KindTaskManager }

// Init caches the target team's members for assignee resolution. A failed
// fetch logs a warning and leaves the cache empty; items are then created
// unassigned.
func (p *Provider) Init(ctx context.Context) error {
	var q struct {
		Team struct {
			Members struct {
				Nodes []struct {
					Id    graphql.String
					Name  graphql.String
					Email graphql.String
				}
			}
		} `graphql:"team(id: $id)"`
	}

	err := p.client.Query(ctx, &q, map[string]any{
		"id": graphql.String(p.teamID),
	})
	if err != nil {
		clog.FromContext(ctx).With("error", err.Error()).
			Warn("Could not cache Linear team members")
		return nil
	}

	p.users = p.users[:0]
	for _, n := range q.Team.Members.Nodes {
		p.users = append(p.users, providers.User{
			ID:    string(n.Id),
			Name:  string(n.Name),
			Email: string(n.Email),
		})
	}
	clog.FromContext(ctx).With("users", len(p.users)).
		Info("Cached Linear team members")
	return nil
}

// ListUsers implements providers.UserMatcher.
func (p *Provider) ListUsers() []providers.User {
	return p.users
}

// MatchUser implements providers.UserMatcher.
func (p *Provider) MatchUser(name, email string) *providers.User {
	return identity.Match(name, email, p.users)
}

// IssueCreateInput mirrors Linear's IssueCreateInput type. The Go type name
// is significant: the graphql client derives the GraphQL variable type from
// it.
type IssueCreateInput struct {
	TeamID      graphql.String `json:"teamId"`
	Title       graphql.String `json:"title"`
	Description graphql.String `json:"description"`
	AssigneeID  graphql.String `json:"assigneeId,omitempty"`
}

// CreateItem creates a Linear issue. An assignee is only attached when it
// resolves to a cached team member; if the remote still rejects the
// assignment, creation is retried once without it rather than losing the
// item.
func (p *Provider) CreateItem(ctx context.Context, params providers.CreateItemParams) (actionitem.CreatedItem, error) {
	log := clog.FromContext(ctx)

	input := IssueCreateInput{
		TeamID:      graphql.String(p.teamID),
		Title:       graphql.String(params.Title),
		Description: graphql.String(params.Description),
	}
	if params.Assignee != "" {
		// Eligibility gate: the cache holds the team's members, so a
		// match is also proof of team membership.
		if u := p.MatchUser(params.Assignee, params.AssigneeEmail); u != nil {
			input.AssigneeID = graphql.String(u.ID)
		} else {
			log.With("assignee", params.Assignee).
				Info("Assignee not found in team, creating unassigned")
		}
	}

	created, err := p.createIssue(ctx, input)
	if err != nil && input.AssigneeID != "" && isAssignmentRejection(err) {
		log.With("error", err.Error()).
			Warn("Assignment rejected, retrying without assignee")
		input.AssigneeID = ""
		created, err = p.createIssue(ctx, input)
	}
	if err != nil {
		return actionitem.CreatedItem{}, &providers.Error{Provider: p.Name(), Op: "create issue", Err: err}
	}
	return created, nil
}

func (p *Provider) createIssue(ctx context.Context, input IssueCreateInput) (actionitem.CreatedItem, error) {
	var m struct {
		IssueCreate struct {
			Success graphql.Boolean
			Issue   struct {
				Identifier graphql.String
				Url        graphql.String
			}
		} `graphql:"issueCreate(input: $input)"`
	}

	if err := p.client.Mutate(ctx, &m, map[string]any{"input": input}); err != nil {
		return actionitem.CreatedItem{}, err
	}
	if !m.IssueCreate.Success {
		return actionitem.CreatedItem{}, errors.New("issueCreate reported failure")
	}

	return actionitem.CreatedItem{
		ID:       string(m.IssueCreate.Issue.Identifier),
		URL:      string(m.IssueCreate.Issue.Url),
		Title:    string(input.Title),
		Provider: p.Name(),
	}, nil
}

// isAssignmentRejection reports whether a creation error looks like an
// assignee-eligibility rejection rather than a general failure.
func isAssignmentRejection(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "assignee") ||
		strings.Contains(msg, "not a member") ||
		strings.Contains(msg, "cannot be assigned")
}
