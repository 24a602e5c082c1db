/*
Copyright 2026 Meetingops, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package actor_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/meetingops/actioneer/actionitem"
	"github.com/meetingops/actioneer/actor"
	"github.com/meetingops/actioneer/gateway"
	"github.com/meetingops/actioneer/providers"
	"github.com/meetingops/actioneer/providers/githubprovider"
)

// fakeProvider is an in-memory task manager (or code platform) that records
// what it was asked to create.
type fakeProvider struct {
	name    string
	kind    providers.Kind
	users   []providers.User
	err     error
	panicOn string

	mu      sync.Mutex
	created []providers.CreateItemParams
}

func (f *fakeProvider) Name() string                { return f.name }
func (f *fakeProvider) Kind() providers.Kind        { return f.kind }
func (f *fakeProvider) Init(context.Context) error  { return nil }
func (f *fakeProvider) ListUsers() []providers.User { return f.users }
func (f *fakeProvider) MatchUser(name, email string) *providers.User {
	for i, u := range f.users {
		if strings.EqualFold(u.Name, name) {
			return &f.users[i]
		}
	}
	return nil
}

func (f *fakeProvider) CreateItem(_ context.Context, params providers.CreateItemParams) (actionitem.CreatedItem, error) {
	if f.panicOn != "" && strings.Contains(params.Title, f.panicOn) {
		panic("provider exploded")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return actionitem.CreatedItem{}, f.err
	}
	f.created = append(f.created, params)
	return actionitem.CreatedItem{
		ID:       "T-1",
		URL:      "https://tracker.example/T-1",
		Title:    params.Title,
		Provider: f.name,
	}, nil
}

func (f *fakeProvider) createdItems() []providers.CreateItemParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]providers.CreateItemParams(nil), f.created...)
}

func taskManager() *fakeProvider {
	return &fakeProvider{name: "faketracker", kind: providers.KindTaskManager}
}

// scriptedCompleter returns canned responses in order.
type scriptedCompleter struct {
	mu        sync.Mutex
	responses []string
	errs      []error
	calls     int
}

func (s *scriptedCompleter) Complete(context.Context, string, string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	return "", nil
}

func scriptedGateway(t *testing.T, responses ...string) *gateway.Gateway {
	t.Helper()
	gw, err := gateway.New(&scriptedCompleter{responses: responses})
	if err != nil {
		t.Fatalf("building gateway: %v", err)
	}
	return gw
}

// fakeRepo serves an in-memory file tree.
type fakeRepo struct {
	files   map[string]string
	listErr error
}

func (f *fakeRepo) ListFiles(context.Context) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var paths []string
	for p := range f.files {
		paths = append(paths, p)
	}
	return paths, nil
}

func (f *fakeRepo) ReadFile(_ context.Context, path string) (string, error) {
	content, ok := f.files[path]
	if !ok {
		return "", &providers.Error{Provider: "fake", Op: "read", Err: context.Canceled}
	}
	return content, nil
}

// fakeChanges records the change request it received.
type fakeChanges struct {
	mu  sync.Mutex
	req *githubprovider.ChangeRequest
	err error
}

func (f *fakeChanges) CreateChange(_ context.Context, req githubprovider.ChangeRequest) (actionitem.CreatedItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return actionitem.CreatedItem{}, f.err
	}
	f.req = &req
	return actionitem.CreatedItem{
		ID:       "#7",
		URL:      "https://github.example/pr/7",
		Title:    req.Title,
		Provider: "github",
	}, nil
}

// recordingPoster captures every chat post.
type recordingPoster struct {
	mu   sync.Mutex
	msgs []string
}

func (r *recordingPoster) PostMessage(_ context.Context, _, _, text string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, text)
	return "1234.5678", nil
}

func (r *recordingPoster) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.msgs...)
}

func depsWith(ctx context.Context, provs ...providers.Provider) *actor.Deps {
	return &actor.Deps{Registry: providers.NewRegistry(ctx, provs...)}
}
