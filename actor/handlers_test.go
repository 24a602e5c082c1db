/*
Copyright 2026 Meetingops, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package actor_test

import (
	"context"
	"strings"
	"testing"

	"github.com/meetingops/actioneer/actionitem"
	"github.com/meetingops/actioneer/actor"
)

func TestTaskHandler_CreatesVerbatim(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tm := taskManager()
	h := actor.NewTaskHandler(depsWith(ctx, tm))

	res, err := h.Execute(ctx, actionitem.Item{
		Task:             "Update onboarding docs",
		Assignee:         "sam",
		AssigneeFullName: "Sam Ortiz",
		AssigneeEmail:    "sam@x.com",
		Context:          "Mentioned in the platform sync",
	}, actor.ExecutionContext{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if res.Item == nil || res.Item.ID != "T-1" {
		t.Fatalf("expected created item receipt, got %+v", res.Item)
	}

	created := tm.createdItems()
	if len(created) != 1 {
		t.Fatalf("expected 1 created item, got %d", len(created))
	}
	if created[0].Title != "Update onboarding docs" {
		t.Fatalf("title not verbatim: %q", created[0].Title)
	}
	if created[0].Description != "Mentioned in the platform sync" {
		t.Fatalf("expected context as description: %q", created[0].Description)
	}
	if created[0].Assignee != "Sam Ortiz" {
		t.Fatalf("expected full name preferred, got %q", created[0].Assignee)
	}
}

func TestTaskHandler_NoProvider(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := actor.NewTaskHandler(depsWith(ctx))

	res, err := h.Execute(ctx, actionitem.Item{Task: "anything"}, actor.ExecutionContext{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Success {
		t.Fatal("expected soft failure without a provider")
	}
	if res.Err != "no_provider" {
		t.Fatalf("expected no_provider, got %q", res.Err)
	}
}

func TestFeatureHandler_FilesPRD(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tm := taskManager()
	deps := depsWith(ctx, tm)
	deps.Gateway = scriptedGateway(t, "## Problem\nUsers cannot export data.\n\n## Proposed Solution\nAdd an export endpoint.")
	h := actor.NewFeatureHandler(deps)

	res, err := h.Execute(ctx, actionitem.Item{Task: "Add CSV export"}, actor.ExecutionContext{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}

	created := tm.createdItems()
	if len(created) != 1 {
		t.Fatalf("expected 1 created item, got %d", len(created))
	}
	if created[0].Title != "[Feature] Add CSV export" {
		t.Fatalf("unexpected title %q", created[0].Title)
	}
	if !strings.Contains(created[0].Description, "## Problem") {
		t.Fatalf("expected generated PRD as description, got %q", created[0].Description)
	}
	if created[0].Type != "prd" {
		t.Fatalf("expected prd sub-type, got %q", created[0].Type)
	}
}

func TestFeatureHandler_GatewayUnavailableStillFiles(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tm := taskManager()
	h := actor.NewFeatureHandler(depsWith(ctx, tm)) // no gateway

	res, err := h.Execute(ctx, actionitem.Item{Task: "Add CSV export", Context: "asked by two customers"}, actor.ExecutionContext{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	created := tm.createdItems()
	if created[0].Description != "asked by two customers" {
		t.Fatalf("expected raw context fallback, got %q", created[0].Description)
	}
}

func TestFeatureHandler_NoProvider(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := actor.NewFeatureHandler(depsWith(ctx))

	res, err := h.Execute(ctx, actionitem.Item{Task: "x"}, actor.ExecutionContext{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Success || res.Err != "no_provider" {
		t.Fatalf("expected no_provider soft failure, got %+v", res)
	}
}

func TestFollowUpHandler(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := actor.NewFollowUpHandler()

	res, err := h.Execute(ctx, actionitem.Item{
		Task:             "Circle back on the hiring plan",
		AssigneeFullName: "Jordan Blake",
	}, actor.ExecutionContext{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !res.Success {
		t.Fatal("follow-ups always succeed")
	}
	if res.StatusText != "Reminder for Jordan Blake: Circle back on the hiring plan" {
		t.Fatalf("unexpected status %q", res.StatusText)
	}
	if res.Item != nil {
		t.Fatal("follow-ups must not create external items")
	}
}

func TestFollowUpHandler_DefaultsToTeam(t *testing.T) {
	t.Parallel()
	h := actor.NewFollowUpHandler()

	res, err := h.Execute(context.Background(), actionitem.Item{Task: "Ship it"}, actor.ExecutionContext{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.StatusText != "Reminder for team: Ship it" {
		t.Fatalf("unexpected status %q", res.StatusText)
	}
}
