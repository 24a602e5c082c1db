/*
Copyright 2026 Meetingops, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package actor

import (
	"context"
	"fmt"
	"slices"

	"github.com/chainguard-dev/clog"
	"github.com/google/uuid"
	"github.com/meetingops/actioneer/actionitem"
	"github.com/meetingops/actioneer/chat"
	"golang.org/x/sync/errgroup"
)

// Orchestrator fans a batch of action items out to their handlers,
// isolating per-item failures and aggregating outcomes. It is the outermost
// catch boundary: nothing a handler does escapes an orchestration call.
type Orchestrator struct {
	router  *Router
	persona *chat.Persona
}

// NewOrchestrator creates an orchestrator over the given router. persona may
// be nil; announcements then use plain fallback text.
func NewOrchestrator(router *Router, persona *chat.Persona) *Orchestrator {
	return &Orchestrator{router: router, persona: persona}
}

type dispatchOutcome struct {
	res actionitem.HandlerResult
	err error
}

// Orchestrate processes the batch. Items are stable-sorted by priority
// (high, medium, low; missing treated as medium), dispatched concurrently,
// and aggregated with the detail list in post-sort launch order. One item's
// failure never affects another.
func (o *Orchestrator) Orchestrate(ctx context.Context, items []actionitem.Item, ectx ExecutionContext) actionitem.Result {
	if len(items) == 0 {
		return actionitem.Result{}
	}

	log := clog.FromContext(ctx).With("run_id", uuid.NewString())
	ctx = clog.WithLogger(ctx, log)

	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b actionitem.Item) int {
		return a.Priority.Rank() - b.Priority.Rank()
	})

	// Announce the plan before any handler runs. Reporting lives here so
	// handlers stay pure result producers.
	intro := o.persona.Line(ctx,
		fmt.Sprintf("%d action items from a meeting. Announce you're taking care of them. Do NOT list the items.", len(items)),
		fmt.Sprintf("On it — working through %d action item(s).", len(items)))
	ectx.post(ctx, intro+"\n\n"+chat.ActionPlan(sorted))

	outcomes := make([]dispatchOutcome, len(sorted))
	var g errgroup.Group
	for i, item := range sorted {
		handler := o.router.Route(item.Type)
		log.With("task", item.Task).With("type", string(item.Type)).
			Info("Dispatching action item")

		g.Go(func() error {
			defer func() {
				// A panicking handler becomes a counted failure
				// rather than taking down the batch.
				if r := recover(); r != nil {
					outcomes[i].err = fmt.Errorf("handler panic: %v", r)
				}
			}()
			outcomes[i].res, outcomes[i].err = handler.Execute(ctx, item, ectx)
			return nil
		})
	}
	_ = g.Wait() // dispatch funcs never return errors

	result := actionitem.Result{Total: len(items)}
	for i, out := range outcomes {
		if out.err != nil {
			// Failed without a result: counted, logged, omitted
			// from the detail list.
			result.Failed++
			log.With("task", sorted[i].Task).
				With("error", out.err.Error()).
				Error("Handler failed")
			continue
		}
		result.Results = append(result.Results, actionitem.ItemResult{
			Item:   sorted[i],
			Result: out.res,
		})
		if out.res.Success {
			result.Succeeded++
		} else {
			result.Failed++
		}
	}

	ectx.post(ctx, chat.RunSummary(result))
	return result
}
