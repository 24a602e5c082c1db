/*
Copyright 2026 Meetingops, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package actor

import "github.com/meetingops/actioneer/actionitem"

// Router maps an action item's category to its handler.
type Router struct {
	task     Handler
	bug      Handler
	feature  Handler
	followUp Handler
}

// NewRouter builds the handler set from shared dependencies.
func NewRouter(deps *Deps) *Router {
	return &Router{
		task:     NewTaskHandler(deps),
		bug:      NewBugHandler(deps),
		feature:  NewFeatureHandler(deps),
		followUp: NewFollowUpHandler(),
	}
}

// Route returns the handler for a category. Unknown or absent categories
// resolve to the task handler; Route never fails.
func (r *Router) Route(t actionitem.Type) Handler {
	switch t {
	case actionitem.TypeBug:
		return r.bug
	case actionitem.TypeFeature:
		return r.feature
	case actionitem.TypeFollowUp:
		return r.followUp
	default:
		return r.task
	}
}
