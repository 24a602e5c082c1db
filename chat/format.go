/*
Copyright 2026 Meetingops, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package chat

import (
	"fmt"
	"strings"

	"github.com/meetingops/actioneer/actionitem"
)

// Ref formats a created item as a linked reference: <url|BIL-123>.
func Ref(item actionitem.CreatedItem) string {
	return fmt.Sprintf("<%s|%s>", item.URL, item.ID)
}

// Assignee formats an assignee name in bold, or empty when unset.
func Assignee(name string) string {
	if name == "" {
		return ""
	}
	return "*" + name + "*"
}

var typeSections = map[actionitem.Type]string{
	actionitem.TypeBug:      "Bugs to fix",
	actionitem.TypeFeature:  "Feature requests",
	actionitem.TypeTask:     "Tasks",
	actionitem.TypeFollowUp: "Follow-ups",
}

var typeOrder = []actionitem.Type{
	actionitem.TypeBug,
	actionitem.TypeFeature,
	actionitem.TypeTask,
	actionitem.TypeFollowUp,
}

// ActionPlan formats the batch of items grouped by category. It is posted
// before any handler executes.
func ActionPlan(items []actionitem.Item) string {
	groups := make(map[actionitem.Type][]actionitem.Item)
	for _, item := range items {
		t := item.Type
		if t == "" {
			t = actionitem.TypeTask
		}
		groups[t] = append(groups[t], item)
	}

	var sections []string
	for _, t := range typeOrder {
		entries := groups[t]
		if len(entries) == 0 {
			continue
		}

		var lines []string
		for _, item := range entries {
			line := "• " + item.Task
			if name := item.AssigneeName(); name != "" {
				line += " → " + Assignee(name)
			}
			lines = append(lines, line)
		}
		sections = append(sections, "*"+typeSections[t]+"*\n"+strings.Join(lines, "\n"))
	}

	return strings.Join(sections, "\n\n")
}

// ResultLine formats one item's outcome as a single status line. Failures
// carry a short reason, never a stack trace.
func ResultLine(ir actionitem.ItemResult) string {
	r := ir.Result
	if !r.Success {
		line := "❌ " + r.StatusText
		if r.Err != "" && r.Err != r.StatusText {
			line += " — " + r.Err
		}
		return line
	}

	line := "✅ " + r.StatusText
	if r.Item != nil && r.Item.URL != "" {
		line += " " + Ref(*r.Item)
	}
	for _, sec := range r.SecondaryItems {
		line += " (+" + Ref(sec) + ")"
	}
	return line
}

// RunSummary formats the aggregate of one orchestration run.
func RunSummary(res actionitem.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Done.* %d action item(s): %d succeeded, %d failed.",
		res.Total, res.Succeeded, res.Failed)
	for _, ir := range res.Results {
		b.WriteString("\n" + ResultLine(ir))
	}
	return b.String()
}
