/*
Copyright 2026 Meetingops, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"
	"io"

	"github.com/meetingops/actioneer/actionitem"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// renderResult prints the per-item outcomes and the aggregate as a markdown
// table.
func renderResult(w io.Writer, result actionitem.Result) {
	table := newOutcomeTable([]string{"Task", "Type", "Priority", "Outcome", "Ref"}, w)

	for _, ir := range result.Results {
		outcome := "failed"
		if ir.Result.Success {
			outcome = "ok"
		}
		ref := ""
		if ir.Result.Item != nil {
			ref = ir.Result.Item.URL
		}
		itemType := string(ir.Item.Type)
		if itemType == "" {
			itemType = string(actionitem.TypeTask)
		}
		_ = table.Append([]string{ir.Item.Task, itemType, string(ir.Item.Priority), outcome, ref})
	}
	_ = table.Render()

	fmt.Fprintf(w, "\n%d total, %d succeeded, %d failed\n",
		result.Total, result.Succeeded, result.Failed)
}

// newOutcomeTable creates a table writer with consistent formatting.
func newOutcomeTable(headers []string, w io.Writer) *tablewriter.Table {
	cfg := tablewriter.Config{
		Header: tw.CellConfig{
			Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			Formatting: tw.CellFormatting{AutoFormat: tw.Off},
		},
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
		MaxWidth: 120,
		Behavior: tw.Behavior{TrimSpace: tw.Off},
	}
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(cfg),
		tablewriter.WithHeader(headers),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleMarkdown),
			Borders: tw.Border{
				Left:   tw.On,
				Top:    tw.Off,
				Right:  tw.On,
				Bottom: tw.Off,
			},
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)
}
