package controller

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"torture.dev/pkg/torture/internal/adapter"
)

// RenderReport renders a persisted batch report as a summary table.
func RenderReport(w io.Writer, report adapter.Report) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Suite", "Outcome", "Allowed", "Reason"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
	})

	failed := 0

	for _, entry := range report.Entries {
		allowedCell := ""
		if entry.Allowed {
			allowedCell = "yes"
		}

		if entry.Reason != "" && !entry.Allowed {
			failed++
		}

		table.Append([]string{entry.Suite, entry.Outcome, allowedCell, entry.Reason})
	}

	table.SetFooter([]string{
		fmt.Sprintf("%d suites", len(report.Entries)),
		fmt.Sprintf("%d failed", failed),
		"",
		"",
	})

	table.Render()
}
