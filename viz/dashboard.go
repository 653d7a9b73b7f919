// ABOUTME: Terminal dashboard and pipeline board rendering
// ABOUTME: Provides ASCII views of the dashboard stats and the six stage columns
package viz

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/harperreed/pipeline/present"
)

const rule = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n"

// RenderDashboard draws the stat cards, a bar per stage and the recent
// activity feed. Activity times are relative to now.
func RenderDashboard(dash present.DashboardView, pipeline present.PipelineView, now time.Time) string {
	var out strings.Builder

	out.WriteString(rule)
	out.WriteString("  PIPELINE CRM DASHBOARD\n")
	out.WriteString(rule + "\n")

	out.WriteString("STATS\n")
	for _, card := range dash.Cards {
		fmt.Fprintf(&out, "  %-16s %s\n", card.Title, card.Value)
	}
	out.WriteString("\n")

	out.WriteString("PIPELINE OVERVIEW\n")
	renderStageBars(&out, pipeline.Columns)
	fmt.Fprintf(&out, "  total %s  weighted %s  won %s  conversion %s\n\n",
		pipeline.TotalValue, pipeline.WeightedValue, pipeline.WonValue, pipeline.ConversionRate)

	out.WriteString("RECENT ACTIVITY\n")
	if len(dash.RecentActivity) == 0 {
		out.WriteString("  No recent activity\n")
	}
	for _, a := range dash.RecentActivity {
		fmt.Fprintf(&out, "  • %s (%s)\n", a.Description, humanize.RelTime(a.Timestamp, now, "ago", "from now"))
	}

	return out.String()
}

func renderStageBars(out *strings.Builder, columns []present.StageColumn) {
	maxCount := 0
	for _, col := range columns {
		if col.Count > maxCount {
			maxCount = col.Count
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	for _, col := range columns {
		barLength := (col.Count * 10) / maxCount
		bar := strings.Repeat("█", barLength) + strings.Repeat("░", 10-barLength)
		fmt.Fprintf(out, "  %-12s %s  %2d (%s)\n", col.Tag.Label, bar, col.Count, col.Amount)
	}
}

// RenderBoard lists the pipeline columns in stage order with their deal cards.
func RenderBoard(pipeline present.PipelineView) string {
	var out strings.Builder

	for _, col := range pipeline.Columns {
		fmt.Fprintf(&out, "%s (%d) %s\n", strings.ToUpper(col.Tag.Label), col.Count, col.Amount)
		if len(col.Cards) == 0 {
			out.WriteString("  -\n")
		}
		for _, card := range col.Cards {
			fmt.Fprintf(&out, "  [%s] %s  %s  %s  close %s\n", card.ID, card.Title, card.Amount, card.Probability, card.CloseDate)
		}
		out.WriteString("\n")
	}

	fmt.Fprintf(&out, "Total Pipeline Value: %s\n", pipeline.TotalValue)
	fmt.Fprintf(&out, "Weighted Value:       %s\n", pipeline.WeightedValue)
	fmt.Fprintf(&out, "Conversion Rate:      %s\n", pipeline.ConversionRate)
	fmt.Fprintf(&out, "Average Deal Size:    %s\n", pipeline.AverageDealSize)
	return out.String()
}
