// ABOUTME: Dashboard and pipeline board tabs for the TUI
// ABOUTME: Stat cards, deals per stage, recent activity and one column per stage
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/harperreed/pipeline/metrics"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2).
			MarginRight(1)

	cardValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)
)

func (m Model) renderDashboard() string {
	stats := metrics.Dashboard(m.store.Snapshot(), m.recentLimit)
	view, err := m.fmt.Dashboard(stats)
	if err != nil {
		m.log.Warn().Err(err).Msg("dashboard has unformatted values")
	}

	var s strings.Builder

	cards := make([]string, 0, len(view.Cards))
	for _, c := range view.Cards {
		cards = append(cards, cardStyle.Render(c.Title+"\n"+cardValueStyle.Render(c.Value)))
	}
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	s.WriteString("\n\n")

	s.WriteString(sectionStyle.Render("Deals by Stage"))
	s.WriteString("\n")
	for _, sc := range view.DealsByStage {
		fmt.Fprintf(&s, "  %-22s %d\n", renderTag(sc.Tag), sc.Count)
	}

	s.WriteString("\n")
	s.WriteString(sectionStyle.Render("Recent Activity"))
	s.WriteString("\n")
	if len(view.RecentActivity) == 0 {
		s.WriteString("  No recent activity\n")
	}
	now := m.now()
	for _, a := range view.RecentActivity {
		fmt.Fprintf(&s, "  • %s\n    %s (%s)\n", a.Description, humanize.RelTime(a.Timestamp, now, "ago", "from now"), a.Date)
	}

	return s.String()
}

func (m Model) renderPipeline() string {
	view, err := m.fmt.Pipeline(m.store.Deals())
	if err != nil {
		m.log.Warn().Err(err).Msg("pipeline has unformatted values")
	}

	width := (m.width - 2) / len(view.Columns)
	if width < 20 {
		width = 20
	}

	columns := make([]string, 0, len(view.Columns))
	for _, col := range view.Columns {
		var c strings.Builder
		fmt.Fprintf(&c, "%s (%d)\n%s\n", renderTag(col.Tag), col.Count, col.Amount)
		for _, card := range col.Cards {
			fmt.Fprintf(&c, "\n%s\n%s · %s\n", card.Title, card.Amount, card.Probability)
		}
		columns = append(columns, columnStyle.Width(width-2).Render(c.String()))
	}

	var s strings.Builder
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, columns...))
	s.WriteString("\n\n")
	fmt.Fprintf(&s, "Total: %s   Weighted: %s   Won: %s   Conversion: %s   Active: %d\n",
		view.TotalValue, view.WeightedValue, view.WonValue, view.ConversionRate, view.ActiveDeals)
	return s.String()
}
