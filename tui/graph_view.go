// ABOUTME: Graph view for TUI
// ABOUTME: Shows GraphViz DOT source for the pipeline or one account
package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/pipeline/viz"
)

func (m Model) renderGraphView() string {
	var s strings.Builder

	// Title
	s.WriteString(titleStyle.Render("GRAPH VIEW"))
	s.WriteString("\n\n")

	if m.graphDOT == "" {
		s.WriteString("Generating graph...\n")
	} else {
		s.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Render(m.graphDOT))
	}

	s.WriteString("\n\n")

	// Help
	s.WriteString(m.renderGraphHelp())

	return s.String()
}

func (m Model) renderGraphHelp() string {
	help := []string{
		"Esc: Back",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleGraphKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.entityType == EntityPipeline {
			m.viewMode = ViewList
		} else {
			m.viewMode = ViewDetail
		}
		m.graphDOT = ""
	}

	return m, nil
}

// generateGraph renders the account graph for customerID, or the pipeline
// graph when customerID is empty.
func (m Model) generateGraph(customerID string) (string, error) {
	generator := viz.NewGraphGenerator(m.store.Snapshot(), m.fmt)
	if customerID == "" {
		return generator.GeneratePipelineGraph(context.Background())
	}
	return generator.GenerateAccountGraph(context.Background(), customerID)
}
