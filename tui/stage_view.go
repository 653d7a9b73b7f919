// ABOUTME: Move-stage dialog for TUI
// ABOUTME: Picks a target pipeline stage for the selected deal and confirms the move
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/pipeline/models"
	"github.com/harperreed/pipeline/present"
)

var (
	dialogBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("170")).
			Padding(1, 2).
			Width(60).
			Align(lipgloss.Center)

	confirmButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("34")).
				Padding(0, 2).
				MarginRight(2)

	cancelButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("8")).
				Padding(0, 2)
)

func (m Model) renderMoveStageView() string {
	deal, err := m.store.Deal(m.selectedID)
	if err != nil {
		return fmt.Sprintf("Error loading deal: %v", err)
	}

	title := titleStyle.Render("MOVE DEAL")
	info := fmt.Sprintf("%s\n\nFrom: %s", deal.Title, renderTag(present.StageTag(deal.Stage)))
	target := fmt.Sprintf("To:   ◀ %s ▶", renderTag(present.StageTag(m.targetStage)))

	buttons := lipgloss.JoinHorizontal(
		lipgloss.Left,
		confirmButtonStyle.Render("Move (enter)"),
		cancelButtonStyle.Render("Cancel (esc)"),
	)

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		info,
		target,
		"",
		buttons,
	)

	// Center the box on screen
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		dialogBoxStyle.Render(content),
	)
}

func (m Model) handleMoveStageKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		m.targetStage = stepStage(m.targetStage, -1)
	case "right", "l":
		m.targetStage = stepStage(m.targetStage, 1)
	case "enter":
		deal, err := m.store.MoveDeal(m.selectedID, m.targetStage)
		if err != nil {
			m.err = err
		} else {
			m.message = fmt.Sprintf("Deal %q moved to %s", deal.Title, deal.Stage.Label())
			m.log.Info().Str("deal", deal.ID).Str("stage", string(deal.Stage)).Msg("deal moved")
		}
		m.viewMode = ViewDetail
	case "esc":
		m.viewMode = ViewDetail
	}

	return m, nil
}

// stepStage moves through the stages in pipeline order, wrapping at the ends.
func stepStage(current models.Stage, delta int) models.Stage {
	n := len(models.Stages)
	i := current.Index()
	if i < 0 {
		return models.Stages[0]
	}
	return models.Stages[((i+delta)%n+n)%n]
}
