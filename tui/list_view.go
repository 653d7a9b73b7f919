// ABOUTME: List tab rendering and key handling for the TUI
// ABOUTME: Customers, contacts and deals tables with search and status filters
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/pipeline/filter"
	"github.com/harperreed/pipeline/metrics"
	"github.com/harperreed/pipeline/models"
)

func (m Model) renderListView() string {
	var s strings.Builder

	// Title
	s.WriteString(titleStyle.Render("PIPELINE CRM"))
	s.WriteString("\n\n")

	// Tabs
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	switch m.entityType {
	case EntityDashboard:
		s.WriteString(m.renderDashboard())
	case EntityPipeline:
		s.WriteString(m.renderPipeline())
	default:
		s.WriteString(m.renderFilterBar())
		s.WriteString("\n\n")
		s.WriteString(m.renderTable())
	}
	s.WriteString("\n")

	if status := m.renderStatus(); status != "" {
		s.WriteString("\n" + status + "\n")
	}

	// Help
	s.WriteString(m.renderListHelp())

	return s.String()
}

func (m Model) renderTabs() string {
	var rendered []string

	for i, tab := range tabNames {
		if EntityType(i) == m.entityType {
			rendered = append(rendered, tabActiveStyle.Render(tab))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(tab))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderFilterBar() string {
	crit := m.criteria[m.entityType]

	var parts []string
	if m.searching {
		parts = append(parts, m.search.View())
	} else if crit.SearchTerm != "" {
		parts = append(parts, fmt.Sprintf("Search: %q", crit.SearchTerm))
	}

	statusName := "Status"
	if m.entityType == EntityDeals {
		statusName = "Stage"
	}
	parts = append(parts, fmt.Sprintf("%s: %s", statusName, orAll(crit.Status)))
	if m.entityType == EntityCustomers {
		parts = append(parts, fmt.Sprintf("Industry: %s", orAll(crit.Category)))
	}
	return strings.Join(parts, "   ")
}

func orAll(v string) string {
	if v == "" {
		return filter.All
	}
	return v
}

func (m Model) renderTable() string {
	var columns []table.Column
	var rows []table.Row
	var summary, empty string

	switch m.entityType {
	case EntityCustomers:
		all := m.store.Customers()
		view := m.fmt.CustomerList(m.customers(), len(all), m.criteria[EntityCustomers].Active())
		columns = []table.Column{
			{Title: "Name", Width: 24},
			{Title: "Email", Width: 28},
			{Title: "Company", Width: 22},
			{Title: "Industry", Width: 14},
			{Title: "Status", Width: 10},
			{Title: "Created", Width: 12},
		}
		for _, r := range view.Rows {
			rows = append(rows, table.Row{r.Name, r.Email, r.Company, r.Industry, r.Status.Label, r.Created})
		}
		summary, empty = view.Summary, view.EmptyMessage

	case EntityContacts:
		all := m.store.Contacts()
		view := m.fmt.ContactList(m.contacts(), len(all), m.criteria[EntityContacts].Active())
		columns = []table.Column{
			{Title: "Name", Width: 22},
			{Title: "Email", Width: 30},
			{Title: "Phone", Width: 18},
			{Title: "Position", Width: 22},
			{Title: "Status", Width: 10},
		}
		for _, r := range view.Rows {
			rows = append(rows, table.Row{r.Name, r.Email, r.Phone, r.Position, r.Status.Label})
		}
		summary, empty = view.Summary, view.EmptyMessage

	case EntityDeals:
		all := m.store.Deals()
		view, err := m.fmt.DealList(m.deals(), len(all), m.criteria[EntityDeals].Active())
		if err != nil {
			m.log.Warn().Err(err).Msg("some deals could not be formatted")
		}
		columns = []table.Column{
			{Title: "Title", Width: 30},
			{Title: "Amount", Width: 14},
			{Title: "Stage", Width: 12},
			{Title: "Prob.", Width: 6},
			{Title: "Close", Width: 12},
		}
		for _, r := range view.Rows {
			rows = append(rows, table.Row{r.Title, r.Amount, r.Stage.Label, r.Probability, r.ExpectedClose})
		}
		totals, err := m.fmt.Pipeline(all)
		if err != nil {
			m.log.Warn().Err(err).Msg("some pipeline values could not be formatted")
		}
		summary = fmt.Sprintf("%s\nTotal: %s   Weighted: %s   Active: %d",
			view.Summary, totals.TotalValue, totals.WeightedValue, totals.ActiveDeals)
		empty = view.EmptyMessage
	}

	if len(rows) == 0 {
		return empty
	}

	height := m.height - 12
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	// Set selected row
	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}

	return t.View() + "\n" + summary
}

func (m Model) renderListHelp() string {
	var help []string
	switch {
	case m.searching:
		help = []string{"Enter: Done", "Esc: Clear search"}
	case m.entityType == EntityDashboard:
		help = []string{"Tab: Switch tabs", "q: Quit"}
	case m.entityType == EntityPipeline:
		help = []string{"Tab: Switch tabs", "g: Graph", "q: Quit"}
	default:
		help = []string{"↑/↓: Navigate", "Tab: Switch tabs", "Enter: View details", "/: Search", "s: Status"}
		if m.entityType == EntityCustomers {
			help = append(help, "i: Industry")
		}
		help = append(help, "c: Clear filters", "n: New", "q: Quit")
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKeys(msg)
	}

	m.message = ""
	m.err = nil

	switch msg.String() {
	case "tab", "right", "l":
		m.entityType = (m.entityType + 1) % entityCount
		m.selectedRow = 0
	case "shift+tab", "left", "h":
		m.entityType = (m.entityType + entityCount - 1) % entityCount
		m.selectedRow = 0
	}

	switch m.entityType {
	case EntityDashboard:
		return m, nil
	case EntityPipeline:
		if msg.String() == "g" {
			m.graphDOT, m.err = m.generateGraph("")
			if m.err == nil {
				m.viewMode = ViewGraph
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "down", "j":
		if m.selectedRow < m.rowCount()-1 {
			m.selectedRow++
		}
	case "enter":
		if id := m.getSelectedID(); id != "" {
			m.viewMode = ViewDetail
			m.selectedID = id
		}
	case "/":
		m.searching = true
		m.search.SetValue(m.criteria[m.entityType].SearchTerm)
		m.search.Focus()
		return m, textinput.Blink
	case "s":
		crit := &m.criteria[m.entityType]
		crit.Status = cycle(m.statusOptions(), crit.Status)
		m.selectedRow = 0
	case "i":
		if m.entityType == EntityCustomers {
			crit := &m.criteria[m.entityType]
			crit.Category = cycle(m.industryOptions(), crit.Category)
			m.selectedRow = 0
		}
	case "c":
		m.criteria[m.entityType] = m.criteria[m.entityType].Clear()
		m.search.SetValue("")
		m.selectedRow = 0
	case "n":
		// Switch to edit view (new)
		m.viewMode = ViewEdit
		m.selectedID = ""
		m.initFormInputs()
	}

	return m, nil
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.criteria[m.entityType].SearchTerm = ""
		m.selectedRow = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.criteria[m.entityType].SearchTerm = m.search.Value()
	m.selectedRow = 0
	return m, cmd
}

func (m Model) statusOptions() []string {
	var statuses []string
	switch m.entityType {
	case EntityCustomers:
		statuses = filter.CustomerFields.Statuses
	case EntityContacts:
		statuses = filter.ContactFields.Statuses
	case EntityDeals:
		statuses = filter.DealFields.Statuses
	}
	return append([]string{filter.All}, statuses...)
}

// industryOptions offers only industries present in the data.
func (m Model) industryOptions() []string {
	options := []string{filter.All}
	for _, ind := range metrics.DistinctIndustries(m.store.Customers()) {
		options = append(options, string(ind))
	}
	return options
}

// cycle returns the option after current, wrapping to the first.
func cycle(options []string, current string) string {
	for i, o := range options {
		if o == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

// Criteria only ever hold values offered by cycle, so filtering cannot fail.
func (m Model) customers() []models.Customer {
	out, _ := filter.Customers(m.store.Customers(), m.criteria[EntityCustomers])
	return out
}

func (m Model) contacts() []models.Contact {
	out, _ := filter.Contacts(m.store.Contacts(), m.criteria[EntityContacts])
	return out
}

func (m Model) deals() []models.Deal {
	out, _ := filter.Deals(m.store.Deals(), m.criteria[EntityDeals])
	return out
}

func (m Model) rowCount() int {
	switch m.entityType {
	case EntityCustomers:
		return len(m.customers())
	case EntityContacts:
		return len(m.contacts())
	case EntityDeals:
		return len(m.deals())
	}
	return 0
}

func (m Model) getSelectedID() string {
	switch m.entityType {
	case EntityCustomers:
		if rows := m.customers(); m.selectedRow < len(rows) {
			return rows[m.selectedRow].ID
		}
	case EntityContacts:
		if rows := m.contacts(); m.selectedRow < len(rows) {
			return rows[m.selectedRow].ID
		}
	case EntityDeals:
		if rows := m.deals(); m.selectedRow < len(rows) {
			return rows[m.selectedRow].ID
		}
	}
	return ""
}
