// ABOUTME: Detail view for a selected customer, contact or deal
// ABOUTME: Shows related contacts and deals and opens the graph and move-stage dialogs
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/pipeline/present"
)

var (
	fieldLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Width(20)

	fieldValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

func (m Model) renderDetailView() string {
	var s strings.Builder

	// Title
	s.WriteString(titleStyle.Render("DETAIL VIEW"))
	s.WriteString("\n\n")

	// Entity details
	switch m.entityType {
	case EntityContacts:
		s.WriteString(m.renderContactDetail())
	case EntityCustomers:
		s.WriteString(m.renderCustomerDetail())
	case EntityDeals:
		s.WriteString(m.renderDealDetail())
	}

	s.WriteString("\n")
	if status := m.renderStatus(); status != "" {
		s.WriteString(status + "\n")
	}

	// Help
	s.WriteString(m.renderDetailHelp())

	return s.String()
}

func (m Model) renderContactDetail() string {
	contact, err := m.store.Contact(m.selectedID)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}

	var s strings.Builder

	s.WriteString(m.renderField("Name", contact.FullName()))
	s.WriteString(m.renderField("Email", contact.Email))
	s.WriteString(m.renderField("Phone", contact.Phone))
	s.WriteString(m.renderField("Position", contact.Position))
	s.WriteString(m.renderField("Status", renderTag(present.ContactStatusTag(contact.Status))))

	if contact.CustomerID != "" {
		if customer, err := m.store.Customer(contact.CustomerID); err == nil {
			s.WriteString(m.renderField("Customer", customer.Name))
		}
	}
	if !contact.CreatedAt.IsZero() {
		s.WriteString(m.renderField("Created", m.fmt.DateOf(contact.CreatedAt)))
	}

	return s.String()
}

func (m Model) renderCustomerDetail() string {
	customer, err := m.store.Customer(m.selectedID)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}

	row := m.fmt.CustomerRow(customer)

	var s strings.Builder

	s.WriteString(m.renderField("Name", row.Name))
	s.WriteString(m.renderField("Email", row.Email))
	s.WriteString(m.renderField("Phone", row.Phone))
	s.WriteString(m.renderField("Company", row.Company))
	s.WriteString(m.renderField("Industry", row.Industry))
	s.WriteString(m.renderField("Status", renderTag(row.Status)))
	s.WriteString(m.renderField("Created", row.Created))

	// Contacts at customer
	s.WriteString("\n")
	s.WriteString(lipgloss.NewStyle().Bold(true).Render("CONTACTS"))
	s.WriteString("\n")

	for _, contact := range m.store.Contacts() {
		if contact.CustomerID == customer.ID {
			s.WriteString(fmt.Sprintf("  • %s (%s)\n", contact.FullName(), contact.Email))
		}
	}

	s.WriteString("\n")
	s.WriteString(lipgloss.NewStyle().Bold(true).Render("DEALS"))
	s.WriteString("\n")

	for _, deal := range m.store.Deals() {
		if deal.CustomerID != customer.ID {
			continue
		}
		dr, _ := m.fmt.DealRow(deal)
		s.WriteString(fmt.Sprintf("  • %s %s (%s)\n", deal.Title, dr.Amount, renderTag(dr.Stage)))
	}

	return s.String()
}

func (m Model) renderDealDetail() string {
	deal, err := m.store.Deal(m.selectedID)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}

	row, err := m.fmt.DealRow(deal)
	if err != nil {
		m.log.Warn().Err(err).Str("deal", deal.ID).Msg("deal could not be formatted")
	}

	var s strings.Builder

	s.WriteString(m.renderField("Title", deal.Title))
	s.WriteString(m.renderField("Description", deal.Description))

	if customer, err := m.store.Customer(deal.CustomerID); err == nil {
		s.WriteString(m.renderField("Customer", customer.Name))
	}
	if contact, err := m.store.Contact(deal.ContactID); err == nil {
		s.WriteString(m.renderField("Contact", contact.FullName()))
	}

	s.WriteString(m.renderField("Stage", renderTag(row.Stage)))
	s.WriteString(m.renderField("Amount", row.Amount))
	s.WriteString(m.renderField("Probability", row.Probability))
	s.WriteString(m.renderField("Expected Close", row.ExpectedClose))

	return s.String()
}

func (m Model) renderField(label, value string) string {
	if value == "" {
		value = present.Fallback
	}
	return fmt.Sprintf("%s %s\n",
		fieldLabelStyle.Render(label+":"),
		fieldValueStyle.Render(value))
}

func (m Model) renderDetailHelp() string {
	help := []string{"Esc: Back"}
	switch m.entityType {
	case EntityCustomers:
		help = append(help, "g: Account graph")
	case EntityDeals:
		help = append(help, "m: Move stage")
	}
	help = append(help, "q: Quit")
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil

	switch msg.String() {
	case "esc":
		m.viewMode = ViewList
		m.message = ""
	case "g":
		if m.entityType == EntityCustomers {
			m.graphDOT, m.err = m.generateGraph(m.selectedID)
			if m.err == nil {
				m.viewMode = ViewGraph
			}
		}
	case "m":
		if m.entityType == EntityDeals {
			deal, err := m.store.Deal(m.selectedID)
			if err != nil {
				m.err = err
				return m, nil
			}
			m.targetStage = deal.Stage
			m.viewMode = ViewMoveStage
		}
	}

	return m, nil
}
