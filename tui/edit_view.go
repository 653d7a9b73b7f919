// ABOUTME: New-record forms for the TUI
// ABOUTME: Validates through the forms package and adds records to the session store
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/pipeline/forms"
	"github.com/harperreed/pipeline/models"
)

func (m Model) renderEditView() string {
	var s strings.Builder

	// Title
	s.WriteString(titleStyle.Render("NEW " + m.entityTypeName()))
	s.WriteString("\n\n")

	// Form fields
	for i, input := range m.formInputs {
		if i == m.focusIndex {
			s.WriteString("> ")
		} else {
			s.WriteString("  ")
		}
		s.WriteString(input.View())
		s.WriteString("\n")
	}

	s.WriteString("\n")
	if status := m.renderStatus(); status != "" {
		s.WriteString(status + "\n")
	}

	// Help
	s.WriteString(m.renderEditHelp())

	return s.String()
}

func (m Model) entityTypeName() string {
	switch m.entityType {
	case EntityContacts:
		return "CONTACT"
	case EntityCustomers:
		return "CUSTOMER"
	case EntityDeals:
		return "DEAL"
	}
	return ""
}

func (m Model) renderEditHelp() string {
	help := []string{
		"Tab: Next field",
		"Enter: Save",
		"Esc: Cancel",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.viewMode = ViewList
		m.err = nil
		return m, nil
	case "tab", "down":
		m.focusIndex = (m.focusIndex + 1) % len(m.formInputs)
		m.updateFormFocus()
		return m, nil
	case "shift+tab", "up":
		m.focusIndex = (m.focusIndex + len(m.formInputs) - 1) % len(m.formInputs)
		m.updateFormFocus()
		return m, nil
	case "enter":
		// Save the entity
		status, err := m.saveEntity()
		if err != nil {
			m.err = err
		} else {
			m.err = nil
			m.message = status
			m.viewMode = ViewList
		}
		return m, nil
	}

	// Update current input
	var cmd tea.Cmd
	m.formInputs[m.focusIndex], cmd = m.formInputs[m.focusIndex].Update(msg)
	return m, cmd
}

func (m *Model) initFormInputs() {
	var placeholders []string
	switch m.entityType {
	case EntityCustomers:
		placeholders = []string{
			"Name",
			"Email",
			"Phone",
			"Company",
			"Industry (Technology/Software/Manufacturing/Healthcare/Finance)",
			"Status (active/inactive/prospect, default: active)",
		}
	case EntityContacts:
		placeholders = []string{
			"First Name",
			"Last Name",
			"Email",
			"Phone",
			"Position",
			"Customer ID (optional)",
		}
	case EntityDeals:
		placeholders = []string{
			"Title",
			"Description",
			"Amount",
			"Currency (default: USD)",
			"Stage (lead/qualified/proposal/negotiation/closed-won/closed-lost)",
			"Probability (0-100)",
			"Customer ID (optional)",
			"Expected Close (YYYY-MM-DD)",
		}
	}

	inputs := make([]textinput.Model, len(placeholders))
	for i, p := range placeholders {
		inputs[i] = textinput.New()
		inputs[i].Placeholder = p
		inputs[i].CharLimit = 200
		inputs[i].Width = 60
	}

	m.formInputs = inputs
	m.focusIndex = 0
	m.err = nil
	m.updateFormFocus()
}

func (m *Model) updateFormFocus() {
	for i := range m.formInputs {
		if i == m.focusIndex {
			m.formInputs[i].Focus()
		} else {
			m.formInputs[i].Blur()
		}
	}
}

func (m Model) value(i int) string {
	return m.formInputs[i].Value()
}

// saveEntity validates the form and adds the record, returning a status line.
func (m Model) saveEntity() (string, error) {
	now := m.now()
	switch m.entityType {
	case EntityCustomers:
		return m.saveCustomer(now)
	case EntityContacts:
		return m.saveContact(now)
	case EntityDeals:
		return m.saveDeal(now)
	}
	return "", nil
}

func (m Model) saveCustomer(now time.Time) (string, error) {
	customer, err := forms.CustomerInput{
		Name:     m.value(0),
		Email:    m.value(1),
		Phone:    m.value(2),
		Company:  m.value(3),
		Industry: m.value(4),
		Status:   m.value(5),
	}.Build(now)
	if err != nil {
		return "", err
	}
	if err := m.store.AddCustomer(customer); err != nil {
		return "", err
	}
	return fmt.Sprintf("✓ Customer created: %s", customer.Name), nil
}

func (m Model) saveContact(now time.Time) (string, error) {
	in := forms.ContactInput{
		FirstName:  m.value(0),
		LastName:   m.value(1),
		Email:      m.value(2),
		Phone:      m.value(3),
		Position:   m.value(4),
		CustomerID: strings.TrimSpace(m.value(5)),
	}
	if in.CustomerID != "" {
		if _, err := m.store.Customer(in.CustomerID); err != nil {
			return "", err
		}
	}

	contact, err := in.Build(now)
	if err != nil {
		return "", err
	}
	if err := m.store.AddContact(contact); err != nil {
		return "", err
	}
	return fmt.Sprintf("✓ Contact created: %s", contact.FullName()), nil
}

func (m Model) saveDeal(now time.Time) (string, error) {
	in := forms.DealInput{
		Title:             m.value(0),
		Description:       m.value(1),
		Currency:          m.value(3),
		Stage:             m.value(4),
		CustomerID:        m.value(6),
		ExpectedCloseDate: m.value(7),
	}

	var errs models.ValidationErrors
	if v := strings.TrimSpace(m.value(2)); v != "" {
		amount, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, &models.ValidationError{Field: "amount", Value: v, Reason: "must be a number"})
		}
		in.Amount = amount
	}
	if v := strings.TrimSpace(m.value(5)); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, &models.ValidationError{Field: "probability", Value: v, Reason: "must be a whole number"})
		}
		in.Probability = p
	}
	if len(errs) > 0 {
		return "", errs
	}

	deal, err := in.Build(now)
	if err != nil {
		return "", err
	}
	if err := m.store.AddDeal(deal); err != nil {
		return "", err
	}
	return fmt.Sprintf("✓ Deal created: %s", deal.Title), nil
}
