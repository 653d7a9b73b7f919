// ABOUTME: Contact MCP tool handlers
// ABOUTME: Implements find_contacts and add_contact tools
package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/pipeline/filter"
	"github.com/harperreed/pipeline/forms"
	"github.com/harperreed/pipeline/store"
)

type ContactHandlers struct {
	store *store.Memory
}

func NewContactHandlers(st *store.Memory) *ContactHandlers {
	return &ContactHandlers{store: st}
}

type FindContactsInput struct {
	Query  string `json:"query,omitempty" jsonschema:"Search over first, last and full name, email and position"`
	Status string `json:"status,omitempty" jsonschema:"Status filter: all, active, inactive"`
}

type FindContactsOutput struct {
	Contacts []ContactOutput `json:"contacts"`
	Count    int             `json:"count"`
	Total    int             `json:"total"`
}

func (h *ContactHandlers) FindContacts(_ context.Context, _ *mcp.CallToolRequest, input FindContactsInput) (*mcp.CallToolResult, FindContactsOutput, error) {
	all := h.store.Contacts()
	shown, err := filter.Contacts(all, filter.Criteria{SearchTerm: input.Query, Status: input.Status})
	if err != nil {
		return nil, FindContactsOutput{}, err
	}
	out := FindContactsOutput{Contacts: make([]ContactOutput, 0, len(shown)), Count: len(shown), Total: len(all)}
	for _, c := range shown {
		out.Contacts = append(out.Contacts, contactToOutput(c))
	}
	return nil, out, nil
}

type AddContactInput struct {
	FirstName  string `json:"first_name" jsonschema:"First name (required)"`
	LastName   string `json:"last_name" jsonschema:"Last name (required)"`
	Email      string `json:"email" jsonschema:"Email address (required)"`
	Phone      string `json:"phone,omitempty" jsonschema:"Phone number"`
	Position   string `json:"position,omitempty" jsonschema:"Job title"`
	CustomerID string `json:"customer_id,omitempty" jsonschema:"ID of the customer this contact works for"`
	Status     string `json:"status,omitempty" jsonschema:"active (default) or inactive"`
}

func (h *ContactHandlers) AddContact(_ context.Context, _ *mcp.CallToolRequest, input AddContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	if input.CustomerID != "" {
		if _, err := h.store.Customer(input.CustomerID); err != nil {
			return nil, ContactOutput{}, err
		}
	}

	contact, err := forms.ContactInput(input).Build(time.Now())
	if err != nil {
		return nil, ContactOutput{}, err
	}
	if err := h.store.AddContact(contact); err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to add contact: %w", err)
	}
	return nil, contactToOutput(contact), nil
}
