// ABOUTME: Customer MCP tool handlers
// ABOUTME: Implements find_customers and add_customer tools
package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/pipeline/filter"
	"github.com/harperreed/pipeline/forms"
	"github.com/harperreed/pipeline/present"
	"github.com/harperreed/pipeline/store"
)

type CustomerHandlers struct {
	store *store.Memory
	fmt   *present.Formatter
}

func NewCustomerHandlers(st *store.Memory, f *present.Formatter) *CustomerHandlers {
	return &CustomerHandlers{store: st, fmt: f}
}

type FindCustomersInput struct {
	Query    string `json:"query,omitempty" jsonschema:"Case-insensitive search over name, email and company; phone matches as typed"`
	Status   string `json:"status,omitempty" jsonschema:"Status filter: all, active, inactive, prospect"`
	Industry string `json:"industry,omitempty" jsonschema:"Industry filter: all or one of Technology, Software, Manufacturing, Healthcare, Finance"`
}

type FindCustomersOutput struct {
	Customers []CustomerOutput `json:"customers"`
	Count     int              `json:"count"`
	Total     int              `json:"total"`
	Summary   string           `json:"summary"`
}

func (h *CustomerHandlers) FindCustomers(_ context.Context, _ *mcp.CallToolRequest, input FindCustomersInput) (*mcp.CallToolResult, FindCustomersOutput, error) {
	all := h.store.Customers()
	crit := filter.Criteria{SearchTerm: input.Query, Status: input.Status, Category: input.Industry}

	shown, err := filter.Customers(all, crit)
	if err != nil {
		return nil, FindCustomersOutput{}, err
	}

	view := h.fmt.CustomerList(shown, len(all), crit.Active())
	out := FindCustomersOutput{
		Customers: make([]CustomerOutput, 0, len(shown)),
		Count:     len(shown),
		Total:     len(all),
		Summary:   view.Summary,
	}
	for _, c := range shown {
		out.Customers = append(out.Customers, customerToOutput(c))
	}
	return nil, out, nil
}

type AddCustomerInput struct {
	Name     string `json:"name" jsonschema:"Customer name (required)"`
	Email    string `json:"email" jsonschema:"Email address (required)"`
	Phone    string `json:"phone,omitempty" jsonschema:"Phone number"`
	Company  string `json:"company,omitempty" jsonschema:"Company name"`
	Industry string `json:"industry,omitempty" jsonschema:"Technology, Software, Manufacturing, Healthcare or Finance"`
	Status   string `json:"status,omitempty" jsonschema:"active (default), inactive or prospect"`
}

func (h *CustomerHandlers) AddCustomer(_ context.Context, _ *mcp.CallToolRequest, input AddCustomerInput) (*mcp.CallToolResult, CustomerOutput, error) {
	customer, err := forms.CustomerInput(input).Build(time.Now())
	if err != nil {
		return nil, CustomerOutput{}, err
	}
	if err := h.store.AddCustomer(customer); err != nil {
		return nil, CustomerOutput{}, fmt.Errorf("failed to add customer: %w", err)
	}
	return nil, customerToOutput(customer), nil
}
