// ABOUTME: MCP resource handlers for exposing CRM data
// ABOUTME: Provides read-only access to customers, contacts, deals and the pipeline via crm:// URIs
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/pipeline/metrics"
	"github.com/harperreed/pipeline/models"
	"github.com/harperreed/pipeline/store"
)

type ResourceHandlers struct {
	store *store.Memory
}

func NewResourceHandlers(st *store.Memory) *ResourceHandlers {
	return &ResourceHandlers{store: st}
}

// Resources lists the fixed collection URIs.
func (h *ResourceHandlers) Resources() []*mcp.Resource {
	return []*mcp.Resource{
		{URI: "crm://customers", Name: "customers", Description: "All customers", MIMEType: "application/json"},
		{URI: "crm://contacts", Name: "contacts", Description: "All contacts", MIMEType: "application/json"},
		{URI: "crm://deals", Name: "deals", Description: "All deals", MIMEType: "application/json"},
		{URI: "crm://pipeline", Name: "pipeline", Description: "Deals grouped by stage with counts and totals", MIMEType: "application/json"},
		{URI: "crm://activity", Name: "activity", Description: "Activity feed, newest first", MIMEType: "application/json"},
	}
}

// Templates lists the per-record URIs.
func (h *ResourceHandlers) Templates() []*mcp.ResourceTemplate {
	return []*mcp.ResourceTemplate{
		{URITemplate: "crm://customers/{id}", Name: "customer", Description: "One customer with its contacts and deals", MIMEType: "application/json"},
		{URITemplate: "crm://deals/{id}", Name: "deal", Description: "One deal", MIMEType: "application/json"},
	}
}

// ReadResource handles resource read requests
func (h *ResourceHandlers) ReadResource(_ context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, "crm://") {
		return nil, fmt.Errorf("invalid URI scheme: expected crm://")
	}

	parts := strings.Split(strings.TrimPrefix(uri, "crm://"), "/")
	switch parts[0] {
	case "customers":
		if len(parts) == 1 {
			return jsonResource(uri, h.store.Customers())
		}
		return h.readCustomer(uri, parts[1])

	case "contacts":
		return jsonResource(uri, h.store.Contacts())

	case "deals":
		if len(parts) == 1 {
			return jsonResource(uri, h.store.Deals())
		}
		deal, err := h.store.Deal(parts[1])
		if err != nil {
			return nil, err
		}
		return jsonResource(uri, deal)

	case "pipeline":
		return jsonResource(uri, metrics.StageBreakdown(h.store.Deals()))

	case "activity":
		return jsonResource(uri, metrics.RecentActivity(h.store.Activities(), 0))

	default:
		return nil, fmt.Errorf("unknown resource: %s", parts[0])
	}
}

func (h *ResourceHandlers) readCustomer(uri, id string) (*mcp.ReadResourceResult, error) {
	customer, err := h.store.Customer(id)
	if err != nil {
		return nil, err
	}

	account := struct {
		models.Customer
		Contacts []models.Contact `json:"contacts"`
		Deals    []models.Deal    `json:"deals"`
	}{
		Customer: customer,
		Contacts: []models.Contact{},
		Deals:    []models.Deal{},
	}
	for _, c := range h.store.Contacts() {
		if c.CustomerID == id {
			account.Contacts = append(account.Contacts, c)
		}
	}
	for _, d := range h.store.Deals() {
		if d.CustomerID == id {
			account.Deals = append(account.Deals, d)
		}
	}
	return jsonResource(uri, account)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}
