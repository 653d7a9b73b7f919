// ABOUTME: Deal MCP tool handlers
// ABOUTME: Implements find_deals, add_deal and move_deal_stage tools
package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/pipeline/filter"
	"github.com/harperreed/pipeline/forms"
	"github.com/harperreed/pipeline/models"
	"github.com/harperreed/pipeline/present"
	"github.com/harperreed/pipeline/store"
)

type DealHandlers struct {
	store *store.Memory
	fmt   *present.Formatter
}

func NewDealHandlers(st *store.Memory, f *present.Formatter) *DealHandlers {
	return &DealHandlers{store: st, fmt: f}
}

type FindDealsInput struct {
	Query string `json:"query,omitempty" jsonschema:"Case-insensitive search over title and description"`
	Stage string `json:"stage,omitempty" jsonschema:"Stage filter: all, lead, qualified, proposal, negotiation, closed-won, closed-lost"`
}

type FindDealsOutput struct {
	Deals []DealOutput `json:"deals"`
	Count int          `json:"count"`
	Total int          `json:"total"`
}

func (h *DealHandlers) FindDeals(_ context.Context, _ *mcp.CallToolRequest, input FindDealsInput) (*mcp.CallToolResult, FindDealsOutput, error) {
	all := h.store.Deals()
	shown, err := filter.Deals(all, filter.Criteria{SearchTerm: input.Query, Status: input.Stage})
	if err != nil {
		return nil, FindDealsOutput{}, err
	}

	out := FindDealsOutput{Deals: make([]DealOutput, 0, len(shown)), Count: len(shown), Total: len(all)}
	for _, d := range shown {
		out.Deals = append(out.Deals, h.output(d))
	}
	return nil, out, nil
}

type AddDealInput struct {
	Title             string  `json:"title" jsonschema:"Deal title (required)"`
	Description       string  `json:"description,omitempty" jsonschema:"What is being sold"`
	Amount            float64 `json:"amount,omitempty" jsonschema:"Deal amount in major currency units"`
	Currency          string  `json:"currency,omitempty" jsonschema:"ISO 4217 currency code (default USD)"`
	Stage             string  `json:"stage,omitempty" jsonschema:"Initial stage (default lead)"`
	Probability       int     `json:"probability,omitempty" jsonschema:"Win probability 0-100"`
	CustomerID        string  `json:"customer_id,omitempty" jsonschema:"Owning customer ID"`
	ContactID         string  `json:"contact_id,omitempty" jsonschema:"Primary contact ID"`
	ExpectedCloseDate string  `json:"expected_close_date,omitempty" jsonschema:"Expected close date as YYYY-MM-DD"`
}

func (h *DealHandlers) AddDeal(_ context.Context, _ *mcp.CallToolRequest, input AddDealInput) (*mcp.CallToolResult, DealOutput, error) {
	deal, err := forms.DealInput(input).Build(time.Now())
	if err != nil {
		return nil, DealOutput{}, err
	}
	if err := h.store.AddDeal(deal); err != nil {
		return nil, DealOutput{}, fmt.Errorf("failed to add deal: %w", err)
	}
	return nil, h.output(deal), nil
}

type MoveDealStageInput struct {
	DealID string `json:"deal_id" jsonschema:"Deal ID (required)"`
	Stage  string `json:"stage" jsonschema:"Target stage; any stage may follow any other"`
}

func (h *DealHandlers) MoveDealStage(_ context.Context, _ *mcp.CallToolRequest, input MoveDealStageInput) (*mcp.CallToolResult, DealOutput, error) {
	if input.DealID == "" {
		return nil, DealOutput{}, fmt.Errorf("deal_id is required")
	}

	stage, err := models.ParseStage(input.Stage)
	if err != nil {
		return nil, DealOutput{}, err
	}

	deal, err := h.store.MoveDeal(input.DealID, stage)
	if err != nil {
		return nil, DealOutput{}, err
	}
	return nil, h.output(deal), nil
}

func (h *DealHandlers) output(d models.Deal) DealOutput {
	row, _ := h.fmt.DealRow(d)
	return dealToOutput(d, row.Amount)
}
