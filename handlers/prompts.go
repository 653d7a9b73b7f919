// ABOUTME: MCP prompt handlers for reusable CRM workflow templates
// ABOUTME: Builds pipeline review, deal analysis and account overview prompts from live data
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/pipeline/metrics"
	"github.com/harperreed/pipeline/models"
	"github.com/harperreed/pipeline/present"
	"github.com/harperreed/pipeline/store"
)

type PromptHandlers struct {
	store *store.Memory
	fmt   *present.Formatter
}

func NewPromptHandlers(st *store.Memory, f *present.Formatter) *PromptHandlers {
	return &PromptHandlers{store: st, fmt: f}
}

// Prompts lists the prompt templates served by GetPrompt.
func (h *PromptHandlers) Prompts() []*mcp.Prompt {
	return []*mcp.Prompt{
		{
			Name:        "pipeline-review",
			Description: "Review the sales pipeline stage by stage and suggest where to focus",
		},
		{
			Name:        "deal-analysis",
			Description: "Analyze a single deal and recommend next steps",
			Arguments: []*mcp.PromptArgument{
				{Name: "deal_id", Description: "ID of the deal to analyze", Required: true},
			},
		},
		{
			Name:        "account-overview",
			Description: "Summarize a customer account with its contacts and deals",
			Arguments: []*mcp.PromptArgument{
				{Name: "customer_id", Description: "ID of the customer", Required: true},
			},
		},
	}
}

// GetPrompt generates the prompt message based on the template
func (h *PromptHandlers) GetPrompt(_ context.Context, request *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	arguments := request.Params.Arguments
	switch request.Params.Name {
	case "pipeline-review":
		return h.pipelineReview()
	case "deal-analysis":
		return h.dealAnalysis(arguments)
	case "account-overview":
		return h.accountOverview(arguments)
	default:
		return nil, fmt.Errorf("unknown prompt: %s", request.Params.Name)
	}
}

func (h *PromptHandlers) pipelineReview() (*mcp.GetPromptResult, error) {
	deals := h.store.Deals()
	sum := metrics.Summarize(deals)

	var b strings.Builder
	b.WriteString("Please review this sales pipeline:\n\n")
	for _, col := range metrics.StageBreakdown(deals) {
		fmt.Fprintf(&b, "%s: %d deals, %s\n", col.Stage.Label(), col.Count, h.money(col.Amount))
	}
	fmt.Fprintf(&b, "\nTotal Value: %s\n", h.money(sum.TotalValue))
	fmt.Fprintf(&b, "Weighted Value: %s\n", h.money(sum.WeightedValue))
	fmt.Fprintf(&b, "Won Value: %s\n", h.money(sum.WonValue))
	fmt.Fprintf(&b, "Conversion Rate: %s\n", present.Percent(sum.ConversionRate))

	b.WriteString("\nPlease provide:")
	b.WriteString("\n1. Where deals are stalling")
	b.WriteString("\n2. Which open deals deserve attention first")
	b.WriteString("\n3. Risks to the weighted forecast")

	return userPrompt("Pipeline review", b.String()), nil
}

func (h *PromptHandlers) dealAnalysis(args map[string]string) (*mcp.GetPromptResult, error) {
	id, ok := args["deal_id"]
	if !ok || id == "" {
		return nil, fmt.Errorf("deal_id is required")
	}

	deal, err := h.store.Deal(id)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("Please analyze this deal:\n\n")
	fmt.Fprintf(&b, "Title: %s\n", deal.Title)
	if deal.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", deal.Description)
	}
	amount, err := h.fmt.Currency(deal.Amount, deal.Currency)
	if err != nil {
		amount = present.Fallback
	}
	fmt.Fprintf(&b, "Amount: %s\n", amount)
	fmt.Fprintf(&b, "Stage: %s\n", deal.Stage.Label())
	fmt.Fprintf(&b, "Probability: %d%%\n", deal.Probability)
	if deal.ExpectedCloseDate != nil {
		fmt.Fprintf(&b, "Expected Close: %s\n", h.fmt.DateOf(*deal.ExpectedCloseDate))
	}
	if deal.CustomerID != "" {
		if c, err := h.store.Customer(deal.CustomerID); err == nil {
			fmt.Fprintf(&b, "Customer: %s\n", displayName(c))
		}
	}

	b.WriteString("\nPlease provide:")
	b.WriteString("\n1. An assessment of the deal's health")
	b.WriteString("\n2. Concrete next steps to advance it")

	return userPrompt(fmt.Sprintf("Analysis for deal: %s", deal.Title), b.String()), nil
}

func (h *PromptHandlers) accountOverview(args map[string]string) (*mcp.GetPromptResult, error) {
	id, ok := args["customer_id"]
	if !ok || id == "" {
		return nil, fmt.Errorf("customer_id is required")
	}

	customer, err := h.store.Customer(id)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("Please provide an overview of this account:\n\n")
	fmt.Fprintf(&b, "Name: %s\n", customer.Name)
	if customer.Company != "" {
		fmt.Fprintf(&b, "Company: %s\n", customer.Company)
	}
	if customer.Industry != "" {
		fmt.Fprintf(&b, "Industry: %s\n", customer.Industry)
	}
	fmt.Fprintf(&b, "Status: %s\n", customer.Status.Label())

	var contacts []models.Contact
	for _, c := range h.store.Contacts() {
		if c.CustomerID == id {
			contacts = append(contacts, c)
		}
	}
	if len(contacts) > 0 {
		b.WriteString("\nContacts:\n")
		for _, c := range contacts {
			fmt.Fprintf(&b, "- %s", c.FullName())
			if c.Position != "" {
				fmt.Fprintf(&b, " (%s)", c.Position)
			}
			b.WriteString("\n")
		}
	}

	var deals []models.Deal
	for _, d := range h.store.Deals() {
		if d.CustomerID == id {
			deals = append(deals, d)
		}
	}
	if len(deals) > 0 {
		b.WriteString("\nDeals:\n")
		for _, d := range deals {
			fmt.Fprintf(&b, "- %s: %s at %s\n", d.Title, h.money(d.Amount), d.Stage.Label())
		}
	}

	b.WriteString("\nPlease summarize the relationship and suggest follow-up actions.")

	return userPrompt(fmt.Sprintf("Overview for account: %s", displayName(customer)), b.String()), nil
}

func (h *PromptHandlers) money(v float64) string {
	s, err := h.fmt.Currency(v, h.fmt.BaseCurrency)
	if err != nil {
		return present.Fallback
	}
	return s
}

func displayName(c models.Customer) string {
	if c.Company != "" {
		return c.Company
	}
	return c.Name
}

func userPrompt(description, text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Description: description,
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: text},
			},
		},
	}
}
