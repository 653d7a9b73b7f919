// ABOUTME: Tests for the MCP tool, resource and prompt handlers
// ABOUTME: Calls handler methods directly against a store seeded with demo data
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/pipeline/models"
	"github.com/harperreed/pipeline/present"
	"github.com/harperreed/pipeline/seed"
	"github.com/harperreed/pipeline/store"
)

func setup(t *testing.T) (*store.Memory, *present.Formatter) {
	t.Helper()
	data, err := seed.Mock()
	require.NoError(t, err)
	f, err := present.NewFormatter("en-US", "USD")
	require.NoError(t, err)
	return store.New(data.Collections()), f
}

func TestFindCustomers(t *testing.T) {
	st, f := setup(t)
	h := NewCustomerHandlers(st, f)

	_, out, err := h.FindCustomers(context.Background(), nil, FindCustomersInput{Query: "TECH"})
	require.NoError(t, err)
	require.Equal(t, 1, out.Count)
	assert.Equal(t, "Tech Solutions Inc", out.Customers[0].Name)
	assert.Equal(t, 3, out.Total)
	assert.Equal(t, "Showing 1 of 3 customers", out.Summary)

	_, out, err = h.FindCustomers(context.Background(), nil, FindCustomersInput{Status: "prospect"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Count)

	_, _, err = h.FindCustomers(context.Background(), nil, FindCustomersInput{Status: "sleeping"})
	assert.Error(t, err)
}

func TestAddCustomer(t *testing.T) {
	st, f := setup(t)
	h := NewCustomerHandlers(st, f)

	_, c, err := h.AddCustomer(context.Background(), nil, AddCustomerInput{Name: "Initech", Email: "hello@initech.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "active", c.Status)
	assert.Len(t, st.Customers(), 4)

	_, _, err = h.AddCustomer(context.Background(), nil, AddCustomerInput{Name: "No Email"})
	var verrs models.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.NotNil(t, verrs.Field("email"))
}

func TestAddContactRequiresKnownCustomer(t *testing.T) {
	st, _ := setup(t)
	h := NewContactHandlers(st)

	_, _, err := h.AddContact(context.Background(), nil, AddContactInput{
		FirstName: "Ann", LastName: "Lee", Email: "ann@example.com", CustomerID: "missing",
	})
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, c, err := h.AddContact(context.Background(), nil, AddContactInput{
		FirstName: "Ann", LastName: "Lee", Email: "ann@example.com", CustomerID: "1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", c.Name)
	assert.NotEmpty(t, c.CreatedAt)

	_, out, err := h.FindContacts(context.Background(), nil, FindContactsInput{Query: "ann lee"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Count)
}

func TestDealTools(t *testing.T) {
	st, f := setup(t)
	h := NewDealHandlers(st, f)
	ctx := context.Background()

	_, found, err := h.FindDeals(ctx, nil, FindDealsInput{Stage: "negotiation"})
	require.NoError(t, err)
	require.Equal(t, 1, found.Count)
	assert.Equal(t, "$50,000.00", found.Deals[0].AmountDisplay)
	assert.Equal(t, "2024-02-15", found.Deals[0].ExpectedCloseDate)
	assert.Equal(t, "2024-01-15T10:30:00Z", found.Deals[0].CreatedAt)

	_, added, err := h.AddDeal(ctx, nil, AddDealInput{Title: "Support Plan", Amount: 1200})
	require.NoError(t, err)
	assert.Equal(t, "lead", added.Stage)
	assert.Equal(t, "$1,200.00", added.AmountDisplay)

	_, moved, err := h.MoveDealStage(ctx, nil, MoveDealStageInput{DealID: "1", Stage: "closed-won"})
	require.NoError(t, err)
	assert.Equal(t, "closed-won", moved.Stage)

	_, _, err = h.MoveDealStage(ctx, nil, MoveDealStageInput{DealID: "1", Stage: "won"})
	assert.Error(t, err)

	_, _, err = h.MoveDealStage(ctx, nil, MoveDealStageInput{DealID: "404", Stage: "lead"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestPipelineAndDashboard(t *testing.T) {
	st, f := setup(t)
	h := NewPipelineHandlers(st, f, 2, zerolog.Nop())

	_, sum, err := h.PipelineSummary(context.Background(), nil, PipelineSummaryInput{})
	require.NoError(t, err)
	assert.InDelta(t, 225000, sum.Summary.TotalValue, 0.001)
	assert.Equal(t, "$225,000.00", sum.Display.TotalValue)

	_, dash, err := h.DashboardStats(context.Background(), nil, DashboardStatsInput{})
	require.NoError(t, err)
	assert.Equal(t, 3, dash.Stats.TotalCustomers)
	assert.Len(t, dash.Stats.RecentActivity, 2)
	assert.Equal(t, 1, dash.Stats.DealsByStage["negotiation"])
	require.Len(t, dash.Cards, 4)
	assert.Len(t, dash.Stages, 6)

	_, dash, err = h.DashboardStats(context.Background(), nil, DashboardStatsInput{RecentLimit: 10})
	require.NoError(t, err)
	assert.Len(t, dash.Stats.RecentActivity, 3)
}

func TestGenerateGraphErrors(t *testing.T) {
	st, f := setup(t)
	h := NewVizHandlers(st, f)

	_, _, err := h.GenerateGraph(context.Background(), nil, GenerateGraphInput{})
	assert.Error(t, err)

	_, _, err = h.GenerateGraph(context.Background(), nil, GenerateGraphInput{Type: "account"})
	assert.Error(t, err)

	_, _, err = h.GenerateGraph(context.Background(), nil, GenerateGraphInput{Type: "orgchart"})
	assert.Error(t, err)
}

func readResource(t *testing.T, h *ResourceHandlers, uri string) string {
	t.Helper()
	res, err := h.ReadResource(context.Background(), &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: uri},
	})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Equal(t, "application/json", res.Contents[0].MIMEType)
	return res.Contents[0].Text
}

func TestReadResource(t *testing.T) {
	st, _ := setup(t)
	h := NewResourceHandlers(st)

	var customers []models.Customer
	require.NoError(t, json.Unmarshal([]byte(readResource(t, h, "crm://customers")), &customers))
	assert.Len(t, customers, 3)

	var account struct {
		Name     string           `json:"name"`
		Contacts []models.Contact `json:"contacts"`
		Deals    []models.Deal    `json:"deals"`
	}
	require.NoError(t, json.Unmarshal([]byte(readResource(t, h, "crm://customers/2")), &account))
	assert.Equal(t, "Tech Solutions Inc", account.Name)
	require.Len(t, account.Contacts, 1)
	assert.Equal(t, "John", account.Contacts[0].FirstName)
	require.Len(t, account.Deals, 1)

	var stages []struct {
		Stage models.Stage `json:"stage"`
		Count int          `json:"count"`
	}
	require.NoError(t, json.Unmarshal([]byte(readResource(t, h, "crm://pipeline")), &stages))
	assert.Len(t, stages, 6)

	assert.Contains(t, readResource(t, h, "crm://activity"), "customer_created")
}

func TestReadResourceErrors(t *testing.T) {
	st, _ := setup(t)
	h := NewResourceHandlers(st)

	for _, uri := range []string{"http://customers", "crm://widgets", "crm://deals/404"} {
		_, err := h.ReadResource(context.Background(), &mcp.ReadResourceRequest{
			Params: &mcp.ReadResourceParams{URI: uri},
		})
		if err == nil {
			t.Errorf("expected error for %s", uri)
		}
	}
}

func getPrompt(h *PromptHandlers, name string, args map[string]string) (*mcp.GetPromptResult, error) {
	return h.GetPrompt(context.Background(), &mcp.GetPromptRequest{
		Params: &mcp.GetPromptParams{Name: name, Arguments: args},
	})
}

func TestPrompts(t *testing.T) {
	st, f := setup(t)
	h := NewPromptHandlers(st, f)
	assert.Len(t, h.Prompts(), 3)

	res, err := getPrompt(h, "pipeline-review", nil)
	require.NoError(t, err)
	text := res.Messages[0].Content.(*mcp.TextContent).Text
	assert.Contains(t, text, "Negotiation: 1 deals, $50,000.00")
	assert.Contains(t, text, "Total Value: $225,000.00")

	res, err = getPrompt(h, "deal-analysis", map[string]string{"deal_id": "1"})
	require.NoError(t, err)
	assert.Contains(t, res.Messages[0].Content.(*mcp.TextContent).Text, "Customer: Acme Corp")

	res, err = getPrompt(h, "account-overview", map[string]string{"customer_id": "2"})
	require.NoError(t, err)
	assert.Contains(t, res.Messages[0].Content.(*mcp.TextContent).Text, "John Smith (CTO)")

	_, err = getPrompt(h, "deal-analysis", nil)
	assert.Error(t, err)

	_, err = getPrompt(h, "haiku", nil)
	assert.Error(t, err)
}
