// ABOUTME: Pipeline and dashboard MCP tool handlers
// ABOUTME: Implements pipeline_summary and dashboard_stats tools
package handlers

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/harperreed/pipeline/metrics"
	"github.com/harperreed/pipeline/models"
	"github.com/harperreed/pipeline/present"
	"github.com/harperreed/pipeline/store"
)

type PipelineHandlers struct {
	store       *store.Memory
	fmt         *present.Formatter
	recentLimit int
	log         zerolog.Logger
}

func NewPipelineHandlers(st *store.Memory, f *present.Formatter, recentLimit int, log zerolog.Logger) *PipelineHandlers {
	return &PipelineHandlers{store: st, fmt: f, recentLimit: recentLimit, log: log}
}

type PipelineSummaryInput struct{}

type PipelineSummaryOutput struct {
	Summary metrics.PipelineSummary `json:"summary"`
	Display present.PipelineView    `json:"display"`
}

func (h *PipelineHandlers) PipelineSummary(_ context.Context, _ *mcp.CallToolRequest, _ PipelineSummaryInput) (*mcp.CallToolResult, PipelineSummaryOutput, error) {
	deals := h.store.Deals()
	view, err := h.fmt.Pipeline(deals)
	if err != nil {
		h.log.Warn().Err(err).Msg("pipeline summary has unformatted values")
	}
	return nil, PipelineSummaryOutput{Summary: metrics.Summarize(deals), Display: view}, nil
}

type DashboardStatsInput struct {
	RecentLimit int `json:"recent_limit,omitempty" jsonschema:"How many recent activities to include (default from config)"`
}

type DashboardOutput struct {
	TotalCustomers int              `json:"total_customers"`
	TotalContacts  int              `json:"total_contacts"`
	TotalDeals     int              `json:"total_deals"`
	ActiveDeals    int              `json:"active_deals"`
	TotalRevenue   float64          `json:"total_revenue"`
	DealsByStage   map[string]int   `json:"deals_by_stage"`
	RecentActivity []ActivityOutput `json:"recent_activity"`
}

type DashboardStatsOutput struct {
	Stats  DashboardOutput      `json:"stats"`
	Cards  []present.StatCard   `json:"cards"`
	Stages []present.StageCount `json:"stages"`
}

func (h *PipelineHandlers) DashboardStats(_ context.Context, _ *mcp.CallToolRequest, input DashboardStatsInput) (*mcp.CallToolResult, DashboardStatsOutput, error) {
	limit := input.RecentLimit
	if limit <= 0 {
		limit = h.recentLimit
	}

	stats := metrics.Dashboard(h.store.Snapshot(), limit)
	view, err := h.fmt.Dashboard(stats)
	if err != nil {
		h.log.Warn().Err(err).Msg("dashboard has unformatted values")
	}
	return nil, DashboardStatsOutput{Stats: dashboardToOutput(stats), Cards: view.Cards, Stages: view.DealsByStage}, nil
}

func dashboardToOutput(s models.DashboardStats) DashboardOutput {
	out := DashboardOutput{
		TotalCustomers: s.TotalCustomers,
		TotalContacts:  s.TotalContacts,
		TotalDeals:     s.TotalDeals,
		ActiveDeals:    s.ActiveDeals,
		TotalRevenue:   s.TotalRevenue,
		DealsByStage:   make(map[string]int, len(s.DealsByStage)),
		RecentActivity: make([]ActivityOutput, 0, len(s.RecentActivity)),
	}
	for stage, n := range s.DealsByStage {
		out.DealsByStage[string(stage)] = n
	}
	for _, a := range s.RecentActivity {
		out.RecentActivity = append(out.RecentActivity, activityToOutput(a))
	}
	return out
}
