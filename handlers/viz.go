// ABOUTME: GraphViz visualization MCP handlers
// ABOUTME: Provides generate_graph tool for agents
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/pipeline/present"
	"github.com/harperreed/pipeline/store"
	"github.com/harperreed/pipeline/viz"
)

type VizHandlers struct {
	store *store.Memory
	fmt   *present.Formatter
}

func NewVizHandlers(st *store.Memory, f *present.Formatter) *VizHandlers {
	return &VizHandlers{store: st, fmt: f}
}

type GenerateGraphInput struct {
	Type     string `json:"type" jsonschema:"Graph type: pipeline or account"`
	EntityID string `json:"entity_id,omitempty" jsonschema:"Customer ID (required for account)"`
}

type GenerateGraphOutput struct {
	GraphType string `json:"graph_type"`
	DOTSource string `json:"dot_source"`
	NodeCount int    `json:"node_count"`
	EdgeCount int    `json:"edge_count"`
}

func (h *VizHandlers) GenerateGraph(ctx context.Context, _ *mcp.CallToolRequest, input GenerateGraphInput) (*mcp.CallToolResult, GenerateGraphOutput, error) {
	generator := viz.NewGraphGenerator(h.store.Snapshot(), h.fmt)

	var dot string
	var err error
	switch input.Type {
	case "pipeline":
		dot, err = generator.GeneratePipelineGraph(ctx)
	case "account":
		if input.EntityID == "" {
			return nil, GenerateGraphOutput{}, fmt.Errorf("entity_id required for account graph")
		}
		dot, err = generator.GenerateAccountGraph(ctx, input.EntityID)
	case "":
		return nil, GenerateGraphOutput{}, fmt.Errorf("type is required")
	default:
		return nil, GenerateGraphOutput{}, fmt.Errorf("unknown graph type: %s (valid types: pipeline, account)", input.Type)
	}
	if err != nil {
		return nil, GenerateGraphOutput{}, fmt.Errorf("failed to generate graph: %w", err)
	}

	return nil, GenerateGraphOutput{
		GraphType: input.Type,
		DOTSource: dot,
		NodeCount: strings.Count(dot, "[label="),
		EdgeCount: strings.Count(dot, "->"),
	}, nil
}
