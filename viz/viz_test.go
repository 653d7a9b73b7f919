// ABOUTME: Tests for the ASCII dashboard, pipeline board and GraphViz output
// ABOUTME: Uses the embedded demo data as input
package viz

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/pipeline/metrics"
	"github.com/harperreed/pipeline/present"
	"github.com/harperreed/pipeline/seed"
)

func fixtures(t *testing.T) (metrics.Collections, *present.Formatter) {
	t.Helper()
	data, err := seed.Mock()
	require.NoError(t, err)
	f, err := present.NewFormatter("en-US", "USD")
	require.NoError(t, err)
	return data.Collections(), f
}

func TestRenderDashboard(t *testing.T) {
	data, f := fixtures(t)

	dash, err := f.Dashboard(metrics.Dashboard(data, 5))
	require.NoError(t, err)
	pipe, err := f.Pipeline(data.Deals)
	require.NoError(t, err)

	now := time.Date(2024, 1, 15, 12, 30, 0, 0, time.UTC)
	out := RenderDashboard(dash, pipe, now)

	assert.Contains(t, out, "PIPELINE CRM DASHBOARD")
	assert.Contains(t, out, "Total Customers")
	assert.Contains(t, out, "Negotiation")
	assert.Contains(t, out, `New customer "Acme Corp" added (2 hours ago)`)

	// Newest activity is listed first.
	assert.Less(t, strings.Index(out, "Acme Corp"), strings.Index(out, "John Smith"))
}

func TestRenderDashboardEmpty(t *testing.T) {
	_, f := fixtures(t)

	dash, err := f.Dashboard(metrics.Dashboard(metrics.Collections{}, 5))
	require.NoError(t, err)
	pipe, err := f.Pipeline(nil)
	require.NoError(t, err)

	out := RenderDashboard(dash, pipe, time.Now())
	assert.Contains(t, out, "No recent activity")
	assert.Contains(t, out, "░░░░░░░░░░")
}

func TestRenderBoard(t *testing.T) {
	data, f := fixtures(t)
	pipe, err := f.Pipeline(data.Deals)
	require.NoError(t, err)

	out := RenderBoard(pipe)
	assert.Contains(t, out, "NEGOTIATION (1) $50,000.00")
	assert.Contains(t, out, "Enterprise Software License")
	assert.Contains(t, out, "Total Pipeline Value: $225,000.00")
	assert.Contains(t, out, "CLOSED WON (0)")
}

func TestGeneratePipelineGraph(t *testing.T) {
	data, f := fixtures(t)

	dot, err := NewGraphGenerator(data, f).GeneratePipelineGraph(context.Background())
	require.NoError(t, err)
	assert.Contains(t, dot, "stage_negotiation")
	assert.Contains(t, dot, "deal_1")
}

func TestGenerateAccountGraph(t *testing.T) {
	data, f := fixtures(t)
	g := NewGraphGenerator(data, f)

	dot, err := g.GenerateAccountGraph(context.Background(), "2")
	require.NoError(t, err)
	assert.Contains(t, dot, "customer_2")
	assert.Contains(t, dot, "contact_2")
	assert.NotContains(t, dot, "customer_1")

	_, err = g.GenerateAccountGraph(context.Background(), "missing")
	assert.Error(t, err)
}
