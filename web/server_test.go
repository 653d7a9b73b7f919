// ABOUTME: HTTP tests for the web UI, JSON API and metrics endpoint
// ABOUTME: Runs handlers through httptest against the demo data set
package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/harperreed/pipeline/models"
	"github.com/harperreed/pipeline/present"
	"github.com/harperreed/pipeline/seed"
	"github.com/harperreed/pipeline/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	data, err := seed.Mock()
	require.NoError(t, err)
	f, err := present.NewFormatter("en-US", "USD")
	require.NoError(t, err)

	st := store.New(data.Collections())
	srv, err := NewServer(st, f, zerolog.Nop(), 5)
	require.NoError(t, err)
	return srv, srv.Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	_, h := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestAPICustomersFilter(t *testing.T) {
	_, h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/customers?q=tech", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp listResponse[models.Customer]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)
	require.Equal(t, 1, resp.Shown)
	assert.Equal(t, "Tech Solutions Inc", resp.Items[0].Name)

	rec = do(t, h, http.MethodGet, "/api/customers?status=prospect&industry=Manufacturing", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Shown)
	assert.Equal(t, "Global Manufacturing", resp.Items[0].Name)
}

func TestAPIBadCriteria(t *testing.T) {
	_, h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/customers?status=archived", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Fields, 1)
	assert.Equal(t, "status", resp.Fields[0].Field)

	rec = do(t, h, http.MethodGet, "/api/deals?stage=won", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPIMoveDeal(t *testing.T) {
	_, h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/deals/1/stage", `{"stage":"closed-won"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var deal models.Deal
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &deal))
	assert.Equal(t, models.StageClosedWon, deal.Stage)

	rec = do(t, h, http.MethodGet, "/api/dashboard", "")
	var stats models.DashboardStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 50000.0, stats.TotalRevenue)
	assert.Equal(t, 2, stats.ActiveDeals)
	assert.Equal(t, 1, stats.DealsByStage[models.StageClosedWon])
	require.NotEmpty(t, stats.RecentActivity)
	assert.Equal(t, `Deal "Enterprise Software License" moved to closed-won`, stats.RecentActivity[0].Description)
}

func TestAPIMoveDealErrors(t *testing.T) {
	_, h := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/api/deals/missing/stage", `{"stage":"lead"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/deals/1/stage", `{"stage":"won"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/deals/1/stage", `not json`).Code)
}

func TestAPIAddCustomer(t *testing.T) {
	_, h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/customers", `{"name":"","email":"bad"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotNil(t, resp.Fields.Field("name"))
	assert.NotNil(t, resp.Fields.Field("email"))

	rec = do(t, h, http.MethodPost, "/api/customers", `{"name":"Initech","email":"hello@initech.com","industry":"Software"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var c models.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	assert.Equal(t, models.CustomerActive, c.Status)

	rec = do(t, h, http.MethodGet, "/api/customers", "")
	var list listResponse[models.Customer]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 4, list.Total)
}

func TestAPIAddDeal(t *testing.T) {
	_, h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/api/deals", `{"title":"Renewal","amount":1000,"probability":50,"stage":"proposal"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/pipeline", "")
	var resp pipelineResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.Summary.DealCount)
	assert.Equal(t, 226000.0, resp.Summary.TotalValue)
	assert.Equal(t, "$226,000.00", resp.Board.TotalValue)
}

func TestHTMLPages(t *testing.T) {
	_, h := newTestServer(t)

	tests := []struct {
		path string
		want string
	}{
		{"/", "Total Customers"},
		{"/customers?q=tech", "Showing 1 of 3 customers"},
		{"/customers?q=zzz", "No customers found matching your search."},
		{"/contacts", "John Smith"},
		{"/deals?stage=negotiation", "Enterprise Software License"},
		{"/pipeline", "Total Pipeline Value"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, tt.path, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}

	for _, path := range []string{"/customers?industry=Farming", "/contacts?status=sleeping", "/deals?stage=won"} {
		rec := do(t, h, http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain", path)
		assert.NotContains(t, rec.Body.String(), "{", path)
	}
}

func TestGraphPartial(t *testing.T) {
	_, h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/partials/graph?type=pipeline", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "stage_lead")

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/partials/graph?type=org", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/partials/graph?type=account&entity_id=zzz", "").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	_, h := newTestServer(t)

	do(t, h, http.MethodGet, "/healthz", "")
	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `crm_deals{stage="negotiation"} 1`)
	assert.Contains(t, body, "crm_pipeline_value 225000")
	assert.Contains(t, body, `crm_http_requests_total{method="GET",route="/healthz",status="200"} 1`)
}

func TestStartStopsOnCancel(t *testing.T) {
	srv, _ := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
