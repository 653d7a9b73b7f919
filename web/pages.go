// ABOUTME: HTML page handlers for the dashboard, list screens and pipeline board
// ABOUTME: Filters come from q, status and industry/stage query parameters
package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/harperreed/pipeline/filter"
	"github.com/harperreed/pipeline/metrics"
	"github.com/harperreed/pipeline/models"
	"github.com/harperreed/pipeline/store"
	"github.com/harperreed/pipeline/viz"
)

func criteriaFrom(r *http.Request, statusParam, categoryParam string) filter.Criteria {
	q := r.URL.Query()
	c := filter.Criteria{
		SearchTerm: q.Get("q"),
		Status:     q.Get(statusParam),
	}
	if categoryParam != "" {
		c.Category = q.Get(categoryParam)
	}
	return c
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()

	dash, err := s.fmt.Dashboard(metrics.Dashboard(snap, s.recentLimit))
	s.logFormatErrors("dashboard", err)
	pipeline, err := s.fmt.Pipeline(snap.Deals)
	s.logFormatErrors("dashboard", err)

	data := map[string]interface{}{
		"Dashboard":       dash,
		"Pipeline":        pipeline,
		"Title":           "Dashboard",
		"ContentTemplate": "dashboard-content",
	}
	s.renderTemplate(w, "layout.html", data)
}

func (s *Server) handleCustomers(w http.ResponseWriter, r *http.Request) {
	all := s.store.Customers()
	crit := criteriaFrom(r, "status", "industry")

	shown, err := filter.Customers(all, crit)
	if err != nil {
		writePageError(w, err)
		return
	}

	data := map[string]interface{}{
		"List":            s.fmt.CustomerList(shown, len(all), crit.Active()),
		"Criteria":        crit,
		"Statuses":        models.CustomerStatuses,
		"Industries":      metrics.DistinctIndustries(all),
		"Title":           "Customers",
		"ContentTemplate": "customers-content",
	}
	s.renderTemplate(w, "layout.html", data)
}

func (s *Server) handleContacts(w http.ResponseWriter, r *http.Request) {
	all := s.store.Contacts()
	crit := criteriaFrom(r, "status", "")

	shown, err := filter.Contacts(all, crit)
	if err != nil {
		writePageError(w, err)
		return
	}

	data := map[string]interface{}{
		"List":            s.fmt.ContactList(shown, len(all), crit.Active()),
		"Criteria":        crit,
		"Statuses":        models.ContactStatuses,
		"Title":           "Contacts",
		"ContentTemplate": "contacts-content",
	}
	s.renderTemplate(w, "layout.html", data)
}

func (s *Server) handleDeals(w http.ResponseWriter, r *http.Request) {
	all := s.store.Deals()
	crit := criteriaFrom(r, "stage", "")

	shown, err := filter.Deals(all, crit)
	if err != nil {
		writePageError(w, err)
		return
	}

	list, err := s.fmt.DealList(shown, len(all), crit.Active())
	s.logFormatErrors("deals", err)
	summary, err := s.fmt.Pipeline(all)
	s.logFormatErrors("deals", err)

	data := map[string]interface{}{
		"List":            list,
		"Summary":         summary,
		"Criteria":        crit,
		"Stages":          models.Stages,
		"Title":           "Deals",
		"ContentTemplate": "deals-content",
	}
	s.renderTemplate(w, "layout.html", data)
}

func (s *Server) handlePipeline(w http.ResponseWriter, r *http.Request) {
	pipeline, err := s.fmt.Pipeline(s.store.Deals())
	s.logFormatErrors("pipeline", err)

	data := map[string]interface{}{
		"Pipeline":        pipeline,
		"Stages":          models.Stages,
		"Title":           "Pipeline",
		"ContentTemplate": "pipeline-content",
	}
	s.renderTemplate(w, "layout.html", data)
}

func (s *Server) handleGraphPartial(w http.ResponseWriter, r *http.Request) {
	dot, err := s.graph(r.Context(), r.URL.Query().Get("type"), r.URL.Query().Get("entity_id"))
	if err != nil {
		writeError(w, err)
		return
	}

	data := map[string]interface{}{
		"DOT": dot,
	}
	s.renderTemplate(w, "graph.html", data)
}

func (s *Server) graph(ctx context.Context, kind, entityID string) (string, error) {
	generator := viz.NewGraphGenerator(s.store.Snapshot(), s.fmt)
	switch kind {
	case "", "pipeline":
		return generator.GeneratePipelineGraph(ctx)
	case "account":
		if _, err := s.store.Customer(entityID); err != nil {
			return "", err
		}
		return generator.GenerateAccountGraph(ctx, entityID)
	default:
		return "", &models.ValidationError{Field: "type", Value: kind, Reason: "must be pipeline or account"}
	}
}

// writePageError is writeError for browser routes: plain text, same status codes.
func writePageError(w http.ResponseWriter, err error) {
	var ves models.ValidationErrors
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ves), errors.As(err, &ve):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
