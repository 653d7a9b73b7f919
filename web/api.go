// ABOUTME: JSON API handlers for listing, adding and moving CRM records
// ABOUTME: Maps ValidationError to 400 and unknown ids to 404
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/harperreed/pipeline/filter"
	"github.com/harperreed/pipeline/forms"
	"github.com/harperreed/pipeline/metrics"
	"github.com/harperreed/pipeline/models"
	"github.com/harperreed/pipeline/present"
	"github.com/harperreed/pipeline/store"
)

type listResponse[T any] struct {
	Total int `json:"total"`
	Shown int `json:"shown"`
	Items []T `json:"items"`
}

type errorResponse struct {
	Error  string                  `json:"error"`
	Fields models.ValidationErrors `json:"fields,omitempty"`
}

type pipelineResponse struct {
	Summary metrics.PipelineSummary `json:"summary"`
	Board   present.PipelineView    `json:"board"`
}

func (s *Server) apiCustomers(w http.ResponseWriter, r *http.Request) {
	all := s.store.Customers()
	shown, err := filter.Customers(all, criteriaFrom(r, "status", "industry"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[models.Customer]{Total: len(all), Shown: len(shown), Items: shown})
}

func (s *Server) apiContacts(w http.ResponseWriter, r *http.Request) {
	all := s.store.Contacts()
	shown, err := filter.Contacts(all, criteriaFrom(r, "status", ""))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[models.Contact]{Total: len(all), Shown: len(shown), Items: shown})
}

func (s *Server) apiDeals(w http.ResponseWriter, r *http.Request) {
	all := s.store.Deals()
	shown, err := filter.Deals(all, criteriaFrom(r, "stage", ""))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[models.Deal]{Total: len(all), Shown: len(shown), Items: shown})
}

func (s *Server) apiPipeline(w http.ResponseWriter, _ *http.Request) {
	deals := s.store.Deals()
	board, err := s.fmt.Pipeline(deals)
	s.logFormatErrors("api pipeline", err)
	writeJSON(w, http.StatusOK, pipelineResponse{Summary: metrics.Summarize(deals), Board: board})
}

func (s *Server) apiDashboard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, metrics.Dashboard(s.store.Snapshot(), s.recentLimit))
}

type moveStageRequest struct {
	Stage string `json:"stage"`
}

func (s *Server) apiMoveDeal(w http.ResponseWriter, r *http.Request) {
	var req moveStageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	stage, err := models.ParseStage(req.Stage)
	if err != nil {
		writeError(w, err)
		return
	}

	deal, err := s.store.MoveDeal(chi.URLParam(r, "id"), stage)
	if err != nil {
		writeError(w, err)
		return
	}
	s.log.Info().Str("deal", deal.ID).Str("stage", string(stage)).Msg("deal moved")
	writeJSON(w, http.StatusOK, deal)
}

func (s *Server) apiAddCustomer(w http.ResponseWriter, r *http.Request) {
	var in forms.CustomerInput
	if !decode(w, r, &in) {
		return
	}
	c, err := in.Build(time.Now())
	if err == nil {
		err = s.store.AddCustomer(c)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) apiAddContact(w http.ResponseWriter, r *http.Request) {
	var in forms.ContactInput
	if !decode(w, r, &in) {
		return
	}
	c, err := in.Build(time.Now())
	if err == nil {
		err = s.store.AddContact(c)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) apiAddDeal(w http.ResponseWriter, r *http.Request) {
	var in forms.DealInput
	if !decode(w, r, &in) {
		return
	}
	d, err := in.Build(time.Now())
	if err == nil {
		err = s.store.AddDeal(d)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid JSON body: %v", err)})
		return false
	}
	return true
}

// writeError maps domain errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	var ves models.ValidationErrors
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ves):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Fields: ves})
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Fields: models.ValidationErrors{ve}})
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	_ = enc.Encode(v)
}
