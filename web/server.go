// ABOUTME: Web UI server with embedded templates and a JSON API
// ABOUTME: Serves dashboard, list screens and the pipeline board at localhost:8080
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/harperreed/pipeline/present"
	"github.com/harperreed/pipeline/store"
)

//go:embed templates/*
var templatesFS embed.FS

type Server struct {
	store       *store.Memory
	fmt         *present.Formatter
	log         zerolog.Logger
	recentLimit int
	templates   *template.Template
	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
}

func NewServer(st *store.Memory, f *present.Formatter, log zerolog.Logger, recentLimit int) (*Server, error) {
	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"selected": func(a, b any) bool {
			return fmt.Sprint(a) == fmt.Sprint(b)
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		store:       st,
		fmt:         f,
		log:         log,
		recentLimit: recentLimit,
		templates:   tmpl,
		registry:    prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crm_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "crm_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
	s.registry.MustRegister(s.requests, s.latency, newPipelineCollector(st))
	return s, nil
}

// Handler builds the router. Exposed for tests.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Get("/", s.handleDashboard)
	r.Get("/customers", s.handleCustomers)
	r.Get("/contacts", s.handleContacts)
	r.Get("/deals", s.handleDeals)
	r.Get("/pipeline", s.handlePipeline)
	r.Get("/partials/graph", s.handleGraphPartial)

	r.Route("/api", func(r chi.Router) {
		r.Get("/customers", s.apiCustomers)
		r.Post("/customers", s.apiAddCustomer)
		r.Get("/contacts", s.apiContacts)
		r.Post("/contacts", s.apiAddContact)
		r.Get("/deals", s.apiDeals)
		r.Post("/deals", s.apiAddDeal)
		r.Post("/deals/{id}/stage", s.apiMoveDeal)
		r.Get("/pipeline", s.apiPipeline)
		r.Get("/dashboard", s.apiDashboard)
	})

	return r
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("starting web server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info().Msg("shutting down web server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down: %w", err)
		}
		return nil
	}
}

// instrument logs each request and records it in the request metrics.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		s.requests.WithLabelValues(r.Method, route, fmt.Sprint(status)).Inc()
		s.latency.WithLabelValues(route).Observe(time.Since(start).Seconds())
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Str("rid", middleware.GetReqID(r.Context())).
			Dur("latency", time.Since(start)).
			Msg("http")
	})
}

func (s *Server) renderTemplate(w http.ResponseWriter, name string, data interface{}) {
	// The data map carries ContentTemplate to pick the content block inside layout.html.
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.log.Error().Err(err).Str("template", name).Msg("template error")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// logFormatErrors records per-record formatting failures; the view still renders.
func (s *Server) logFormatErrors(view string, err error) {
	if err != nil {
		s.log.Warn().Err(err).Str("view", view).Msg("some values could not be formatted")
	}
}
