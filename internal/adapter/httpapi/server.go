// Package httpapi exposes the advisory engines over HTTP alongside the
// service's health, readiness, and metrics endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agrichain/advisory-service/internal/advisor"
	"github.com/agrichain/advisory-service/internal/domain"
)

// dateLayout is the wire format for sowing dates.
const dateLayout = "2006-01-02"

// AdvisoryService is the advisor surface the API serves.
type AdvisoryService interface {
	Harvest(ctx context.Context, req advisor.HarvestRequest) (domain.HarvestRecommendation, error)
	Mandis(ctx context.Context, req advisor.MandiRequest) ([]domain.MandiOption, error)
	Spoilage(ctx context.Context, req advisor.SpoilageRequest) (domain.SpoilageAssessment, error)
	FarmContext(ctx context.Context, req advisor.ContextRequest) (advisor.FarmContext, error)
}

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the advisory API plus health, readiness, and metrics routes.
type Server struct {
	httpServer *http.Server
	advisor    AdvisoryService
	logger     *slog.Logger
}

// NewServer creates the HTTP server and registers all routes.
func NewServer(addr string, svc AdvisoryService, ready ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		advisor: svc,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /v1/harvest", s.handleHarvest)
	mux.HandleFunc("GET /v1/mandis", s.handleMandis)
	mux.HandleFunc("GET /v1/spoilage", s.handleSpoilage)
	mux.HandleFunc("GET /v1/context", s.handleContext)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func (s *Server) handleHarvest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sowingDate, err := parseDate(q.Get("sowing_date"), "sowing_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	req := advisor.HarvestRequest{
		Crop:       q.Get("crop"),
		District:   q.Get("district"),
		SowingDate: sowingDate,
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rec, err := s.advisor.Harvest(r.Context(), req)
	if err != nil {
		s.serveError(w, "harvest", err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleMandis(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	quantity, err := parseFloat(q.Get("quantity_qtl"), "quantity_qtl")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	topN, err := parseOptionalInt(q.Get("top_n"), "top_n")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	req := advisor.MandiRequest{
		Crop:        q.Get("crop"),
		District:    q.Get("district"),
		QuantityQtl: quantity,
		TopN:        topN,
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	ranked, err := s.advisor.Mandis(r.Context(), req)
	if err != nil {
		s.serveError(w, "mandis", err)
		return
	}
	writeJSON(w, http.StatusOK, ranked)
}

func (s *Server) handleSpoilage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	transit, err := parseOptionalFloat(q.Get("transit_hours"), "transit_hours")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	req := advisor.SpoilageRequest{
		Crop:         q.Get("crop"),
		District:     q.Get("district"),
		StorageType:  q.Get("storage_type"),
		TransitHours: transit,
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	assessment, err := s.advisor.Spoilage(r.Context(), req)
	if err != nil {
		s.serveError(w, "spoilage", err)
		return
	}
	writeJSON(w, http.StatusOK, assessment)
}

func (s *Server) handleContext(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sowingDate, err := parseDate(q.Get("sowing_date"), "sowing_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	quantity, err := parseFloat(q.Get("quantity_qtl"), "quantity_qtl")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	transit, err := parseOptionalFloat(q.Get("transit_hours"), "transit_hours")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	req := advisor.ContextRequest{
		Crop:         q.Get("crop"),
		District:     q.Get("district"),
		QuantityQtl:  quantity,
		StorageType:  q.Get("storage_type"),
		TransitHours: transit,
		SowingDate:   sowingDate,
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	fc, err := s.advisor.FarmContext(r.Context(), req)
	if err != nil {
		s.serveError(w, "context", err)
		return
	}
	writeJSON(w, http.StatusOK, fc)
}

func (s *Server) serveError(w http.ResponseWriter, engine string, err error) {
	s.logger.Error("advisory request failed", "engine", engine, "error", err)
	writeError(w, http.StatusInternalServerError, fmt.Errorf("internal error"))
}

func parseDate(value, name string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%s is required", name)
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be YYYY-MM-DD", name)
	}
	return t, nil
}

func parseFloat(value, name string) (float64, error) {
	if value == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	return f, nil
}

func parseOptionalFloat(value, name string) (float64, error) {
	if value == "" {
		return 0, nil
	}
	return parseFloat(value, name)
}

func parseOptionalInt(value, name string) (int, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return n, nil
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
