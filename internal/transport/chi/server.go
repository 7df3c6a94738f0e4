// Package chi exposes the mentor search pipeline over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mentorhub/mentorsearch/internal/domain"
	"github.com/mentorhub/mentorsearch/internal/domain/mentor"
	logpkg "github.com/mentorhub/mentorsearch/internal/logger"
	healthuc "github.com/mentorhub/mentorsearch/internal/usecase/health"
	searchuc "github.com/mentorhub/mentorsearch/internal/usecase/search"
	"github.com/mentorhub/mentorsearch/internal/version"
)

// Error response codes returned to clients.
const (
	CodeBadRequest        = "bad_request"
	CodeValidationFailed  = "validation_failed"
	CodeTranslationFailed = "translation_failed"
	CodeCompletionFailed  = "completion_provider_error"
	CodeStoreUnavailable  = "store_unavailable"
	CodeUnsupportedQuery  = "unsupported_query"
	CodeInternalError     = "internal_error"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MentorStore stores and enumerates mentor records.
type MentorStore interface {
	Upsert(ctx context.Context, rec mentor.Record) error
	List(ctx context.Context) ([]mentor.Record, error)
	Count(ctx context.Context) (int, error)
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server routes HTTP requests to the search pipeline and mentor store.
type Server struct {
	search        *searchuc.Service
	mentors       MentorStore
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	mentors MentorStore,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:  search,
		mentors: mentors,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrMissingRequiredField, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrInvalidRange, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrMissingProfessionArea, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrNoPayloadFound, http.StatusUnprocessableEntity, CodeTranslationFailed),
		sentinelHandler(domain.ErrMalformedPayload, http.StatusUnprocessableEntity, CodeTranslationFailed),
		sentinelHandler(domain.ErrCompletionFailure, http.StatusBadGateway, CodeCompletionFailed),
		sentinelHandler(domain.ErrUnsupportedPredicates, http.StatusBadRequest, CodeUnsupportedQuery),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable, CodeStoreUnavailable),
	}
	return s
}

// Routes mounts all handlers on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/api/v1/search", s.SearchMentors)
	r.Post("/api/v1/mentors", s.UpsertMentor)
	r.Get("/api/v1/mentors", s.ListMentors)
	r.Get("/search/{prompt}", s.SearchByPrompt)
	r.Get("/healthz", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// SearchRequest carries a free-text search query.
type SearchRequest struct {
	Query string `json:"query"`
}

// SearchResponse wraps the matching mentor records.
type SearchResponse struct {
	Mentors []mentor.Record `json:"mentors"`
	Total   int             `json:"total"`
}

// SearchMentors handles POST /api/v1/search.
func (s *Server) SearchMentors(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.Query == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "Search query is required")
		return
	}

	records, err := s.search.Search(r.Context(), req.Query)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	if records == nil {
		records = []mentor.Record{}
	}
	writeJSON(w, http.StatusOK, SearchResponse{Mentors: records, Total: len(records)})
}

// SearchByPrompt handles GET /search/{prompt}. The prompt is URL-escaped
// free text; the response is a bare array for legacy clients.
func (s *Server) SearchByPrompt(w http.ResponseWriter, r *http.Request) {
	prompt := chi.URLParam(r, "prompt")
	if decoded, err := url.PathUnescape(prompt); err == nil {
		prompt = decoded
	}
	if prompt == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "Search prompt is required")
		return
	}

	records, err := s.search.Search(r.Context(), prompt)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	if records == nil {
		records = []mentor.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

// UpsertMentor handles POST /api/v1/mentors.
func (s *Server) UpsertMentor(w http.ResponseWriter, r *http.Request) {
	var rec mentor.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := rec.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return
	}

	if err := s.mentors.Upsert(r.Context(), rec); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

// ListMentors handles GET /api/v1/mentors. Total reflects the index size,
// which can briefly trail the key scan while the server reindexes.
func (s *Server) ListMentors(w http.ResponseWriter, r *http.Request) {
	records, err := s.mentors.List(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	total, err := s.mentors.Count(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	if records == nil {
		records = []mentor.Record{}
	}
	writeJSON(w, http.StatusOK, SearchResponse{Mentors: records, Total: total})
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status":  report.Status,
		"checks":  report.Checks,
		"version": version.String(),
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrMissingRequiredField,
		domain.ErrInvalidRange,
		domain.ErrMissingProfessionArea,
		domain.ErrNoPayloadFound,
		domain.ErrMalformedPayload,
		domain.ErrCompletionFailure,
		domain.ErrUnsupportedPredicates,
		domain.ErrStoreUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContextOr(r.Context(), s.logger)
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
