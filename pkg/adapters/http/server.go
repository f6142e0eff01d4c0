// Package http exposes the journey engine as a JSON API. Handlers translate
// the engine's error taxonomy into status codes; the transport carries no
// journey semantics of its own.
package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/probationforms/formflow/internal/logging"
	"github.com/probationforms/formflow/internal/runtime"
	"github.com/probationforms/formflow/pkg/domain"
	"github.com/probationforms/formflow/pkg/tasklist"
)

//go:embed openapi.yaml
var openapiSpec []byte

// Engine is the journey capability the transport needs. *formflow.Engine
// satisfies it.
type Engine interface {
	CreateApplication(ctx context.Context, token, crn string) (*domain.Artifact, error)
	ListApplications(ctx context.Context, token string) ([]string, error)
	ShowPage(ctx context.Context, req domain.Request) (*domain.PageView, error)
	UpdatePage(ctx context.Context, req domain.Request) (*domain.UpdateResult, error)
	Tasklist(ctx context.Context, token, id string) ([]tasklist.SectionView, error)
	Complete(ctx context.Context, token, id string) (bool, error)
	Review(ctx context.Context, token, id string) ([]runtime.TaskReview, error)
}

// Server holds the handler dependencies.
type Server struct {
	engine   Engine
	logger   *slog.Logger
	gatherer prometheus.Gatherer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets a structured logger for request-level events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsGatherer mounts a Prometheus /metrics endpoint over the given
// gatherer.
func WithMetricsGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// NewHandler builds the API router. The embedded OpenAPI document is
// loaded and validated up front so a malformed contract fails at startup,
// not on the first /openapi.yaml request.
func NewHandler(engine Engine, opts ...Option) (http.Handler, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openapiSpec)
	if err != nil {
		return nil, fmt.Errorf("loading OpenAPI document: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
	}

	s := &Server{
		engine: engine,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(openapiSpec)
	})
	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(requireBearerToken)
		r.Post("/applications", s.createApplication)
		r.Get("/applications", s.listApplications)
		r.Get("/applications/{applicationId}/tasklist", s.getTasklist)
		r.Get("/applications/{applicationId}/answers", s.getAnswers)
		r.Get("/applications/{applicationId}/tasks/{taskId}/pages/{pageId}", s.showPage)
		r.Put("/applications/{applicationId}/tasks/{taskId}/pages/{pageId}", s.updatePage)
	})

	return r, nil
}

type tokenKey struct{}

// requireBearerToken extracts the Authorization bearer token the engine
// forwards to its persistence and data-services collaborators.
func requireBearerToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), tokenKey{}, token)))
	})
}

func tokenFrom(r *http.Request) string {
	token, _ := r.Context().Value(tokenKey{}).(string)
	return token
}

func (s *Server) createApplication(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CRN string `json:"crn"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.CRN == "" {
		writeError(w, http.StatusBadRequest, "crn is required")
		return
	}

	artifact, err := s.engine.CreateApplication(r.Context(), tokenFrom(r), body.CRN)
	if err != nil {
		s.internalError(w, r, "create application", err)
		return
	}

	s.logger.Info("application created", "application", artifact.ID, "crn", artifact.CRN)
	writeJSON(w, http.StatusCreated, map[string]string{
		"id":  artifact.ID,
		"crn": artifact.CRN,
	})
}

func (s *Server) listApplications(w http.ResponseWriter, r *http.Request) {
	ids, err := s.engine.ListApplications(r.Context(), tokenFrom(r))
	if err != nil {
		s.internalError(w, r, "list applications", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ids": ids})
}

func (s *Server) getTasklist(w http.ResponseWriter, r *http.Request) {
	token := tokenFrom(r)
	id := chi.URLParam(r, "applicationId")

	sections, err := s.engine.Tasklist(r.Context(), token, id)
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}
	complete, err := s.engine.Complete(r.Context(), token, id)
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"sections": sections,
		"complete": complete,
	})
}

func (s *Server) getAnswers(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.engine.Review(r.Context(), tokenFrom(r), chi.URLParam(r, "applicationId"))
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

func (s *Server) showPage(w http.ResponseWriter, r *http.Request) {
	view, err := s.engine.ShowPage(r.Context(), domain.Request{
		Token:      tokenFrom(r),
		ArtifactID: chi.URLParam(r, "applicationId"),
		TaskID:     chi.URLParam(r, "taskId"),
		PageID:     chi.URLParam(r, "pageId"),
		From:       r.URL.Query().Get("from"),
	})
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}

	previous, err := view.Page.Previous()
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"name":     view.Page.Name(),
		"body":     view.Page.Body(),
		"errors":   view.Errors,
		"previous": previous,
	})
}

func (s *Server) updatePage(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.engine.UpdatePage(r.Context(), domain.Request{
		Token:      tokenFrom(r),
		ArtifactID: chi.URLParam(r, "applicationId"),
		TaskID:     chi.URLParam(r, "taskId"),
		PageID:     chi.URLParam(r, "pageId"),
		From:       r.URL.Query().Get("from"),
		Body:       body,
	})
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"next": result.Next})
}

// writeEngineError maps the engine's error taxonomy onto status codes.
func (s *Server) writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		valErr     *domain.ValidationError
		unknownErr *domain.UnknownPageError
		dataErr    *domain.SessionDataError
	)
	switch {
	case errors.As(err, &valErr):
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": valErr.Errors})
	case errors.As(err, &unknownErr):
		writeError(w, http.StatusNotFound, unknownErr.Error())
	case errors.Is(err, domain.ErrArtifactNotFound):
		writeError(w, http.StatusNotFound, "application not found")
	case errors.As(err, &dataErr):
		writeError(w, http.StatusConflict, dataErr.Error())
	default:
		s.internalError(w, r, "handle request", err)
	}
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, action string, err error) {
	s.logger.Error("request failed",
		"action", action,
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
		"err", err,
	)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
