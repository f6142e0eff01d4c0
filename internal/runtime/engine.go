// Package runtime implements the page lifecycle service: the single place
// that turns a show or update request into page construction, validation,
// persistence and redirect-target resolution. It is also the only writer of
// the artifact's answer store.
package runtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/probationforms/formflow/internal/logging"
	"github.com/probationforms/formflow/pkg/domain"
	"github.com/probationforms/formflow/pkg/observability"
	"github.com/probationforms/formflow/pkg/ports"
	"github.com/probationforms/formflow/pkg/registry"
)

// Engine orchestrates the page lifecycle over a registry, a persistence
// store and the data services. It holds no per-request state; every request
// re-fetches the artifact from the store.
type Engine struct {
	registry *registry.Registry
	store    ports.ArtifactStore
	services ports.DataServices
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithDataServices injects the read-only lookup services used by page
// initialization.
func WithDataServices(services ports.DataServices) EngineOption {
	return func(e *Engine) {
		e.services = services
	}
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(metrics *observability.Metrics) EngineOption {
	return func(e *Engine) {
		e.metrics = metrics
	}
}

// NewEngine creates an engine over the given registry and store.
func NewEngine(reg *registry.Registry, store ports.ArtifactStore, opts ...EngineOption) *Engine {
	e := &Engine{
		registry: reg,
		store:    store,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry exposes the journey structure for tasklist and summary views.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// Show resolves and constructs a page for rendering. The candidate body is,
// in order of preference: flash-restored invalid input, the body already
// stored for the page, or empty. Flash-carried validation messages are
// returned alongside for inline display.
func (e *Engine) Show(ctx context.Context, req domain.Request) (*domain.PageView, error) {
	artifact, err := e.store.Find(ctx, req.Token, req.ArtifactID)
	if err != nil {
		return nil, err
	}

	body := artifact.PageBody(req.TaskID, req.PageID)
	var flashErrors map[string]string
	if req.Flash != nil {
		if req.Flash.UserInput != nil {
			body = req.Flash.UserInput
		}
		flashErrors = req.Flash.Errors
	}

	page, err := e.buildPage(ctx, req, body, artifact)
	if err != nil {
		return nil, err
	}

	e.metrics.PageShown(req.TaskID, req.PageID)
	e.logger.Debug("page shown",
		"artifact", req.ArtifactID, "task", req.TaskID, "page", req.PageID)

	return &domain.PageView{
		TaskID:   req.TaskID,
		Page:     page,
		Artifact: artifact,
		Errors:   flashErrors,
	}, nil
}

// Update validates a posted body and, when valid, persists the page's
// allowlisted answers with exactly one store write and resolves the next
// page. An invalid body fails with a *domain.ValidationError carrying the
// full field mapping; nothing is persisted.
func (e *Engine) Update(ctx context.Context, req domain.Request) (*domain.UpdateResult, error) {
	artifact, err := e.store.Find(ctx, req.Token, req.ArtifactID)
	if err != nil {
		return nil, err
	}

	page, err := e.buildPage(ctx, req, req.Body, artifact)
	if err != nil {
		return nil, err
	}

	if errs := page.Errors(); len(errs) > 0 {
		e.metrics.PageSubmitted(req.TaskID, req.PageID, "invalid")
		e.metrics.ValidationFailed(req.TaskID, req.PageID, len(errs))
		return nil, &domain.ValidationError{Errors: errs}
	}

	updated := artifact.SetAnswers(req.TaskID, req.PageID, page.Body())
	persisted, err := e.store.Update(ctx, req.Token, updated)
	if err != nil {
		return nil, fmt.Errorf("persisting answers for %s/%s: %w", req.TaskID, req.PageID, err)
	}
	e.metrics.ArtifactWritten()
	e.metrics.PageSubmitted(req.TaskID, req.PageID, "saved")

	next, err := page.Next()
	if err != nil {
		return nil, err
	}

	e.logger.Info("page saved",
		"artifact", req.ArtifactID, "task", req.TaskID, "page", req.PageID, "next", next)

	return &domain.UpdateResult{Next: next, Artifact: persisted}, nil
}

// buildPage resolves the registry entry, runs the factory over the candidate
// body, and awaits the page's Initialize hook when it declares one.
func (e *Engine) buildPage(ctx context.Context, req domain.Request, body map[string]any, artifact *domain.Artifact) (domain.Page, error) {
	def, err := e.registry.GetPage(req.TaskID, req.PageID)
	if err != nil {
		return nil, err
	}

	page, err := def.New(body, artifact, domain.PageContext{From: req.From})
	if err != nil {
		return nil, err
	}

	if init, ok := page.(ports.Initializer); ok {
		if e.services == (ports.DataServices{}) {
			return nil, fmt.Errorf("page %s/%s needs data services, but none are configured", req.TaskID, req.PageID)
		}
		if err := init.Initialize(ctx, req.Token, e.services); err != nil {
			return nil, fmt.Errorf("initializing page %s/%s: %w", req.TaskID, req.PageID, err)
		}
	}

	return page, nil
}
