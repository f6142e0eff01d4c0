package formflow

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/probationforms/formflow/internal/logging"
	"github.com/probationforms/formflow/internal/runtime"
	"github.com/probationforms/formflow/pkg/domain"
	"github.com/probationforms/formflow/pkg/observability"
	"github.com/probationforms/formflow/pkg/ports"
	"github.com/probationforms/formflow/pkg/registry"
	"github.com/probationforms/formflow/pkg/session"
	"github.com/probationforms/formflow/pkg/tasklist"
)

// Version is the library version, reported by the CLI.
const Version = "0.1.0"

// Engine is the high-level entry point for the formflow library. It wraps
// the internal page lifecycle service with per-application locking and the
// tasklist and review views, providing a single API for transports to
// consume.
type Engine struct {
	runtime  *runtime.Engine
	sessions *session.Manager
	registry *registry.Registry
	logger   *slog.Logger

	runtimeOpts []runtime.EngineOption
	sessionOpts []session.Option
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithDataServices injects the upstream lookup services pages may fetch
// reference data from during initialization.
func WithDataServices(services ports.DataServices) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithDataServices(services))
	}
}

// WithMetrics enables Prometheus instrumentation of the page lifecycle.
func WithMetrics(metrics *observability.Metrics) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithMetrics(metrics))
	}
}

// WithLocker enables distributed locking so concurrent updates to the same
// application serialize across replicas.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.sessionOpts = append(e.sessionOpts, session.WithLocker(locker))
	}
}

// WithLockTTL bounds how long a crashed replica can hold a distributed
// lock.
func WithLockTTL(ttl time.Duration) Option {
	return func(e *Engine) {
		e.sessionOpts = append(e.sessionOpts, session.WithLockTTL(ttl))
	}
}

// New initializes an Engine over a journey registry and an artifact store.
func New(reg *registry.Registry, store ports.ManagedArtifactStore, opts ...Option) *Engine {
	e := &Engine{
		registry: reg,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.runtimeOpts = append(e.runtimeOpts, runtime.WithLogger(e.logger))
	e.sessionOpts = append(e.sessionOpts, session.WithLogger(e.logger))

	e.sessions = session.NewManager(store, e.sessionOpts...)
	e.runtime = runtime.NewEngine(reg, store, e.runtimeOpts...)
	return e
}

// Registry exposes the journey structure.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// CreateApplication starts a new application for the person identified by
// CRN and persists the empty artifact immediately to reserve its ID.
func (e *Engine) CreateApplication(ctx context.Context, token, crn string) (*domain.Artifact, error) {
	return e.sessions.FindOrCreate(ctx, token, uuid.NewString(), crn)
}

// GetApplication loads an application.
func (e *Engine) GetApplication(ctx context.Context, token, id string) (*domain.Artifact, error) {
	return e.sessions.Find(ctx, token, id)
}

// ListApplications returns the IDs of the stored applications.
func (e *Engine) ListApplications(ctx context.Context, token string) ([]string, error) {
	return e.sessions.List(ctx, token)
}

// DeleteApplication removes an application.
func (e *Engine) DeleteApplication(ctx context.Context, token, id string) error {
	return e.sessions.Delete(ctx, token, id)
}

// ShowPage resolves and constructs a page for rendering.
func (e *Engine) ShowPage(ctx context.Context, req domain.Request) (*domain.PageView, error) {
	var view *domain.PageView
	err := e.sessions.WithLock(ctx, req.ArtifactID, func(ctx context.Context) error {
		var err error
		view, err = e.runtime.Show(ctx, req)
		return err
	})
	return view, err
}

// UpdatePage validates a posted body and persists the page's answers. The
// whole read-validate-write cycle runs under the application's lock.
func (e *Engine) UpdatePage(ctx context.Context, req domain.Request) (*domain.UpdateResult, error) {
	var result *domain.UpdateResult
	err := e.sessions.WithLock(ctx, req.ArtifactID, func(ctx context.Context) error {
		var err error
		result, err = e.runtime.Update(ctx, req)
		return err
	})
	return result, err
}

// Tasklist computes the sectioned task overview for an application.
func (e *Engine) Tasklist(ctx context.Context, token, id string) ([]tasklist.SectionView, error) {
	artifact, err := e.sessions.Find(ctx, token, id)
	if err != nil {
		return nil, err
	}
	return tasklist.View(e.registry, artifact)
}

// Complete reports whether every task is complete, gating submission.
func (e *Engine) Complete(ctx context.Context, token, id string) (bool, error) {
	artifact, err := e.sessions.Find(ctx, token, id)
	if err != nil {
		return false, err
	}
	return tasklist.Complete(e.registry, artifact)
}

// Review builds the check-your-answers view over the pages actually
// reached by the stored answers.
func (e *Engine) Review(ctx context.Context, token, id string) ([]runtime.TaskReview, error) {
	artifact, err := e.sessions.Find(ctx, token, id)
	if err != nil {
		return nil, err
	}
	return e.runtime.Review(ctx, token, artifact)
}
