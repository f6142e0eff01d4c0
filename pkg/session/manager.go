package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/probationforms/formflow/internal/logging"
	"github.com/probationforms/formflow/pkg/domain"
	"github.com/probationforms/formflow/pkg/ports"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager wraps an artifact store with per-artifact locking. Locks are
// reference counted so the map never accumulates entries for idle artifacts.
type Manager struct {
	store ports.ManagedArtifactStore

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker  ports.DistributedLocker
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking across replicas.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL bounds how long a crashed holder can wedge a distributed
// lock. Ignored without a locker.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for deferred errors.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a session manager over the given store.
func NewManager(store ports.ManagedArtifactStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: 30 * time.Second,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock entry.mu and call release(id) after unlocking.
func (m *Manager) acquire(id string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		entry = &lockEntry{}
		m.locks[id] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry at zero.
func (m *Manager) release(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, id)
	}
}

// Find retrieves an artifact while holding its lock.
func (m *Manager) Find(ctx context.Context, token, id string) (*domain.Artifact, error) {
	var artifact *domain.Artifact
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		var err error
		artifact, err = m.store.Find(ctx, token, id)
		return err
	})
	return artifact, err
}

// FindOrCreate loads the artifact, creating an empty one with the given CRN
// when the ID is unknown. The create is persisted immediately to reserve
// the ID.
func (m *Manager) FindOrCreate(ctx context.Context, token, id, crn string) (*domain.Artifact, error) {
	var artifact *domain.Artifact
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		var err error
		artifact, err = m.store.Find(ctx, token, id)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrArtifactNotFound) {
			return fmt.Errorf("failed to check artifact existence: %w", err)
		}

		artifact = domain.NewArtifact(id)
		artifact.CRN = crn
		if err := m.store.Create(ctx, token, artifact); err != nil {
			return fmt.Errorf("failed to initialize artifact: %w", err)
		}
		return nil
	})
	return artifact, err
}

// Update persists the artifact while holding its lock.
func (m *Manager) Update(ctx context.Context, token string, artifact *domain.Artifact) (*domain.Artifact, error) {
	var persisted *domain.Artifact
	err := m.WithLock(ctx, artifact.ID, func(ctx context.Context) error {
		var err error
		persisted, err = m.store.Update(ctx, token, artifact)
		return err
	})
	return persisted, err
}

// Delete removes the artifact from the store.
func (m *Manager) Delete(ctx context.Context, token, id string) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		return m.store.Delete(ctx, token, id)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context, token string) ([]string, error) {
	return m.store.List(ctx, token)
}

// Store returns the underlying artifact store.
func (m *Manager) Store() ports.ManagedArtifactStore {
	return m.store
}

// WithLock executes fn while holding the lock for the artifact. A full
// show-validate-save cycle runs under one WithLock so concurrent posts to
// the same application serialize instead of losing writes.
func (m *Manager) WithLock(ctx context.Context, id string, fn func(context.Context) error) error {
	entry := m.acquire(id)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(id)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, id, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"artifact_id", id,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
