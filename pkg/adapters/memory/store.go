// Package memory provides an in-memory ArtifactStore, used by tests and by
// the server when no Redis backend is configured.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/probationforms/formflow/pkg/domain"
)

// Store implements ports.ArtifactStore in memory. Safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	data map[string]*domain.Artifact
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Artifact),
	}
}

// Create registers a new artifact. Creating over an existing ID replaces it.
func (s *Store) Create(ctx context.Context, token string, artifact *domain.Artifact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[artifact.ID] = cloneArtifact(artifact)
	return nil
}

// Find retrieves the artifact. The returned copy is isolated: mutating it
// does not touch the stored document.
func (s *Store) Find(ctx context.Context, token, id string) (*domain.Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	artifact, ok := s.data[id]
	if !ok {
		return nil, domain.ErrArtifactNotFound
	}
	return cloneArtifact(artifact), nil
}

// Update replaces the stored document wholesale.
func (s *Store) Update(ctx context.Context, token string, artifact *domain.Artifact) (*domain.Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[artifact.ID]; !ok {
		return nil, domain.ErrArtifactNotFound
	}
	s.data[artifact.ID] = cloneArtifact(artifact)
	return cloneArtifact(artifact), nil
}

// Delete removes the artifact.
func (s *Store) Delete(ctx context.Context, token, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the stored artifact IDs.
func (s *Store) List(ctx context.Context, token string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}

func cloneArtifact(src *domain.Artifact) *domain.Artifact {
	next := *src
	next.Data = make(domain.FormData, len(src.Data))
	for taskID, pages := range src.Data {
		copied := make(map[string]map[string]any, len(pages))
		for pageID, body := range pages {
			copiedBody := make(map[string]any, len(body))
			for k, v := range body {
				copiedBody[k] = cloneValue(v)
			}
			copied[pageID] = copiedBody
		}
		next.Data[taskID] = copied
	}
	return &next
}

// cloneValue copies the container types that page bodies actually hold, so
// a caller mutating a slice or nested map on a returned artifact cannot
// reach the stored record.
func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case []int:
		return slices.Clone(val)
	case []string:
		return slices.Clone(val)
	default:
		return v
	}
}
