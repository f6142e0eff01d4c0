package ports

import (
	"context"

	"github.com/probationforms/formflow/pkg/domain"
)

// ArtifactStore is the persistence capability backing a journey. The
// lifecycle engine performs exactly one Update per successful page save;
// the whole artifact is re-saved with the single task/page slice replaced.
//
// Returns domain.ErrArtifactNotFound when the ID is unknown. Any other
// failure propagates upward undecorated; retries and backoff belong to the
// transport behind the implementation.
type ArtifactStore interface {
	// Find retrieves the artifact by ID.
	Find(ctx context.Context, token, id string) (*domain.Artifact, error)

	// Update replaces the stored artifact and returns the persisted copy.
	Update(ctx context.Context, token string, artifact *domain.Artifact) (*domain.Artifact, error)
}
