package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/probationforms/formflow/pkg/domain"
)

type nopStore struct{}

func (nopStore) Find(ctx context.Context, token, id string) (*domain.Artifact, error) {
	return domain.NewArtifact(id), nil
}
func (nopStore) Update(ctx context.Context, token string, artifact *domain.Artifact) (*domain.Artifact, error) {
	return artifact, nil
}
func (nopStore) Create(ctx context.Context, token string, artifact *domain.Artifact) error {
	return nil
}
func (nopStore) Delete(ctx context.Context, token, id string) error { return nil }
func (nopStore) List(ctx context.Context, token string) ([]string, error) {
	return nil, nil
}

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager(nopStore{})
	ctx := context.Background()
	count := 10000

	for i := 0; i < count; i++ {
		id := fmt.Sprintf("application-%d", i)
		_, _ = mgr.Update(ctx, "token", domain.NewArtifact(id))
		_ = mgr.Delete(ctx, "token", id)
	}

	if remaining := len(mgr.locks); remaining != 0 {
		t.Errorf("memory leak: %d locks remaining in memory after Delete", remaining)
	}
}
