package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probationforms/formflow/pkg/adapters/memory"
	"github.com/probationforms/formflow/pkg/domain"
	"github.com/probationforms/formflow/pkg/session"
)

// slowStore adds latency around a real store to widen race windows.
type slowStore struct {
	*memory.Store
}

func (s *slowStore) Find(ctx context.Context, token, id string) (*domain.Artifact, error) {
	time.Sleep(5 * time.Millisecond)
	return s.Store.Find(ctx, token, id)
}

func (s *slowStore) Update(ctx context.Context, token string, artifact *domain.Artifact) (*domain.Artifact, error) {
	time.Sleep(5 * time.Millisecond)
	return s.Store.Update(ctx, token, artifact)
}

func TestManager_SerializesReadModifyWrite(t *testing.T) {
	store := &slowStore{Store: memory.NewStore()}
	manager := session.NewManager(store)
	ctx := context.Background()
	id := "race-test"
	token := "token"

	_, err := manager.FindOrCreate(ctx, token, id, "X320741")
	require.NoError(t, err)

	// Each goroutine answers a distinct page under the lock. Without
	// serialization, concurrent read-modify-write cycles would drop
	// sibling pages.
	pages := []string{"sentence-type", "release-date", "placement-date", "oral-hearing"}
	var wg sync.WaitGroup
	for _, pageID := range pages {
		wg.Add(1)
		go func(pageID string) {
			defer wg.Done()
			err := manager.WithLock(ctx, id, func(ctx context.Context) error {
				artifact, err := store.Store.Find(ctx, token, id)
				if err != nil {
					return err
				}
				updated := artifact.SetAnswers("basic-information", pageID, map[string]any{
					"answered": "yes",
				})
				_, err = store.Store.Update(ctx, token, updated)
				return err
			})
			assert.NoError(t, err)
		}(pageID)
	}
	wg.Wait()

	final, err := manager.Find(ctx, token, id)
	require.NoError(t, err)
	for _, pageID := range pages {
		assert.True(t, final.HasPage("basic-information", pageID),
			"page %q lost to a concurrent write", pageID)
	}
}

func TestManager_FindOrCreate(t *testing.T) {
	manager := session.NewManager(memory.NewStore())
	ctx := context.Background()

	created, err := manager.FindOrCreate(ctx, "token", "app-1", "X320741")
	require.NoError(t, err)
	assert.Equal(t, "X320741", created.CRN)

	// Second call loads the reserved record instead of recreating it.
	seeded := created.SetAnswers("basic-information", "sentence-type", map[string]any{
		"sentenceType": "life",
	})
	_, err = manager.Update(ctx, "token", seeded)
	require.NoError(t, err)

	loaded, err := manager.FindOrCreate(ctx, "token", "app-1", "ignored")
	require.NoError(t, err)
	assert.Equal(t, "X320741", loaded.CRN)
	assert.Equal(t, "life", loaded.GetAnswer("basic-information", "sentence-type", "sentenceType"))
}

func TestManager_FindMissing(t *testing.T) {
	manager := session.NewManager(memory.NewStore())

	_, err := manager.Find(context.Background(), "token", "nope")
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
}
