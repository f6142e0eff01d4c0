package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probationforms/formflow/pkg/domain"
)

// ArtifactAdmin provides the management operations the controller layer uses
// outside the engine: creating new applications and enumerating them.
type ArtifactAdmin interface {
	Create(ctx context.Context, token string, artifact *domain.Artifact) error
	Delete(ctx context.Context, token, id string) error
	List(ctx context.Context, token string) ([]string, error)
}

// ManagedArtifactStore is what a full store adapter implements.
type ManagedArtifactStore interface {
	ArtifactStore
	ArtifactAdmin
}

// RunArtifactStoreContract verifies that a store adapter adheres to the
// ArtifactStore contract, including isolation of the returned copies.
func RunArtifactStoreContract(t *testing.T, store ManagedArtifactStore) {
	ctx := context.Background()
	token := "contract-token"
	id := "contract-artifact-" + time.Now().Format("20060102150405")

	t.Run("Create and Find", func(t *testing.T) {
		artifact := domain.NewArtifact(id)
		artifact.CRN = "X320741"
		artifact = artifact.SetAnswers("basic-information", "sentence-type", map[string]any{
			"sentenceType": "standardDeterminate",
		})

		require.NoError(t, store.Create(ctx, token, artifact))

		found, err := store.Find(ctx, token, id)
		require.NoError(t, err)
		assert.Equal(t, id, found.ID)
		assert.Equal(t, "X320741", found.CRN)
		assert.Equal(t, "standardDeterminate",
			found.GetAnswer("basic-information", "sentence-type", "sentenceType"))
	})

	t.Run("Find Non-Existent", func(t *testing.T) {
		_, err := store.Find(ctx, token, "non-existent-"+id)
		assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
	})

	t.Run("Update replaces the document", func(t *testing.T) {
		found, err := store.Find(ctx, token, id)
		require.NoError(t, err)

		updated := found.SetAnswers("basic-information", "release-date", map[string]any{
			"knowReleaseDate": "no",
		})
		persisted, err := store.Update(ctx, token, updated)
		require.NoError(t, err)
		assert.Equal(t, "no",
			persisted.GetAnswer("basic-information", "release-date", "knowReleaseDate"))

		reloaded, err := store.Find(ctx, token, id)
		require.NoError(t, err)
		assert.Equal(t, "no",
			reloaded.GetAnswer("basic-information", "release-date", "knowReleaseDate"))
		assert.Equal(t, "standardDeterminate",
			reloaded.GetAnswer("basic-information", "sentence-type", "sentenceType"))
	})

	t.Run("Find returns isolated copies", func(t *testing.T) {
		seeded, err := store.Find(ctx, token, id)
		require.NoError(t, err)
		_, err = store.Update(ctx, token, seeded.SetAnswers(
			"oasys-import", "optional-oasys-sections", map[string]any{
				"otherNeeds": []any{"3", "10"},
			}))
		require.NoError(t, err)

		first, err := store.Find(ctx, token, id)
		require.NoError(t, err)
		first.Data["basic-information"]["sentence-type"]["sentenceType"] = "tampered"
		first.Data["oasys-import"]["optional-oasys-sections"]["otherNeeds"].([]any)[0] = "tampered"

		second, err := store.Find(ctx, token, id)
		require.NoError(t, err)
		assert.Equal(t, "standardDeterminate",
			second.GetAnswer("basic-information", "sentence-type", "sentenceType"))
		assert.Equal(t, []any{"3", "10"},
			second.GetAnswer("oasys-import", "optional-oasys-sections", "otherNeeds"))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, token, id))
		_, err := store.Find(ctx, token, id)
		assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
	})

	t.Run("List", func(t *testing.T) {
		id1 := id + "-1"
		id2 := id + "-2"
		require.NoError(t, store.Create(ctx, token, domain.NewArtifact(id1)))
		require.NoError(t, store.Create(ctx, token, domain.NewArtifact(id2)))
		defer func() {
			_ = store.Delete(ctx, token, id1)
			_ = store.Delete(ctx, token, id2)
		}()

		ids, err := store.List(ctx, token)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
