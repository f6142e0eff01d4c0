package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probationforms/formflow/pkg/adapters/memory"
	"github.com/probationforms/formflow/pkg/domain"
	"github.com/probationforms/formflow/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunArtifactStoreContract(t, memory.NewStore())
}

// Typed slices pass through this store without a serialization boundary, so
// the clone has to copy them element by element.
func TestMemoryStore_SliceAnswersAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	artifact := domain.NewArtifact("app-1").
		SetAnswers("oasys-import", "optional-oasys-sections", map[string]any{
			"needsLinkedToReoffending": []int{1, 2},
		})
	require.NoError(t, store.Create(ctx, "token", artifact))

	first, err := store.Find(ctx, "token", "app-1")
	require.NoError(t, err)
	first.Data["oasys-import"]["optional-oasys-sections"]["needsLinkedToReoffending"].([]int)[0] = 99

	second, err := store.Find(ctx, "token", "app-1")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2},
		second.GetAnswer("oasys-import", "optional-oasys-sections", "needsLinkedToReoffending"))
}
