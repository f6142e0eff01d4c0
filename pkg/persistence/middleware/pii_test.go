package middleware_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probationforms/formflow/pkg/adapters/memory"
	"github.com/probationforms/formflow/pkg/domain"
	"github.com/probationforms/formflow/pkg/persistence/middleware"
)

func TestPIIMiddleware_Masking(t *testing.T) {
	underlying := memory.NewStore()
	store := middleware.NewPIIMiddleware([]string{"nationalInsurance", "password"})(underlying)

	ctx := context.Background()
	artifact := domain.NewArtifact("app-1").SetAnswers("basic-information", "contact", map[string]any{
		"name":                    "John Doe",
		"nationalInsuranceNumber": "QQ123456C",
		"emergency": map[string]any{
			"phone":    "07700900000",
			"password": "secret123",
		},
	})

	require.NoError(t, store.Create(ctx, "token", artifact))

	// The caller's artifact keeps its plaintext answers.
	assert.Equal(t, "QQ123456C",
		artifact.GetAnswer("basic-information", "contact", "nationalInsuranceNumber"))

	stored, err := underlying.Find(ctx, "token", "app-1")
	require.NoError(t, err)
	body := stored.PageBody("basic-information", "contact")
	assert.Equal(t, "John Doe", body["name"])
	assert.Equal(t, "***", body["nationalInsuranceNumber"])

	emergency := body["emergency"].(map[string]any)
	assert.Equal(t, "07700900000", emergency["phone"])
	assert.Equal(t, "***", emergency["password"])
}

func TestPIIMiddleware_UpdateMasks(t *testing.T) {
	underlying := memory.NewStore()
	store := middleware.NewPIIMiddleware([]string{"^ssn"})(underlying)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "token", domain.NewArtifact("app-1")))

	updated := domain.NewArtifact("app-1").SetAnswers("basic-information", "contact", map[string]any{
		"ssnNumber": "999-99-9999",
	})
	persisted, err := store.Update(ctx, "token", updated)
	require.NoError(t, err)
	// The returned copy is the caller's plaintext view.
	assert.Equal(t, "999-99-9999",
		persisted.GetAnswer("basic-information", "contact", "ssnNumber"))

	stored, err := underlying.Find(ctx, "token", "app-1")
	require.NoError(t, err)
	assert.Equal(t, "***",
		stored.GetAnswer("basic-information", "contact", "ssnNumber"))
}
