package middleware_test

import (
	"context"
	"crypto/rand"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probationforms/formflow/pkg/adapters/memory"
	"github.com/probationforms/formflow/pkg/domain"
	"github.com/probationforms/formflow/pkg/persistence/middleware"
	"github.com/probationforms/formflow/pkg/ports"
)

func generateKey(t *testing.T) []byte {
	t.Helper()
	k := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, k); err != nil {
		t.Fatal(err)
	}
	return k
}

func seedArtifact(id string) *domain.Artifact {
	artifact := domain.NewArtifact(id)
	artifact.CRN = "X320741"
	return artifact.SetAnswers("basic-information", "sentence-type", map[string]any{
		"sentenceType": "standardDeterminate",
	})
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlying := memory.NewStore()
	key := generateKey(t)
	secureStore := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})(underlying)

	ctx := context.Background()
	token := "token"
	require.NoError(t, secureStore.Create(ctx, token, seedArtifact("app-1")))

	// At rest: only the envelope, no CRN, no answers.
	stored, err := underlying.Find(ctx, token, "app-1")
	require.NoError(t, err)
	assert.Empty(t, stored.CRN)
	assert.False(t, stored.HasTask("basic-information"))
	assert.NotNil(t, stored.GetAnswer("__vault__", "payload", "ciphertext"))

	// Through the middleware: plaintext.
	loaded, err := secureStore.Find(ctx, token, "app-1")
	require.NoError(t, err)
	assert.Equal(t, "X320741", loaded.CRN)
	assert.Equal(t, "standardDeterminate",
		loaded.GetAnswer("basic-information", "sentence-type", "sentenceType"))
}

func TestEncryptionMiddleware_UpdateReturnsPlaintext(t *testing.T) {
	underlying := memory.NewStore()
	secureStore := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlying)

	ctx := context.Background()
	require.NoError(t, secureStore.Create(ctx, "token", seedArtifact("app-1")))

	updated := seedArtifact("app-1").SetAnswers("basic-information", "release-date", map[string]any{
		"knowReleaseDate": "no",
	})
	persisted, err := secureStore.Update(ctx, "token", updated)
	require.NoError(t, err)
	assert.Equal(t, "no",
		persisted.GetAnswer("basic-information", "release-date", "knowReleaseDate"))

	reloaded, err := secureStore.Find(ctx, "token", "app-1")
	require.NoError(t, err)
	assert.Equal(t, "no",
		reloaded.GetAnswer("basic-information", "release-date", "knowReleaseDate"))
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlying := memory.NewStore()
	oldKey := generateKey(t)
	newKey := generateKey(t)
	ctx := context.Background()

	oldStore := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})(underlying)
	require.NoError(t, oldStore.Create(ctx, "token", seedArtifact("app-1")))

	// New active key, old key demoted to fallback: old records stay readable.
	rotated := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})(underlying)

	loaded, err := rotated.Find(ctx, "token", "app-1")
	require.NoError(t, err)
	assert.Equal(t, "X320741", loaded.CRN)

	// Without the fallback, decryption fails.
	noFallback := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: newKey})(underlying)
	_, err = noFallback.Find(ctx, "token", "app-1")
	assert.Error(t, err)
}

func TestEncryptionMiddleware_FailsSecureOnPlainRecord(t *testing.T) {
	underlying := memory.NewStore()
	ctx := context.Background()

	// A record written before encryption was enabled.
	require.NoError(t, underlying.Create(ctx, "token", seedArtifact("app-1")))

	secureStore := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlying)
	_, err := secureStore.Find(ctx, "token", "app-1")
	assert.Error(t, err)
}

func TestEncryptionMiddleware_RejectsShortKey(t *testing.T) {
	assert.Panics(t, func() {
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short")})
	})
}

func TestChain_Order(t *testing.T) {
	underlying := memory.NewStore()
	ctx := context.Background()

	// PII outermost, encryption innermost: the ciphertext holds already
	// masked answers.
	store := middleware.Chain(underlying,
		middleware.NewPIIMiddleware([]string{"^pin$"}),
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)}),
	)

	artifact := domain.NewArtifact("app-1").SetAnswers("basic-information", "contact", map[string]any{
		"pin":   "1234",
		"phone": "07700900000",
	})
	require.NoError(t, store.Create(ctx, "token", artifact))

	loaded, err := store.Find(ctx, "token", "app-1")
	require.NoError(t, err)
	assert.Equal(t, "***", loaded.GetAnswer("basic-information", "contact", "pin"))
	assert.Equal(t, "07700900000", loaded.GetAnswer("basic-information", "contact", "phone"))

	var _ ports.ManagedArtifactStore = store
}
