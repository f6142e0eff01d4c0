package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/probationforms/formflow/pkg/domain"
	"github.com/probationforms/formflow/pkg/ports"
)

// vaultTask and vaultPage address the single pseudo-page an encrypted
// envelope stores its ciphertext under.
const (
	vaultTask = "__vault__"
	vaultPage = "payload"
)

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey encrypts new writes. Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys are old keys to try when decryption with the active
	// key fails, enabling zero-downtime key rotation.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	next   ports.ManagedArtifactStore
	config EncryptionConfig
}

// NewEncryptionMiddleware creates a middleware that stores artifacts as
// AES-GCM envelopes. The artifact ID stays plain so the store can key on
// it; the CRN and every answer are only readable through the middleware.
func NewEncryptionMiddleware(config EncryptionConfig) Middleware {
	if len(config.ActiveKey) != 32 {
		panic("active key must be 32 bytes (AES-256)")
	}
	return func(next ports.ManagedArtifactStore) ports.ManagedArtifactStore {
		return &encryptionMiddleware{
			next:   next,
			config: config,
		}
	}
}

func (m *encryptionMiddleware) seal(artifact *domain.Artifact) (*domain.Artifact, error) {
	plainText, err := json.Marshal(artifact)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal artifact: %w", err)
	}

	ciphertext, err := encrypt(plainText, m.config.ActiveKey)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt artifact: %w", err)
	}

	envelope := domain.NewArtifact(artifact.ID)
	envelope.Data = domain.FormData{
		vaultTask: {
			vaultPage: {
				"ciphertext": base64.StdEncoding.EncodeToString(ciphertext),
			},
		},
	}
	return envelope, nil
}

func (m *encryptionMiddleware) open(envelope *domain.Artifact) (*domain.Artifact, error) {
	encryptedStr, ok := envelope.GetAnswer(vaultTask, vaultPage, "ciphertext").(string)
	if !ok {
		// A record written before encryption was enabled has no envelope.
		// Fail secure rather than hand back what might be plaintext PII
		// from a misconfigured store.
		return nil, errors.New("artifact is missing encrypted data envelope")
	}

	ciphertext, err := base64.StdEncoding.DecodeString(encryptedStr)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext base64: %w", err)
	}

	plainText, err := decryptWithRotation(ciphertext, m.config.ActiveKey, m.config.FallbackKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt artifact: %w", err)
	}

	var artifact domain.Artifact
	if err := json.Unmarshal(plainText, &artifact); err != nil {
		return nil, fmt.Errorf("failed to unmarshal decrypted artifact: %w", err)
	}
	return &artifact, nil
}

func (m *encryptionMiddleware) Create(ctx context.Context, token string, artifact *domain.Artifact) error {
	envelope, err := m.seal(artifact)
	if err != nil {
		return err
	}
	return m.next.Create(ctx, token, envelope)
}

func (m *encryptionMiddleware) Find(ctx context.Context, token, id string) (*domain.Artifact, error) {
	envelope, err := m.next.Find(ctx, token, id)
	if err != nil {
		return nil, err
	}
	return m.open(envelope)
}

func (m *encryptionMiddleware) Update(ctx context.Context, token string, artifact *domain.Artifact) (*domain.Artifact, error) {
	envelope, err := m.seal(artifact)
	if err != nil {
		return nil, err
	}
	if _, err := m.next.Update(ctx, token, envelope); err != nil {
		return nil, err
	}
	// The persisted envelope is opaque; the caller's plaintext is the
	// authoritative view of what was written.
	return artifact, nil
}

func (m *encryptionMiddleware) Delete(ctx context.Context, token, id string) error {
	return m.next.Delete(ctx, token, id)
}

func (m *encryptionMiddleware) List(ctx context.Context, token string) ([]string, error) {
	return m.next.List(ctx, token)
}

// Helpers

func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext []byte, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	if plain, err := decrypt(ciphertext, activeKey); err == nil {
		return plain, nil
	}

	for _, key := range fallbackKeys {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}

	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce := ciphertext[:gcm.NonceSize()]
	ciphertextBytes := ciphertext[gcm.NonceSize():]

	return gcm.Open(nil, nonce, ciphertextBytes, nil)
}
