// Package redis provides a Redis-backed ArtifactStore for deployments where
// in-flight applications must survive process restarts.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/probationforms/formflow/pkg/domain"
)

// Store implements ports.ArtifactStore using Redis. Each artifact is stored
// as a JSON document; an index ZSET tracks the known IDs.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for stored artifacts. Zero means no expiry.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for artifacts.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a Redis store from connection settings.
func New(address, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "formflow:artifact:",
		ttl:    0,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(id string) string {
	return s.prefix + id
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

func (s *Store) write(ctx context.Context, artifact *domain.Artifact) error {
	data, err := json.Marshal(artifact)
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(artifact.ID), data, s.ttl)

	// Index score is the expiry instant; effectively-infinite when no TTL
	// is set, so lazy cleanup removes nothing.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: artifact.ID})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Create persists a new artifact.
func (s *Store) Create(ctx context.Context, token string, artifact *domain.Artifact) error {
	return s.write(ctx, artifact)
}

// Find retrieves the artifact by ID.
func (s *Store) Find(ctx context.Context, token, id string) (*domain.Artifact, error) {
	val, err := s.client.Get(ctx, s.key(id)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrArtifactNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var artifact domain.Artifact
	if err := json.Unmarshal([]byte(val), &artifact); err != nil {
		return nil, fmt.Errorf("failed to unmarshal artifact: %w", err)
	}
	return &artifact, nil
}

// Update replaces the stored document wholesale and returns the persisted
// copy.
func (s *Store) Update(ctx context.Context, token string, artifact *domain.Artifact) (*domain.Artifact, error) {
	exists, err := s.client.Exists(ctx, s.key(artifact.ID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to check artifact existence: %w", err)
	}
	if exists == 0 {
		return nil, domain.ErrArtifactNotFound
	}
	if err := s.write(ctx, artifact); err != nil {
		return nil, err
	}
	return s.Find(ctx, token, artifact.ID)
}

// Delete removes the artifact and its index entry.
func (s *Store) Delete(ctx context.Context, token, id string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(id))
	pipe.ZRem(ctx, s.indexKey(), id)
	_, err := pipe.Exec(ctx)
	return err
}

// List returns known artifact IDs, lazily pruning expired index entries.
func (s *Store) List(ctx context.Context, token string) ([]string, error) {
	now := float64(time.Now().Unix())
	if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err(); err != nil {
		return nil, fmt.Errorf("failed to prune expired artifacts: %w", err)
	}

	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}
	return ids, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
