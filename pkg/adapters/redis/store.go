package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aretw0/automata/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "automata:"

// Store implements ports.DefinitionStore using Redis.
// Each definition lives under "<prefix>definition:<id>"; the set "<prefix>definitions"
// indexes the IDs so that listing does not need SCAN.
type Store struct {
	client *backend.Client
	prefix string
}

// Option configures the Store.
type Option func(*Store)

// WithPrefix sets the key prefix (default "automata:").
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a Store connected to addr.
func New(addr string, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a Store with an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	s := &Store{
		client: client,
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) key(id string) string {
	return s.prefix + "definition:" + id
}

func (s *Store) indexKey() string {
	return s.prefix + "definitions"
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// GetDefinition reads the raw definition of id.
func (s *Store) GetDefinition(id string) ([]byte, error) {
	data, err := s.client.Get(context.Background(), s.key(id)).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, fmt.Errorf("%w: %s", domain.ErrDefinitionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get definition from redis: %w", err)
	}
	return data, nil
}

// ListDefinitions returns the indexed IDs, sorted.
func (s *Store) ListDefinitions() ([]string, error) {
	ids, err := s.client.SMembers(context.Background(), s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list definitions from redis: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

// Save writes the definition and indexes its ID atomically.
func (s *Store) Save(ctx context.Context, id string, data []byte) error {
	if id == "" {
		return fmt.Errorf("id cannot be empty")
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(id), data, 0)
	pipe.SAdd(ctx, s.indexKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save definition to redis: %w", err)
	}
	return nil
}

// Delete removes the definition and its index entry.
func (s *Store) Delete(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(id))
	pipe.SRem(ctx, s.indexKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete definition from redis: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
