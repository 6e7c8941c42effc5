package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/toolhub/toolhub/internal/domain"
)

// ErrCatalogNotFound is returned when no catalog has been persisted
// yet, or the stored payload cannot be decoded. A malformed payload is
// treated as absent: there is no versioning or migration scheme.
var ErrCatalogNotFound = errors.New("catalog not found")

// Store handles Redis operations for the catalog and chat transcripts.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store.
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// SaveCatalog serializes and writes the full catalog under one key.
// Every mutation persists the whole sequence; there is no
// partial-update path.
func (s *Store) SaveCatalog(ctx context.Context, tools []domain.Tool) error {
	data, err := json.Marshal(tools)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	if err := s.client.Set(ctx, CatalogKey(), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save catalog: %w", err)
	}

	return nil
}

// LoadCatalog reads and deserializes the full catalog.
// Returns ErrCatalogNotFound on an absent key or an undecodable
// payload so the caller can fall back to the seed list.
func (s *Store) LoadCatalog(ctx context.Context) ([]domain.Tool, error) {
	data, err := s.client.Get(ctx, CatalogKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCatalogNotFound
		}
		return nil, fmt.Errorf("failed to get catalog: %w", err)
	}

	var tools []domain.Tool
	if err := json.Unmarshal(data, &tools); err != nil {
		return nil, fmt.Errorf("%w: undecodable payload: %v", ErrCatalogNotFound, err)
	}

	return tools, nil
}

// Ping reports whether the store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
