// Package persistence stores the grocery collection as a single JSON document
// under one key of a key-value medium. Backends live in subpackages.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	grocerydomain "github.com/ghuser/pricetrack/services/grocery/domain"
	"github.com/ghuser/pricetrack/services/grocery/domain/models"
)

// DefaultSnapshotKey is the key the collection is stored under.
const DefaultSnapshotKey = "groceryItems"

// ErrKeyNotFound is returned by KeyValue.Get for a key that was never set.
var ErrKeyNotFound = errors.New("key not found")

// KeyValue is a string-keyed byte store. Implementations must be safe for
// concurrent use.
type KeyValue interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// SnapshotRepository implements repositories.SnapshotRepository on a KeyValue.
type SnapshotRepository struct {
	kv  KeyValue
	key string
}

// NewSnapshotRepository returns a repository storing the collection under key.
// An empty key selects DefaultSnapshotKey.
func NewSnapshotRepository(kv KeyValue, key string) *SnapshotRepository {
	if key == "" {
		key = DefaultSnapshotKey
	}
	return &SnapshotRepository{kv: kv, key: key}
}

// Key reports the storage key in use.
func (r *SnapshotRepository) Key() string {
	return r.key
}

// Load reads and decodes the stored collection.
func (r *SnapshotRepository) Load(ctx context.Context) ([]models.GroceryItem, error) {
	raw, err := r.kv.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, grocerydomain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("%w: read %s: %w", grocerydomain.ErrPersistence, r.key, err)
	}
	var items []models.GroceryItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %w", grocerydomain.ErrMalformedSnapshot, err)
	}
	return items, nil
}

// Save encodes items and replaces the stored value. A nil slice is stored as
// an empty array.
func (r *SnapshotRepository) Save(ctx context.Context, items []models.GroceryItem) error {
	if items == nil {
		items = []models.GroceryItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%w: encode snapshot: %w", grocerydomain.ErrPersistence, err)
	}
	if err := r.kv.Set(ctx, r.key, raw); err != nil {
		return fmt.Errorf("%w: write %s: %w", grocerydomain.ErrPersistence, r.key, err)
	}
	return nil
}

// Clear removes the stored snapshot. The next Load reports ErrSnapshotNotFound.
func (r *SnapshotRepository) Clear(ctx context.Context) error {
	if err := r.kv.Delete(ctx, r.key); err != nil && !errors.Is(err, ErrKeyNotFound) {
		return fmt.Errorf("%w: delete %s: %w", grocerydomain.ErrPersistence, r.key, err)
	}
	return nil
}
