package repositories

import (
	"context"

	"github.com/ghuser/pricetrack/services/grocery/domain/models"
)

// SnapshotRepository persists the whole grocery collection as one snapshot.
// The domain layer owns this interface; infrastructure implements it.
type SnapshotRepository interface {
	// Load returns the last saved collection. It returns ErrSnapshotNotFound
	// when nothing has been saved yet and ErrMalformedSnapshot when the stored
	// value cannot be decoded.
	Load(ctx context.Context) ([]models.GroceryItem, error)

	// Save replaces the stored snapshot with items.
	Save(ctx context.Context, items []models.GroceryItem) error
}
