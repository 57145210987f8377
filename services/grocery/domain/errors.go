package domain

import "errors"

// Sentinel errors for the grocery domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates no item with the requested id exists.
	ErrItemNotFound = errors.New("item not found")

	// ErrItemAlreadyExists indicates an item with the same id is already in the collection.
	ErrItemAlreadyExists = errors.New("item already exists")

	// ErrInvalidItemName indicates the item name violates domain constraints.
	ErrInvalidItemName = errors.New("invalid item name")

	// ErrInvalidStoreName indicates the store name violates domain constraints.
	ErrInvalidStoreName = errors.New("invalid store name")

	// ErrInvalidPrice indicates a price that is not strictly positive.
	ErrInvalidPrice = errors.New("invalid price")

	// ErrNothingToUndo indicates the undo buffer for the requested mutation is empty.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrInvalidWindow indicates an unknown comparison window preset.
	ErrInvalidWindow = errors.New("invalid comparison window")

	// ErrSnapshotNotFound indicates no snapshot has been persisted yet.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrMalformedSnapshot indicates a persisted snapshot that cannot be adopted.
	ErrMalformedSnapshot = errors.New("malformed snapshot")

	// ErrPersistence wraps failures of the underlying storage medium.
	ErrPersistence = errors.New("persistence failure")
)
