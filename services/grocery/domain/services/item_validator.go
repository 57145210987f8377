// Package services contains stateless domain services for the grocery bounded context.
// Domain services enforce business rules that operate purely on domain types
// and have zero external dependencies beyond the domain layer.
package services

import (
	"fmt"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/ghuser/pricetrack/services/grocery/domain"
	"github.com/ghuser/pricetrack/services/grocery/domain/models"
)

// ValidateLabel rejects control characters in names and stores, beyond the
// length rules enforced by the value object constructors.
func ValidateLabel(s string) error {
	for _, r := range s {
		if unicode.IsControl(r) {
			return fmt.Errorf("must not contain control characters")
		}
	}
	return nil
}

// ValidatePrice enforces price > 0.
func ValidatePrice(p decimal.Decimal) error {
	if !p.IsPositive() {
		return fmt.Errorf("%w: must be greater than zero, got %s", domain.ErrInvalidPrice, p)
	}
	return nil
}

// ValidateItemForCreation performs cross-field validation on a fully-constructed
// item before it enters the collection.
func ValidateItemForCreation(item *models.GroceryItem) error {
	if item == nil {
		return fmt.Errorf("item cannot be nil")
	}
	if item.ID == "" {
		return fmt.Errorf("id must be set")
	}
	if err := ValidateLabel(item.Name.String()); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidItemName, err)
	}
	if err := ValidateLabel(item.Store.String()); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidStoreName, err)
	}
	if len(item.Prices) == 0 {
		return fmt.Errorf("%w: item has no price points", domain.ErrInvalidPrice)
	}
	for _, p := range item.Prices {
		if err := ValidatePrice(p.Price); err != nil {
			return err
		}
	}
	return nil
}

// ValidateSnapshot checks that a loaded collection can be adopted: it must be
// non-empty, every record needs an id, a name and a store, and ids are unique.
// Stored prices are not re-validated.
func ValidateSnapshot(items []models.GroceryItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: empty collection", domain.ErrMalformedSnapshot)
	}
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		switch {
		case item.ID == "":
			return fmt.Errorf("%w: record %d has no id", domain.ErrMalformedSnapshot, i)
		case item.Name == "":
			return fmt.Errorf("%w: record %q has no name", domain.ErrMalformedSnapshot, item.ID)
		case item.Store == "":
			return fmt.Errorf("%w: record %q has no store", domain.ErrMalformedSnapshot, item.ID)
		}
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("%w: duplicate id %q", domain.ErrMalformedSnapshot, item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	return nil
}
