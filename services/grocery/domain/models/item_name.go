package models

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	minLabelLength = 2
	maxLabelLength = 255
)

// ItemName is a value object for the display name of a grocery item.
// Surrounding whitespace is trimmed; 2 <= runes <= 255.
type ItemName string

// NewItemName constructs a valid ItemName or returns an error if constraints are violated.
func NewItemName(s string) (ItemName, error) {
	v, err := newLabel("item name", s)
	return ItemName(v), err
}

// String returns the underlying string value.
func (n ItemName) String() string { return string(n) }

// StoreName is a value object for the store a price was observed at.
// It follows the same length rules as ItemName.
type StoreName string

// NewStoreName constructs a valid StoreName or returns an error if constraints are violated.
func NewStoreName(s string) (StoreName, error) {
	v, err := newLabel("store name", s)
	return StoreName(v), err
}

// String returns the underlying string value.
func (n StoreName) String() string { return string(n) }

func newLabel(kind, s string) (string, error) {
	s = strings.TrimSpace(s)
	n := utf8.RuneCountInString(s)
	if n < minLabelLength {
		return "", fmt.Errorf("%s must be at least %d characters", kind, minLabelLength)
	}
	if n > maxLabelLength {
		return "", fmt.Errorf("%s must not exceed %d characters", kind, maxLabelLength)
	}
	return s, nil
}
