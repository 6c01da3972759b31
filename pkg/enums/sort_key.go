package enums

import (
	"fmt"
	"strings"
)

// SortKey selects how the visible catalog slice is ordered.
type SortKey string

const (
	SortKeyNone      SortKey = "none"
	SortKeyPriceAsc  SortKey = "price-asc"
	SortKeyPriceDesc SortKey = "price-desc"
	SortKeyCategory  SortKey = "category"
)

var validSortKeys = []SortKey{
	SortKeyNone,
	SortKeyPriceAsc,
	SortKeyPriceDesc,
	SortKeyCategory,
}

// String implements fmt.Stringer.
func (k SortKey) String() string {
	return string(k)
}

// IsValid reports whether the value is a known SortKey.
func (k SortKey) IsValid() bool {
	for _, candidate := range validSortKeys {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseSortKey converts raw input into a SortKey. Empty input means SortKeyNone.
func ParseSortKey(value string) (SortKey, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return SortKeyNone, nil
	}
	for _, candidate := range validSortKeys {
		if string(candidate) == trimmed {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort key %q", value)
}
