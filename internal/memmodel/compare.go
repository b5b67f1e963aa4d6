package memmodel

import (
	"fmt"

	"github.com/genc-murat/collectionmem/internal/core/models"
)

var tradeoffs = [...][]string{
	models.Deque: {
		"O(1) add/remove at both ends",
		"no random access",
		"resizable circular array",
		"not thread-safe",
	},
	models.SyncMap: {
		"O(1) average get/put",
		"every method synchronized",
		"no null keys or values",
		"legacy API",
	},
	models.OrderedMap: {
		"O(1) average get/put",
		"preserves insertion order",
		"extra before/after links per entry",
		"not thread-safe",
	},
	models.SortedMap: {
		"O(log n) operations",
		"sorted by keys",
		"no backing array",
		"not thread-safe",
	},
}

// DisplayCount returns the element count used for comparisons.
func DisplayCount(size int) int {
	if size < MinimumDisplayCount {
		return MinimumDisplayCount
	}
	return size
}

// Tradeoffs returns a copy of the fixed trade-off notes for kind.
func Tradeoffs(kind models.Kind) ([]string, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %s", models.ErrUnsupportedKind, kind)
	}
	out := make([]string, len(tradeoffs[kind]))
	copy(out, tradeoffs[kind])
	return out, nil
}

// Compare estimates every kind at DisplayCount(size) elements.
//
// Parameters:
//   - source: The kind of the container being reported.
//   - size: The container's current size.
//
// Returns:
//   - []models.ComparisonRow: The source kind first, then the remaining
//     kinds in declared order.
//   - error: ErrUnsupportedKind, or ErrInvalidSnapshot for a negative size
//     or one above MaxElements.
func Compare(source models.Kind, size int) ([]models.ComparisonRow, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: negative size %d", models.ErrInvalidSnapshot, size)
	}
	return CompareAt(source, DisplayCount(size))
}

// CompareAt estimates every kind holding exactly n elements in a tightly
// sized container. n == 0 degenerates to the fixed overheads.
func CompareAt(source models.Kind, n int) ([]models.ComparisonRow, error) {
	if !source.Valid() {
		return nil, fmt.Errorf("%w: %s", models.ErrUnsupportedKind, source)
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative element count %d", models.ErrInvalidSnapshot, n)
	}
	if int64(n) > MaxElements {
		return nil, fmt.Errorf("%w: element count %d exceeds %d", models.ErrInvalidSnapshot, n, MaxElements)
	}

	rows := make([]models.ComparisonRow, 0, len(kindOrder))
	rows = append(rows, comparisonRow(source, n, true))
	for _, kind := range kindOrder {
		if kind == source {
			continue
		}
		rows = append(rows, comparisonRow(kind, n, false))
	}

	return rows, nil
}

func comparisonRow(kind models.Kind, n int, source bool) models.ComparisonRow {
	notes := make([]string, len(tradeoffs[kind]))
	copy(notes, tradeoffs[kind])

	return models.ComparisonRow{
		Kind:                kind,
		Name:                kind.Title(),
		EstimatedTotalBytes: estimate(profiles[kind], n, n).Total,
		Tradeoffs:           notes,
		Source:              source,
	}
}
