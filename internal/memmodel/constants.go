package memmodel

import (
	"fmt"

	"github.com/genc-murat/collectionmem/internal/core/models"
)

// Byte costs assume a 64-bit platform with compressed references. They are
// estimator conventions, not measured values.
const (
	referenceBytes   = 4
	arrayHeaderBytes = 16

	// MinimumDisplayCount is the element count floor used for comparisons.
	MinimumDisplayCount = 10

	// MaxElements bounds size and capacity so that every byte total fits in
	// an int64. The costliest element (OrderedMap) is 104 bytes.
	MaxElements int64 = 1 << 40

	hashLoadFactor = 0.75
)

var kindOrder = [...]models.Kind{
	models.Deque,
	models.SyncMap,
	models.OrderedMap,
	models.SortedMap,
}

var profiles = [...]models.OverheadProfile{
	models.Deque: {
		Kind:              models.Deque,
		BaseOverhead:      32,
		PerReferenceBytes: referenceBytes,
		PerNodeBytes:      0,
		ArrayHeaderBytes:  arrayHeaderBytes,
		KeyBytes:          16,
		ValueBytes:        0,
		CapacityBacked:    true,
		DefaultCapacity:   16,
		Growth:            models.GrowthDouble,
		LoadFactor:        1.0,
	},
	models.SyncMap: {
		Kind:              models.SyncMap,
		BaseOverhead:      48,
		PerReferenceBytes: referenceBytes,
		PerNodeBytes:      36,
		ArrayHeaderBytes:  arrayHeaderBytes,
		KeyBytes:          30,
		ValueBytes:        30,
		CapacityBacked:    true,
		DefaultCapacity:   11,
		Growth:            models.GrowthDoublePlusOne,
		LoadFactor:        hashLoadFactor,
	},
	models.OrderedMap: {
		Kind:              models.OrderedMap,
		BaseOverhead:      56,
		PerReferenceBytes: referenceBytes,
		PerNodeBytes:      40,
		ArrayHeaderBytes:  arrayHeaderBytes,
		KeyBytes:          30,
		ValueBytes:        30,
		CapacityBacked:    true,
		DefaultCapacity:   16,
		Growth:            models.GrowthDouble,
		LoadFactor:        hashLoadFactor,
	},
	models.SortedMap: {
		Kind:              models.SortedMap,
		BaseOverhead:      32,
		PerReferenceBytes: referenceBytes,
		PerNodeBytes:      40,
		ArrayHeaderBytes:  0,
		KeyBytes:          30,
		ValueBytes:        30,
		CapacityBacked:    false,
		DefaultCapacity:   0,
		Growth:            models.GrowthNone,
		LoadFactor:        0,
	},
}

// Profile returns the overhead constants for kind.
func Profile(kind models.Kind) (models.OverheadProfile, error) {
	if !kind.Valid() {
		return models.OverheadProfile{}, fmt.Errorf("%w: %s", models.ErrUnsupportedKind, kind)
	}
	return profiles[kind], nil
}

// Profiles returns a copy of every profile in declared kind order.
func Profiles() []models.OverheadProfile {
	out := make([]models.OverheadProfile, len(profiles))
	copy(out, profiles[:])
	return out
}

// Kinds returns the declared kind order used for comparison rows.
func Kinds() []models.Kind {
	out := make([]models.Kind, len(kindOrder))
	copy(out, kindOrder[:])
	return out
}
