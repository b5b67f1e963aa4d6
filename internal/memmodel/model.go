package memmodel

import (
	"fmt"

	"github.com/genc-murat/collectionmem/internal/core/models"
)

// Validate checks a snapshot against its kind's profile and returns that
// profile.
//
// Parameters:
//   - s: The snapshot to check.
//
// Returns:
//   - models.OverheadProfile: The profile for s.Kind.
//   - error: ErrUnsupportedKind for an unknown kind, ErrInvalidSnapshot for
//     negative values, values above MaxElements or a capacity below the
//     size on capacity-backed kinds.
func Validate(s models.ContainerSnapshot) (models.OverheadProfile, error) {
	profile, err := Profile(s.Kind)
	if err != nil {
		return models.OverheadProfile{}, err
	}

	switch {
	case s.Size < 0:
		return models.OverheadProfile{}, fmt.Errorf("%w: negative size %d", models.ErrInvalidSnapshot, s.Size)
	case s.Capacity < 0:
		return models.OverheadProfile{}, fmt.Errorf("%w: negative capacity %d", models.ErrInvalidSnapshot, s.Capacity)
	case s.Extra < 0:
		return models.OverheadProfile{}, fmt.Errorf("%w: negative extra %d", models.ErrInvalidSnapshot, s.Extra)
	case int64(s.Size) > MaxElements:
		return models.OverheadProfile{}, fmt.Errorf("%w: size %d exceeds %d", models.ErrInvalidSnapshot, s.Size, MaxElements)
	case int64(s.Capacity) > MaxElements:
		return models.OverheadProfile{}, fmt.Errorf("%w: capacity %d exceeds %d", models.ErrInvalidSnapshot, s.Capacity, MaxElements)
	case profile.CapacityBacked && s.Capacity < s.Size:
		return models.OverheadProfile{}, fmt.Errorf("%w: capacity %d below size %d for %s",
			models.ErrInvalidSnapshot, s.Capacity, s.Size, s.Kind)
	}

	return profile, nil
}

// Estimate computes the memory breakdown for a snapshot.
//
// Capacity-backed kinds charge the backing array by current capacity, not by
// size. SortedMap has no flat array, so its capacity never contributes.
//
// Parameters:
//   - s: The container snapshot to model.
//
// Returns:
//   - models.MemoryBreakdown: Component costs and their exact total.
//   - error: Validation error; no partial breakdown is returned.
func Estimate(s models.ContainerSnapshot) (models.MemoryBreakdown, error) {
	profile, err := Validate(s)
	if err != nil {
		return models.MemoryBreakdown{}, err
	}
	return estimate(profile, s.Size, s.Capacity), nil
}

func estimate(p models.OverheadProfile, size, capacity int) models.MemoryBreakdown {
	n := int64(size)

	b := models.MemoryBreakdown{
		Kind:              p.Kind,
		Size:              size,
		Capacity:          capacity,
		ContainerOverhead: p.BaseOverhead,
		NodeOverhead:      n * p.PerNodeBytes,
		KeysMemory:        n * p.KeyBytes,
		ValuesMemory:      n * p.ValueBytes,
	}
	if p.CapacityBacked {
		b.ArrayOverhead = p.ArrayHeaderBytes + int64(capacity)*p.PerReferenceBytes
	}
	b.Total = b.ComponentSum()

	return b
}
