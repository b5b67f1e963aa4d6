package memmodel

import (
	"math/bits"

	"github.com/genc-murat/collectionmem/internal/core/models"
)

// Outlook derives capacity and growth information for a snapshot.
func Outlook(s models.ContainerSnapshot) (models.GrowthOutlook, error) {
	profile, err := Validate(s)
	if err != nil {
		return models.GrowthOutlook{}, err
	}

	out := models.GrowthOutlook{
		DefaultCapacity: profile.DefaultCapacity,
		Policy:          profile.Growth,
		LoadFactor:      profile.LoadFactor,
	}

	if !profile.CapacityBacked {
		out.MinTreeHeight = MinTreeHeight(s.Size)
		out.TreeHeight = s.Extra
		return out, nil
	}

	out.Threshold = int(float64(s.Capacity) * profile.LoadFactor)
	if s.Capacity > 0 {
		out.Utilization = float64(s.Size) / float64(s.Capacity)
	}
	out.NextCapacity = profile.Growth.Next(s.Capacity)

	return out, nil
}

// MinTreeHeight returns the height of a perfectly balanced binary tree
// holding size nodes.
func MinTreeHeight(size int) int {
	if size <= 0 {
		return 0
	}
	return bits.Len(uint(size))
}
