package memmodel

import (
	"math"
	"math/rand"
	"testing"

	"github.com/genc-murat/collectionmem/internal/core/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimate(t *testing.T) {
	t.Run("Deque size 5 capacity 8", func(t *testing.T) {
		b, err := Estimate(models.ContainerSnapshot{Kind: models.Deque, Size: 5, Capacity: 8})
		require.NoError(t, err)

		assert.Equal(t, int64(32), b.ContainerOverhead)
		assert.Equal(t, int64(48), b.ArrayOverhead)
		assert.Equal(t, int64(0), b.NodeOverhead)
		assert.Equal(t, int64(80), b.KeysMemory)
		assert.Equal(t, int64(0), b.ValuesMemory)
		assert.Equal(t, int64(160), b.Total)
	})

	t.Run("SyncMap size 10 capacity 11", func(t *testing.T) {
		b, err := Estimate(models.ContainerSnapshot{Kind: models.SyncMap, Size: 10, Capacity: 11})
		require.NoError(t, err)

		assert.Equal(t, int64(48), b.ContainerOverhead)
		assert.Equal(t, int64(60), b.ArrayOverhead)
		assert.Equal(t, int64(360), b.NodeOverhead)
		assert.Equal(t, int64(600), b.PayloadMemory())
		assert.Equal(t, int64(1068), b.Total)
	})

	t.Run("OrderedMap size 12 capacity 16", func(t *testing.T) {
		b, err := Estimate(models.ContainerSnapshot{Kind: models.OrderedMap, Size: 12, Capacity: 16})
		require.NoError(t, err)

		assert.Equal(t, int64(56), b.ContainerOverhead)
		assert.Equal(t, int64(80), b.ArrayOverhead)
		assert.Equal(t, int64(480), b.NodeOverhead)
		assert.Equal(t, int64(720), b.PayloadMemory())
		assert.Equal(t, int64(1336), b.Total)
	})

	t.Run("SortedMap ignores capacity", func(t *testing.T) {
		b, err := Estimate(models.ContainerSnapshot{Kind: models.SortedMap, Size: 7, Capacity: 0, Extra: 3})
		require.NoError(t, err)

		assert.Equal(t, int64(32), b.ContainerOverhead)
		assert.Equal(t, int64(0), b.ArrayOverhead)
		assert.Equal(t, int64(280), b.NodeOverhead)
		assert.Equal(t, int64(420), b.PayloadMemory())
		assert.Equal(t, int64(732), b.Total)
	})

	t.Run("SortedMap empty", func(t *testing.T) {
		b, err := Estimate(models.ContainerSnapshot{Kind: models.SortedMap})
		require.NoError(t, err)
		assert.Equal(t, int64(32), b.Total)
		assert.Equal(t, b.ContainerOverhead, b.Total)
	})
}

func TestEstimateEmptyContainers(t *testing.T) {
	tests := []struct {
		kind  models.Kind
		total int64
	}{
		{models.Deque, 32 + 16},
		{models.SyncMap, 48 + 16},
		{models.OrderedMap, 56 + 16},
		{models.SortedMap, 32},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			b, err := Estimate(models.ContainerSnapshot{Kind: tt.kind})
			require.NoError(t, err)

			assert.Equal(t, tt.total, b.Total)
			assert.Zero(t, b.NodeOverhead)
			assert.Zero(t, b.KeysMemory)
			assert.Zero(t, b.ValuesMemory)
		})
	}
}

func TestEstimateTotalIsComponentSum(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, kind := range Kinds() {
		for i := 0; i < 500; i++ {
			size := rng.Intn(1 << 20)
			capacity := size + rng.Intn(1<<16)

			b, err := Estimate(models.ContainerSnapshot{Kind: kind, Size: size, Capacity: capacity})
			require.NoError(t, err)

			require.Equal(t, b.ComponentSum(), b.Total, "kind=%s size=%d capacity=%d", kind, size, capacity)
			require.GreaterOrEqual(t, b.ContainerOverhead, int64(0))
			require.GreaterOrEqual(t, b.ArrayOverhead, int64(0))
			require.GreaterOrEqual(t, b.NodeOverhead, int64(0))
			require.GreaterOrEqual(t, b.KeysMemory, int64(0))
			require.GreaterOrEqual(t, b.ValuesMemory, int64(0))
		}
	}
}

func TestEstimateMonotonicInSize(t *testing.T) {
	const capacity = 256

	for _, kind := range Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			prev := int64(-1)
			for size := 0; size <= capacity; size++ {
				b, err := Estimate(models.ContainerSnapshot{Kind: kind, Size: size, Capacity: capacity})
				require.NoError(t, err)
				assert.GreaterOrEqual(t, b.Total, prev, "size=%d", size)
				prev = b.Total
			}
		})
	}
}

func TestEstimateInvalidSnapshot(t *testing.T) {
	tests := []struct {
		name string
		snap models.ContainerSnapshot
	}{
		{"negative size", models.ContainerSnapshot{Kind: models.Deque, Size: -1, Capacity: 4}},
		{"negative capacity", models.ContainerSnapshot{Kind: models.SyncMap, Size: 0, Capacity: -1}},
		{"capacity below size", models.ContainerSnapshot{Kind: models.OrderedMap, Size: 10, Capacity: 5}},
		{"sorted map negative capacity", models.ContainerSnapshot{Kind: models.SortedMap, Size: 1, Capacity: -3}},
		{"negative extra", models.ContainerSnapshot{Kind: models.SortedMap, Size: 1, Extra: -1}},
		{"size above limit", models.ContainerSnapshot{Kind: models.OrderedMap, Size: int(MaxElements) + 1, Capacity: int(MaxElements) + 1}},
		{"capacity above limit", models.ContainerSnapshot{Kind: models.Deque, Size: 1, Capacity: math.MaxInt}},
		{"sorted map size above limit", models.ContainerSnapshot{Kind: models.SortedMap, Size: math.MaxInt}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Estimate(tt.snap)
			assert.ErrorIs(t, err, models.ErrInvalidSnapshot)
			assert.Equal(t, models.MemoryBreakdown{}, b)
		})
	}
}

func TestEstimateAtElementLimit(t *testing.T) {
	for _, kind := range Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			b, err := Estimate(models.ContainerSnapshot{Kind: kind, Size: int(MaxElements), Capacity: int(MaxElements)})
			require.NoError(t, err)
			assert.Positive(t, b.Total)
			assert.Equal(t, b.ComponentSum(), b.Total)
		})
	}
}

func TestEstimateUnsupportedKind(t *testing.T) {
	for _, kind := range []models.Kind{models.Kind(4), models.Kind(-1)} {
		b, err := Estimate(models.ContainerSnapshot{Kind: kind, Size: 1, Capacity: 1})
		assert.ErrorIs(t, err, models.ErrUnsupportedKind)
		assert.Equal(t, models.MemoryBreakdown{}, b)
	}
}

func TestProfile(t *testing.T) {
	p, err := Profile(models.SyncMap)
	require.NoError(t, err)
	assert.Equal(t, int64(48), p.BaseOverhead)
	assert.Equal(t, 11, p.DefaultCapacity)
	assert.Equal(t, models.GrowthDoublePlusOne, p.Growth)

	_, err = Profile(models.Kind(4))
	assert.ErrorIs(t, err, models.ErrUnsupportedKind)

	all := Profiles()
	require.Len(t, all, 4)
	all[0].BaseOverhead = 999

	p, err = Profile(models.Deque)
	require.NoError(t, err)
	assert.Equal(t, int64(32), p.BaseOverhead, "Profiles must return a copy")
}
