package models

// MemoryBreakdown decomposes an estimated footprint into component costs.
type MemoryBreakdown struct {
	Kind     Kind `json:"kind"`
	Size     int  `json:"size"`
	Capacity int  `json:"capacity"`

	// Container object header and fields in bytes
	ContainerOverhead int64 `json:"container_overhead"`

	// Backing array or hash table in bytes
	ArrayOverhead int64 `json:"array_overhead"`

	// Per-entry node structs in bytes
	NodeOverhead int64 `json:"node_overhead"`

	KeysMemory   int64 `json:"keys_memory"`
	ValuesMemory int64 `json:"values_memory"`

	// Exact sum of the fields above
	Total int64 `json:"total"`
}

// ComponentSum recomputes the total from the component fields.
func (b MemoryBreakdown) ComponentSum() int64 {
	return b.ContainerOverhead + b.ArrayOverhead + b.NodeOverhead + b.KeysMemory + b.ValuesMemory
}

// PayloadMemory returns the combined key and value estimate.
func (b MemoryBreakdown) PayloadMemory() int64 {
	return b.KeysMemory + b.ValuesMemory
}

// ComparisonRow is one alternative kind's estimate at a normalized count.
type ComparisonRow struct {
	Kind                Kind     `json:"kind"`
	Name                string   `json:"name"`
	EstimatedTotalBytes int64    `json:"estimated_total_bytes"`
	Tradeoffs           []string `json:"tradeoffs"`

	// Source marks the row echoing the snapshot's own kind
	Source bool `json:"source"`
}

// GrowthOutlook reports capacity information that does not feed the totals.
type GrowthOutlook struct {
	DefaultCapacity int          `json:"default_capacity"`
	Policy          GrowthPolicy `json:"policy"`
	LoadFactor      float64      `json:"load_factor"`
	Threshold       int          `json:"threshold"`
	Utilization     float64      `json:"utilization"`
	NextCapacity    int          `json:"next_capacity"`

	// SortedMap only
	MinTreeHeight int `json:"min_tree_height,omitempty"`
	TreeHeight    int `json:"tree_height,omitempty"`
}

// Report bundles everything produced for one snapshot.
type Report struct {
	Snapshot     ContainerSnapshot `json:"snapshot"`
	Breakdown    MemoryBreakdown   `json:"breakdown"`
	DisplayCount int               `json:"display_count"`
	Comparison   []ComparisonRow   `json:"comparison"`
	Growth       GrowthOutlook     `json:"growth"`
}
