package models

import "fmt"

// GrowthPolicy describes how a backing array grows once it fills up.
type GrowthPolicy int

const (
	GrowthNone GrowthPolicy = iota
	GrowthDouble
	GrowthDoublePlusOne
)

var growthNames = [...]string{
	GrowthNone:          "none",
	GrowthDouble:        "2n",
	GrowthDoublePlusOne: "2n+1",
}

func (g GrowthPolicy) String() string {
	if g < GrowthNone || g > GrowthDoublePlusOne {
		return fmt.Sprintf("growth(%d)", int(g))
	}
	return growthNames[g]
}

func (g GrowthPolicy) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

func (g *GrowthPolicy) UnmarshalText(text []byte) error {
	for i, name := range growthNames {
		if name == string(text) {
			*g = GrowthPolicy(i)
			return nil
		}
	}
	return fmt.Errorf("ERR unknown growth policy %q", string(text))
}

// Next returns the capacity after one growth step.
func (g GrowthPolicy) Next(capacity int) int {
	switch g {
	case GrowthDouble:
		if capacity < 1 {
			return 1
		}
		return capacity * 2
	case GrowthDoublePlusOne:
		return capacity*2 + 1
	default:
		return capacity
	}
}

// OverheadProfile holds the byte costs used to estimate one container kind.
type OverheadProfile struct {
	Kind Kind `json:"kind"`

	// Fixed cost of the container object itself
	BaseOverhead int64 `json:"base_overhead"`

	// Width of one slot in the backing array
	PerReferenceBytes int64 `json:"per_reference_bytes"`

	// Cost of one entry node (0 when elements live inline in the array)
	PerNodeBytes int64 `json:"per_node_bytes"`

	ArrayHeaderBytes int64 `json:"array_header_bytes"`

	// Payload estimate per element
	KeyBytes   int64 `json:"key_bytes"`
	ValueBytes int64 `json:"value_bytes"`

	// CapacityBacked is false for kinds without a flat backing array
	CapacityBacked bool `json:"capacity_backed"`

	// Informational only, never used in the byte formulas
	DefaultCapacity int          `json:"default_capacity"`
	Growth          GrowthPolicy `json:"growth"`
	LoadFactor      float64      `json:"load_factor"`
}
