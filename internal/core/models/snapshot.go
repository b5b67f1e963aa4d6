package models

// ContainerSnapshot captures the structural parameters of a container at
// report time.
type ContainerSnapshot struct {
	Kind     Kind `yaml:"kind" json:"kind"`
	Size     int  `yaml:"size" json:"size"`
	Capacity int  `yaml:"capacity" json:"capacity"`

	// Kind-specific extra value, e.g. tree height for SortedMap
	Extra int `yaml:"extra,omitempty" json:"extra,omitempty"`
}
