package models

import (
	"fmt"
	"strings"
)

// Kind identifies one of the modeled container structures.
type Kind int

const (
	Deque Kind = iota
	SyncMap
	OrderedMap
	SortedMap
)

var kindNames = [...]string{
	Deque:      "deque",
	SyncMap:    "syncmap",
	OrderedMap: "orderedmap",
	SortedMap:  "sortedmap",
}

var kindTitles = [...]string{
	Deque:      "Deque",
	SyncMap:    "Synchronized Map",
	OrderedMap: "Ordered Map",
	SortedMap:  "Sorted Map",
}

// KindAliases maps accepted names to kinds. Lookups are case-insensitive.
var KindAliases = map[string]Kind{
	// Sequence
	"deque":      Deque,
	"arraydeque": Deque,

	// Hash tables
	"syncmap":       SyncMap,
	"hashtable":     SyncMap,
	"orderedmap":    OrderedMap,
	"linkedhashmap": OrderedMap,

	// Trees
	"sortedmap": SortedMap,
	"treemap":   SortedMap,
}

func (k Kind) Valid() bool {
	return k >= Deque && k <= SortedMap
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Title returns the display name used in reports.
func (k Kind) Title() string {
	if !k.Valid() {
		return k.String()
	}
	return kindTitles[k]
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedKind, int(k))
	}
	return []byte(kindNames[k]), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind resolves a kind by name or alias.
func ParseKind(name string) (Kind, error) {
	if k, ok := KindAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedKind, name)
}
