package flyweight

import (
	"encoding/json"
	"slices"
)

// SharedState is the intrinsic part of an entity, stored once per distinct
// token set.
type SharedState []string

// UniqueState is the extrinsic part of an entity. It is supplied at call time
// and never stored.
type UniqueState []string

// Clone returns a copy of s that does not alias its backing array.
func (s SharedState) Clone() SharedState {
	if s == nil {
		return SharedState{}
	}
	return slices.Clone(s)
}

// render returns the JSON array form of tokens. A nil slice renders as [].
func render(tokens []string) string {
	if tokens == nil {
		tokens = []string{}
	}
	data, err := json.Marshal(tokens)
	if err != nil {
		// []string always marshals.
		return "[]"
	}
	return string(data)
}
