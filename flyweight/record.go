package flyweight

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jonwraymond/flyweight/observe"
)

// Record is a flyweight: it holds one SharedState and nothing else that
// varies per use.
//
// A Record is immutable and only created by a Registry. Callers compare
// records by pointer; two lookups for the same key yield the same *Record.
type Record struct {
	id     uuid.UUID
	key    Key
	shared SharedState
}

func newRecord(key Key, shared SharedState) *Record {
	return &Record{
		id:     uuid.New(),
		key:    key,
		shared: shared.Clone(),
	}
}

// ID returns the random identifier assigned when the record was created.
func (r *Record) ID() uuid.UUID { return r.id }

// Key returns the registry key the record is stored under.
func (r *Record) Key() Key { return r.key }

// Shared returns a copy of the shared state.
func (r *Record) Shared() SharedState { return r.shared.Clone() }

// Operation combines the stored shared state with unique and returns a
// human-readable description. Any unique state is accepted, including nil.
func (r *Record) Operation(unique UniqueState) string {
	return fmt.Sprintf("Flyweight: Displaying shared (%s) and unique (%s) state.",
		render(r.shared), render(unique))
}

// String implements fmt.Stringer.
func (r *Record) String() string {
	return fmt.Sprintf("flyweight %s %s", r.key, render(r.shared))
}

func (r *Record) lookup(created bool) observe.Lookup {
	return observe.Lookup{Key: string(r.key), ID: r.id.String(), Created: created}
}
