package flyweight

import (
	"slices"
	"testing"

	"github.com/google/uuid"
)

func TestRecord_Operation(t *testing.T) {
	rec := newRecord("BMW_M5_red", SharedState{"BMW", "M5", "red"})

	got := rec.Operation(UniqueState{"CL234IR", "JamesDoe"})
	want := `Flyweight: Displaying shared (["BMW","M5","red"]) and unique (["CL234IR","JamesDoe"]) state.`
	if got != want {
		t.Errorf("Operation() =\n  %s\nwant\n  %s", got, want)
	}
}

func TestRecord_OperationEmptyUnique(t *testing.T) {
	rec := newRecord("", nil)

	want := "Flyweight: Displaying shared ([]) and unique ([]) state."
	if got := rec.Operation(nil); got != want {
		t.Errorf("Operation(nil) = %q, want %q", got, want)
	}
	if got := rec.Operation(UniqueState{}); got != want {
		t.Errorf("Operation(empty) = %q, want %q", got, want)
	}
}

func TestRecord_OperationIsPure(t *testing.T) {
	rec := newRecord("BMW_M5_red", SharedState{"BMW", "M5", "red"})
	before := rec.Shared()

	rec.Operation(UniqueState{"CL234IR", "James Doe"})
	rec.Operation(UniqueState{"XX999", "Jane Roe", "extra"})

	if !slices.Equal(rec.Shared(), before) {
		t.Errorf("shared state changed: %v -> %v", before, rec.Shared())
	}
	if rec.Key() != "BMW_M5_red" {
		t.Errorf("key changed: %q", rec.Key())
	}
}

func TestRecord_NoAliasing(t *testing.T) {
	state := SharedState{"BMW", "M5", "red"}
	rec := newRecord(KeyOf(state), state)

	state[0] = "Audi"
	if got := rec.Shared()[0]; got != "BMW" {
		t.Errorf("record aliased caller state: got %q", got)
	}

	shared := rec.Shared()
	shared[1] = "M3"
	if got := rec.Shared()[1]; got != "M5" {
		t.Errorf("Shared() exposed internal state: got %q", got)
	}
}

func TestRecord_ID(t *testing.T) {
	a := newRecord("a", SharedState{"a"})
	b := newRecord("a", SharedState{"a"})

	if a.ID() == uuid.Nil {
		t.Error("expected non-nil ID")
	}
	if a.ID() == b.ID() {
		t.Error("expected distinct IDs for distinct records")
	}
}

func TestRecord_String(t *testing.T) {
	rec := newRecord("BMW_M5_red", SharedState{"BMW", "M5", "red"})
	if got, want := rec.String(), `flyweight BMW_M5_red ["BMW","M5","red"]`; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
