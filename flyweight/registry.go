package flyweight

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/jonwraymond/flyweight/observe"
)

// Registry owns the deduplicated pool of Records.
//
// Contract:
//   - Identity: GetOrCreate returns the same *Record for every state that maps to the same Key.
//   - Concurrency: safe for concurrent use; concurrent misses on one key create one Record.
//   - Growth: records are never removed.
type Registry struct {
	mu      sync.RWMutex
	records map[Key]*Record
	order   []Key

	keyer Keyer
	inst  *observe.Instrument

	hits   atomic.Int64
	misses atomic.Int64
}

// Stats is a point-in-time snapshot of registry counters.
type Stats struct {
	Records int
	Hits    int64
	Misses  int64
}

// New creates a registry seeded with initial, in order.
//
// Seeds that collide on Key keep the first state; later ones are dropped and
// logged at warn level.
func New(initial []SharedState, opts ...Option) *Registry {
	o := buildOptions(opts)

	r := &Registry{
		records: make(map[Key]*Record, len(initial)),
		order:   make([]Key, 0, len(initial)),
		keyer:   o.keyer,
		inst:    o.middleware.Bind(observe.RegistryMeta{Name: o.name, Keyer: keyerName(o.keyer)}),
	}

	ctx := context.Background()
	logger := r.inst.Logger()
	for _, state := range initial {
		key := r.keyer.Key(state)
		if kept, exists := r.records[key]; exists {
			logger.Warn(ctx, "dropping seed that collides with an existing flyweight",
				observe.Field{Key: "key", Value: string(key)},
				observe.Field{Key: "kept", Value: render(kept.shared)},
				observe.Field{Key: "dropped", Value: render(state)},
			)
			continue
		}
		rec := r.insert(key, state)
		r.inst.Seeded(ctx, rec.lookup(true))
	}

	return r
}

// KeyOf derives the key for state using the registry's Keyer.
func (r *Registry) KeyOf(state SharedState) Key {
	return r.keyer.Key(state)
}

// GetOrCreate returns the record for state, creating and storing it on a
// miss. It never fails.
func (r *Registry) GetOrCreate(ctx context.Context, state SharedState) *Record {
	ctx, pending := r.inst.Start(ctx)
	rec, created := r.getOrCreate(state)
	r.inst.Finish(ctx, pending, rec.lookup(created))
	return rec
}

func (r *Registry) getOrCreate(state SharedState) (*Record, bool) {
	key := r.keyer.Key(state)

	r.mu.RLock()
	rec, ok := r.records[key]
	r.mu.RUnlock()
	if ok {
		r.hits.Add(1)
		return rec, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another caller may have created it between the locks.
	if rec, ok := r.records[key]; ok {
		r.hits.Add(1)
		return rec, false
	}
	r.misses.Add(1)
	return r.insertLocked(key, state), true
}

// Lookup returns the record for state without creating one.
func (r *Registry) Lookup(_ context.Context, state SharedState) (*Record, bool) {
	key := r.keyer.Key(state)

	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[key]
	return rec, ok
}

// List returns the number of records and their keys in insertion order.
func (r *Registry) List() (int, []Key) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order), slices.Clone(r.order)
}

// Len returns the number of records.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// Stats returns the current record count and GetOrCreate hit/miss counters.
func (r *Registry) Stats() Stats {
	return Stats{
		Records: r.Len(),
		Hits:    r.hits.Load(),
		Misses:  r.misses.Load(),
	}
}

// FormatList writes "<count> flyweights:" followed by one key per line.
func (r *Registry) FormatList(w io.Writer) error {
	n, keys := r.List()
	if _, err := fmt.Fprintf(w, "%d flyweights:\n", n); err != nil {
		return err
	}
	for _, k := range keys {
		if _, err := fmt.Fprintln(w, k); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) insert(key Key, state SharedState) *Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insertLocked(key, state)
}

func (r *Registry) insertLocked(key Key, state SharedState) *Record {
	rec := newRecord(key, state)
	r.records[key] = rec
	r.order = append(r.order, key)
	return rec
}
