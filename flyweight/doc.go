// Package flyweight provides a registry that deduplicates immutable shared
// state records.
//
// A Record holds state that many logical entities have in common (a car's
// make, model and color). Callers pass the per-use state (a plate number, an
// owner) to Record.Operation at call time, so it is never stored.
//
// Registry.GetOrCreate derives a canonical Key from the shared state and
// returns the record already stored under it, or creates one. Two states that
// hold the same tokens in any order map to the same Key and therefore to the
// same *Record.
//
// Key derivation is pluggable through Keyer. DelimitedKeyer sorts and joins
// tokens and is the default; DigestKeyer hashes the sorted tokens
// length-prefixed, so tokens that contain the delimiter cannot collide.
//
// There is no eviction. A registry grows by one record per distinct key for as
// long as it lives; health.CapacityChecker can watch its size.
package flyweight
