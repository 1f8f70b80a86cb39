package flyweight

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"slices"
	"strings"
)

// Key is the canonical registry key for a SharedState.
type Key string

// String implements fmt.Stringer.
func (k Key) String() string { return string(k) }

// DefaultDelimiter joins sorted tokens in DelimitedKeyer.
const DefaultDelimiter = "_"

// Keyer derives registry keys from shared state.
//
// Contract:
// - Determinism: the key is a pure function of the token multiset; token order is irrelevant.
// - Ownership: implementations must not modify the state passed in.
// - Concurrency: implementations must be safe for concurrent use.
type Keyer interface {
	Key(state SharedState) Key
}

// KeyOf derives the key for state with the default DelimitedKeyer.
func KeyOf(state SharedState) Key {
	return DelimitedKeyer{}.Key(state)
}

// DelimitedKeyer sorts tokens lexicographically and joins them with
// Delimiter. An empty Delimiter means DefaultDelimiter.
//
// Tokens containing the delimiter can collide: ["a_b","c"] and ["a","b_c"]
// both map to "a_b_c". Use DigestKeyer when tokens are arbitrary.
type DelimitedKeyer struct {
	Delimiter string
}

// Key implements Keyer.
func (k DelimitedKeyer) Key(state SharedState) Key {
	delim := k.Delimiter
	if delim == "" {
		delim = DefaultDelimiter
	}
	return Key(strings.Join(sortedTokens(state), delim))
}

// DigestKeyer hashes the sorted tokens, each prefixed with its length, with
// SHA-256. Format: sha256:<first 16 bytes of the digest, hex>
type DigestKeyer struct{}

// Key implements Keyer.
func (DigestKeyer) Key(state SharedState) Key {
	h := sha256.New()
	var lenBuf [binary.MaxVarintLen64]byte
	for _, tok := range sortedTokens(state) {
		n := binary.PutUvarint(lenBuf[:], uint64(len(tok)))
		h.Write(lenBuf[:n])
		h.Write([]byte(tok))
	}
	sum := h.Sum(nil)
	return Key("sha256:" + hex.EncodeToString(sum[:16]))
}

// keyerName reports the scheme name used in telemetry.
func keyerName(k Keyer) string {
	switch k.(type) {
	case DelimitedKeyer, *DelimitedKeyer:
		return "delimited"
	case DigestKeyer, *DigestKeyer:
		return "digest"
	default:
		return "custom"
	}
}

func sortedTokens(state SharedState) []string {
	tokens := slices.Clone([]string(state))
	slices.Sort(tokens)
	return tokens
}

var (
	_ Keyer = DelimitedKeyer{}
	_ Keyer = DigestKeyer{}
)
