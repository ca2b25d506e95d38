package metrics

import "github.com/mohae/deepcopy"

// Kind names one derivation for memoization
type Kind string

// Derivation kinds cached by the dashboard
const (
	KindExecutive Kind = "executive"
	KindMatch     Kind = "match"
	KindRootCause Kind = "root_cause"
	KindBlock     Kind = "block"
	KindDecisions Kind = "decisions"
	KindOptions   Kind = "options"
)

// Memo caches derivations computed over one filtered collection. Entries
// are keyed by kind and dropped as soon as the collection key changes.
// Not safe for concurrent use.
type Memo struct {
	key     string
	entries map[Kind]any
	hits    int
	misses  int
}

// NewMemo creates an empty memo
func NewMemo() *Memo {
	return &Memo{entries: make(map[Kind]any)}
}

// Reset drops every cached entry and binds the memo to key
func (m *Memo) Reset(key string) {
	m.key = key
	m.entries = make(map[Kind]any)
}

// Key returns the collection key the entries belong to
func (m *Memo) Key() string {
	return m.key
}

// Stats returns cache hits and misses since creation
func (m *Memo) Stats() (hits, misses int) {
	return m.hits, m.misses
}

// Memoize returns the cached value for (key, kind) or computes and stores it.
// Callers always get a deep copy, so editing a result never reaches the cache.
func Memoize[T any](m *Memo, key string, kind Kind, compute func() T) T {
	if m == nil {
		return compute()
	}
	if m.key != key {
		m.Reset(key)
	}
	if v, ok := m.entries[kind]; ok {
		if typed, ok := v.(T); ok {
			m.hits++
			return detach(typed)
		}
	}
	m.misses++
	v := compute()
	m.entries[kind] = v
	return detach(v)
}

func detach[T any](v T) T {
	if c, ok := deepcopy.Copy(v).(T); ok {
		return c
	}
	return v
}
