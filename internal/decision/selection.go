// Package decision implements the Decision Center: the list of active
// exceptions, a caller-owned selection and the bulk and per-invoice actions.
package decision

import (
	"sort"
)

// Selection is an immutable set of invoice ids. Operations return a new
// value and never modify the receiver. The zero value is empty.
type Selection struct {
	ids map[string]struct{}
}

// NewSelection creates a selection holding ids
func NewSelection(ids ...string) Selection {
	s := Selection{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Toggle adds id when absent and removes it when present.
// Toggling the same id twice restores the original membership.
func (s Selection) Toggle(id string) Selection {
	next := Selection{ids: make(map[string]struct{}, len(s.ids)+1)}
	for k := range s.ids {
		next.ids[k] = struct{}{}
	}
	if _, ok := next.ids[id]; ok {
		delete(next.ids, id)
	} else {
		next.ids[id] = struct{}{}
	}
	return next
}

// Has reports whether id is selected
func (s Selection) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected ids
func (s Selection) Len() int {
	return len(s.ids)
}

// IDs returns the selected ids in sorted order
func (s Selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Equal reports whether both selections hold the same ids
func (s Selection) Equal(other Selection) bool {
	if s.Len() != other.Len() {
		return false
	}
	for id := range s.ids {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

// Clear returns an empty selection
func (s Selection) Clear() Selection {
	return Selection{}
}
