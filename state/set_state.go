package state

import (
	"fmt"
	"strings"
)

// SetState is an insertion-ordered set of comparable values. Enumeration
// follows insertion order, so seeded solves are reproducible. The zero value
// is an empty set ready to use.
type SetState[T comparable] struct {
	items []T
	index map[T]struct{}
}

// NewSet returns a set holding values; duplicates are dropped.
func NewSet[T comparable](values ...T) *SetState[T] {
	s := &SetState[T]{
		items: make([]T, 0, len(values)),
		index: make(map[T]struct{}, len(values)),
	}
	for _, v := range values {
		s.add(v)
	}

	return s
}

// NewFinal returns the single-member set {v}.
func NewFinal[T comparable](v T) *SetState[T] {
	return NewSet(v)
}

func (s *SetState[T]) add(v T) {
	if s.index == nil {
		s.index = make(map[T]struct{})
	}
	if _, ok := s.index[v]; ok {
		return
	}
	s.index[v] = struct{}{}
	s.items = append(s.items, v)
}

// Contains reports whether v is a member.
func (s *SetState[T]) Contains(v T) bool {
	_, ok := s.index[v]
	return ok
}

// Values returns a copy of the members in insertion order.
func (s *SetState[T]) Values() []T {
	return append([]T(nil), s.items...)
}

// Count returns the number of members.
func (s *SetState[T]) Count() int {
	return len(s.items)
}

// CollectFinalStates appends {v} for every member v, in insertion order.
func (s *SetState[T]) CollectFinalStates(out []*SetState[T]) []*SetState[T] {
	for _, v := range s.items {
		out = append(out, NewFinal(v))
	}

	return out
}

// HasAnyOf reports whether s and other intersect.
func (s *SetState[T]) HasAnyOf(other *SetState[T]) bool {
	small, large := s, other
	if len(small.items) > len(large.items) {
		small, large = large, small
	}
	for _, v := range small.items {
		if large.Contains(v) {
			return true
		}
	}

	return false
}

// ClearStates removes the members of other. Relative order of the remaining
// members is kept.
func (s *SetState[T]) ClearStates(other *SetState[T]) {
	if s == other {
		s.items = s.items[:0]
		clear(s.index)
		return
	}
	if !s.HasAnyOf(other) {
		return
	}
	kept := s.items[:0]
	for _, v := range s.items {
		if other.Contains(v) {
			delete(s.index, v)
			continue
		}
		kept = append(kept, v)
	}
	clear(s.items[len(kept):])
	s.items = kept
}

// SetStates adds the members of other not already present, in other's order.
func (s *SetState[T]) SetStates(other *SetState[T]) {
	for _, v := range other.items {
		s.add(v)
	}
}

// Clone returns an independent copy.
func (s *SetState[T]) Clone() *SetState[T] {
	return NewSet(s.items...)
}

// Equal reports whether both sets hold the same members, ignoring order.
func (s *SetState[T]) Equal(other *SetState[T]) bool {
	if len(s.items) != len(other.items) {
		return false
	}
	for _, v := range other.items {
		if !s.Contains(v) {
			return false
		}
	}

	return true
}

// Get returns the only member when the set is final.
func (s *SetState[T]) Get() (T, bool) {
	if len(s.items) != 1 {
		var zero T
		return zero, false
	}

	return s.items[0], true
}

// String renders the members in insertion order, e.g. {a, b}.
func (s *SetState[T]) String() string {
	parts := make([]string, len(s.items))
	for i, v := range s.items {
		parts[i] = fmt.Sprint(v)
	}

	return "{" + strings.Join(parts, ", ") + "}"
}
