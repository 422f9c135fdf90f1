package state

// State is a set of candidate concrete states for one cell. S is the
// implementing pointer type itself, e.g. *SetState[string].
type State[S any] interface {
	// CollectFinalStates appends one single-member set per value still
	// possible and returns the extended slice. Order is fixed by the
	// implementation and does not depend on call history.
	CollectFinalStates(out []S) []S
	// HasAnyOf reports whether the receiver and other share a member.
	HasAnyOf(other S) bool
	// ClearStates removes every member of other from the receiver.
	ClearStates(other S)
	// SetStates adds every member of other to the receiver.
	SetStates(other S)
	// Clone returns an independent copy.
	Clone() S
	// Equal reports whether both sets hold the same members.
	Equal(other S) bool
}

// Final is implemented by states that can name their single member.
type Final[T any] interface {
	// Get returns the only member, or false when the set does not hold
	// exactly one.
	Get() (T, bool)
}

// Counter is an optional fast path for Count.
type Counter interface {
	Count() int
}

// Count returns the number of members of s, using Counter when available.
func Count[S State[S]](s S) int {
	if c, ok := any(s).(Counter); ok {
		return c.Count()
	}

	return len(s.CollectFinalStates(nil))
}

// IsFinal reports whether s holds exactly one member.
func IsFinal[S State[S]](s S) bool {
	return Count(s) == 1
}

// Empty returns a set of the same representation as s with no members.
func Empty[S State[S]](s S) S {
	e := s.Clone()
	e.ClearStates(s)

	return e
}
