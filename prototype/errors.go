package prototype

import "errors"

var (
	// ErrEmptySet indicates a document with no prototypes.
	ErrEmptySet = errors.New("prototype: no prototypes defined")
	// ErrInvalidPrototype indicates a record failed field validation.
	ErrInvalidPrototype = errors.New("prototype: invalid prototype")
	// ErrUnknownNeighbor indicates a neighbor list names an undefined id.
	ErrUnknownNeighbor = errors.New("prototype: unknown neighbor id")
)
