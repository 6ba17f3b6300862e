package main

import "errors"

// Error kinds returned by catalog and ledger operations. Handlers map these
// to HTTP statuses; nothing in this package writes responses directly.
var (
	// ErrNotFound: a referenced id does not resolve to an existing row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateName: a name-scoped uniqueness rule was violated.
	ErrDuplicateName = errors.New("name already exists")
	// ErrInUse: a delete was blocked because transactions still reference the row.
	ErrInUse = errors.New("record is referenced by transactions")
)

// ValidationError reports a consistency violation between a transaction and
// its reference rows, or a bad required field.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }
