package content

import "errors"

var (
	// ErrNotFound indicates no record exists for the identity. Callers on
	// read-only paths treat this as an expected outcome, not a failure.
	ErrNotFound = errors.New("content: record not found")

	// ErrInvalidIdentity indicates the identity has empty fields.
	ErrInvalidIdentity = errors.New("content: invalid identity")

	// ErrNilRecord indicates a nil record was passed where one is required.
	ErrNilRecord = errors.New("content: nil record")
)
