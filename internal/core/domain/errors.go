package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown block type or store backend.
	ErrUnsupportedType = errors.New("unsupported type")

	// Search Errors.

	// ErrCorpusFetch indicates the topic store was unreachable, timed out,
	// or returned malformed data during a corpus refresh.
	// The corpus cache absorbs it and serves the last good snapshot.
	ErrCorpusFetch = errors.New("corpus fetch failed")

	// ErrMalformedBlock indicates a content block payload with an unexpected shape.
	// Such blocks contribute no searchable text.
	ErrMalformedBlock = errors.New("malformed content block")

	// ErrQueryTooShort indicates a query below MinQueryLength.
	// Search treats it as a guard and returns no results.
	ErrQueryTooShort = errors.New("query too short")

	// ErrStoreClosed indicates the topic store has been closed.
	ErrStoreClosed = errors.New("store closed")
)
