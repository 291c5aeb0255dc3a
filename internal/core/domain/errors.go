package domain

import "errors"

// Domain errors represent business logic failures.
// Data-quality problems inside a document are never errors; bad records
// are dropped and processing continues.
var (
	// ErrMalformedDocument indicates input that is not JSON at all.
	// This is the only hard failure at the document boundary.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrDocumentUnavailable indicates no document could be fetched from
	// any candidate location. Callers substitute an empty working set.
	ErrDocumentUnavailable = errors.New("document unavailable")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)
