package entity

import "errors"

// Domain errors
var (
	// Input errors - rejected before any external call
	ErrInvalidInput     = errors.New("empty or whitespace-only input")
	ErrUnsupportedInput = errors.New("document produced no indexable text")

	// Upstream errors - embedding, vector store or completion call failed;
	// never retried by the core, the caller decides
	ErrUpstream = errors.New("upstream service call failed")
	ErrIndexing = errors.New("indexing failed")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// File errors
	ErrInvalidFile       = errors.New("invalid file")
	ErrFileTooLarge      = errors.New("file too large")
	ErrTooManyFiles      = errors.New("too many files")
	ErrInvalidExtension  = errors.New("invalid file extension")
	ErrTotalSizeTooLarge = errors.New("total file size too large")
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// Validation errors
	ErrMissingField = errors.New("required field is missing")
)
