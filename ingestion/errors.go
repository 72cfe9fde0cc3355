package ingestion

import "errors"

var (
	// ErrEmptyInput is returned when no usable content was supplied.
	ErrEmptyInput = errors.New("empty input")

	// ErrNoteRepositoryRequired is returned when a note repository is not provided.
	ErrNoteRepositoryRequired = errors.New("note repository required")

	// ErrProviderRequired is returned when an AI provider is not provided.
	ErrProviderRequired = errors.New("AI provider required")
)
