package ai

import (
	"context"
	"errors"
)

// Caller contract violations. Provider failures are never reported through
// these; they are absorbed into degraded results.
var (
	// ErrEmptyText is returned when vectorization is requested for empty or
	// all-whitespace text.
	ErrEmptyText = errors.New("text cannot be empty")

	// ErrEmptyImage is returned when text extraction is requested without an
	// image payload.
	ErrEmptyImage = errors.New("image payload cannot be empty")
)

// VectorResult is the outcome of a vectorization call.
// A degraded result carries no vector: the provider failed and there is
// nothing meaningful to compare against.
type VectorResult struct {
	// Vector is the embedding, EmbeddingDim entries, set only when Degraded
	// is false.
	Vector []float32

	// Degraded marks a provider failure (quota, network, timeout). Degraded
	// results must never participate in similarity ranking.
	Degraded bool
}

// Vectorizer converts text into a fixed-length embedding vector for semantic
// similarity search. Implementations must be thread-safe for concurrent use.
type Vectorizer interface {
	// Vectorize generates an embedding for the given text.
	// Returns ErrEmptyText if text is empty or all-whitespace; this is the
	// only error condition. Provider failures do not propagate: the call
	// succeeds with a degraded result instead. One outbound provider call
	// per invocation, no retries.
	Vectorize(ctx context.Context, text string) (VectorResult, error)
}

// TextExtractor recovers text from an image payload (OCR).
// Implementations must be thread-safe for concurrent use.
type TextExtractor interface {
	// ExtractText runs OCR over a base64-encoded image and returns the
	// recovered text. Returns ErrEmptyImage if no payload is supplied.
	// Any internal failure yields an empty string, not an error: callers
	// must treat "" as "no text recovered".
	ExtractText(ctx context.Context, imageBase64 string) (string, error)
}

// Provider aggregates AI services for convenient initialization and
// lifecycle management.
type Provider interface {
	// Vectorizer returns the text embedding service.
	Vectorizer() Vectorizer

	// TextExtractor returns the OCR service.
	TextExtractor() TextExtractor

	// Close releases resources held by the provider and its services.
	Close() error
}
