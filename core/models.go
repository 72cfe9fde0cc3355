package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// EmbeddingDim is the fixed dimensionality of note embeddings.
// Every ready vector in the corpus has exactly this length, which keeps
// cosine comparison well-defined across the whole corpus.
const EmbeddingDim = 1536

// ImagePlaceholderText is stored as a note's text when OCR recovers nothing
// from an image. Keyword search then matches the marker instead of silently
// matching against an empty string.
const ImagePlaceholderText = "Image content"

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// EmbeddingState records whether a note's vector is usable for ranking.
type EmbeddingState int

const (
	// EmbeddingNone means no embedding was ever computed (image-origin notes).
	EmbeddingNone EmbeddingState = iota
	// EmbeddingReady means the vector was produced by the real vectorizer.
	EmbeddingReady
	// EmbeddingDegraded means the vectorizer failed and the note carries no
	// usable vector. Degraded notes are excluded from semantic ranking but
	// remain retrievable by keyword search and filtering.
	EmbeddingDegraded
)

// Usable reports whether the state allows the vector to participate in
// similarity scoring.
func (s EmbeddingState) Usable() bool {
	return s == EmbeddingReady
}

// Note is the unit of storage: a captured snippet of text, optionally
// derived from an image, with auto-derived tags and an optional embedding.
// Notes are immutable once persisted.
type Note struct {
	Id        ID
	Text      string
	Vector    []float32 // Populated only when Embedding is EmbeddingReady
	Embedding EmbeddingState
	Tags      []string // Deduplicated lowercase vocabulary terms
	Image     string   // Base64 payload, set only for image-origin notes
	CreatedAt time.Time
}

// ScoredNote is a semantic search hit. The raw vector is deliberately not
// part of the result shape.
type ScoredNote struct {
	Text  string   `json:"text"`
	Tags  []string `json:"tags"`
	Image string   `json:"image,omitempty"`
	Score float32  `json:"score"`
}

// Analytics summarizes the corpus.
type Analytics struct {
	TotalNotes     int      `json:"totalNotes"`
	ThisMonthNotes int      `json:"thisMonthNotes"`
	TopTags        []string `json:"topTags"`
}
