package storage

import (
	"context"
	"time"

	"github.com/poiesic/synapse/core"
)

// NoteRepository owns the persisted corpus of notes. The corpus is
// append-only: notes are immutable once stored and there are no update or
// delete operations. Implementations must be thread-safe and must persist
// each note atomically.
type NoteRepository interface {
	// AddNotes persists one or more notes.
	// Generates IDs from the store sequence and sets CreatedAt to the
	// current time when unset. Each note is written atomically together
	// with its index entries. Returns the notes with IDs populated.
	AddNotes(ctx context.Context, notes ...*core.Note) ([]*core.Note, error)

	// GetNote retrieves a single note by ID.
	// Returns ErrNotFound if the note doesn't exist.
	GetNote(ctx context.Context, id core.ID) (*core.Note, error)

	// GetNotes retrieves multiple notes by their IDs.
	// Returns only the notes that exist (no error for missing notes).
	GetNotes(ctx context.Context, ids ...core.ID) ([]*core.Note, error)

	// ScanAll returns the full corpus in stable store order.
	// Semantic search and analytics run over this scan; there is no index.
	ScanAll(ctx context.Context) ([]*core.Note, error)

	// FindByPattern returns notes whose text or any tag contains the
	// pattern, case-insensitively. The pattern is treated as a literal
	// (sanitized before matching). Results are in stable store order.
	FindByPattern(ctx context.Context, pattern string) ([]*core.Note, error)

	// FindByRange returns notes with CreatedAt in [start, end], newest
	// first. A nil start or end leaves that side unbounded. A non-empty
	// pattern additionally requires a text/tag match (logical AND).
	FindByRange(ctx context.Context, start, end *time.Time, pattern string) ([]*core.Note, error)

	// Close closes the repository and releases resources.
	Close() error
}
