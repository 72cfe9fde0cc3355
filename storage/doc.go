// Package storage defines the persistence contract for the note corpus and
// shared serialization helpers. The corpus is append-only; the repository
// supports insert, full scan, pattern match, and date-range queries, but no
// mutation of stored notes.
package storage
