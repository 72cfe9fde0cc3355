package badger

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/synapse/core"
	"github.com/poiesic/synapse/storage"
)

// maxValueSize caps a single stored note. Badger rejects transactions above
// roughly 15% of the memtable size (9.6MB with default options); checking
// here turns that ceiling into a storage error instead of a txn failure.
const maxValueSize = 9 << 20

// NoteRepository implements storage.NoteRepository for BadgerDB.
type NoteRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.NoteRepository = (*NoteRepository)(nil)

// NewNoteRepository creates a new NoteRepository.
func NewNoteRepository(backend *Backend) (*NoteRepository, error) {
	idSeq, err := backend.GetSequence(noteIDSeq)
	if err != nil {
		return nil, err
	}

	return &NoteRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *NoteRepository) Close() error {
	return r.idSeq.Release()
}

// AddNotes persists one or more notes together with their date-index
// entries. IDs come from the store sequence; CreatedAt defaults to now.
func (r *NoteRepository) AddNotes(ctx context.Context, notes ...*core.Note) ([]*core.Note, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, note := range notes {
			// Always generate new ID from sequence
			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			note.Id = core.ID(nextID)

			if note.CreatedAt.IsZero() {
				note.CreatedAt = time.Now().UTC()
			}

			// Store primary record
			key := makeNoteKey(note.Id)
			value := storage.MarshalNote(note)
			if len(value) > maxValueSize {
				return fmt.Errorf("%w: note is %d bytes, limit %d",
					storage.ErrValueTooLarge, len(value), maxValueSize)
			}
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update date index
			dateKey := makeNoteDateKey(note.CreatedAt, note.Id)
			if err := tx.Set(dateKey, storage.MarshalID(note.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return notes, err
}

// GetNote retrieves a single note by ID.
func (r *NoteRepository) GetNote(ctx context.Context, id core.ID) (*core.Note, error) {
	var result *core.Note
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeNoteKey(id)
		var err error
		result, err = r.readNote(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetNotes retrieves multiple notes by their IDs.
func (r *NoteRepository) GetNotes(ctx context.Context, ids ...core.ID) ([]*core.Note, error) {
	var result []*core.Note
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeNoteKey(id)
			note, err := r.readNote(tx, key)
			if err != nil {
				return err
			}
			if note != nil {
				result = append(result, note)
			}
		}
		return nil
	}, false)
	return result, err
}

// ScanAll returns the full corpus in stable store order.
func (r *NoteRepository) ScanAll(ctx context.Context) ([]*core.Note, error) {
	var results []*core.Note
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		results, err = r.scanNotes(tx, nil)
		return err
	}, false)
	return results, err
}

// FindByPattern returns notes whose text or any tag contains the pattern,
// case-insensitively. The pattern is sanitized before matching.
func (r *NoteRepository) FindByPattern(ctx context.Context, pattern string) ([]*core.Note, error) {
	re := storage.CompilePattern(pattern)

	var results []*core.Note
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		results, err = r.scanNotes(tx, func(note *core.Note) bool {
			return storage.MatchNote(re, note)
		})
		return err
	}, false)
	return results, err
}

// FindByRange returns notes with CreatedAt in [start, end], newest first,
// via reverse iteration over the date index. Nil bounds are unbounded; a
// non-empty pattern additionally requires a text/tag match.
func (r *NoteRepository) FindByRange(ctx context.Context, start, end *time.Time, pattern string) ([]*core.Note, error) {
	match := func(*core.Note) bool { return true }
	if pattern != "" {
		re := storage.CompilePattern(pattern)
		match = func(note *core.Note) bool {
			return storage.MatchNote(re, note)
		}
	}

	// Upper bound for reverse iteration; inclusive of every ID at end.
	seekKey := makeMaxNoteDateKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))
	if end != nil {
		seekKey = makeMaxNoteDateKey(*end)
	}

	var lowerKey []byte
	if start != nil {
		lowerKey = makePartialNoteDateKey(*start)
	}

	prefix := []byte(noteDatePrefix + ":")

	var results []*core.Note
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(seekKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if !bytes.HasPrefix(key, prefix) {
				break
			}
			if lowerKey != nil && bytes.Compare(key, lowerKey) < 0 {
				break
			}

			// Read the ID from the index
			var noteID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				noteID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full record
			note, err := r.readNote(tx, makeNoteKey(noteID))
			if err != nil {
				return err
			}
			if note != nil && match(note) {
				results = append(results, note)
			}
		}
		return nil
	}, false)

	return results, err
}

// scanNotes iterates all primary note records, skipping index and sequence
// keys, applying the optional filter.
func (r *NoteRepository) scanNotes(tx *badger.Txn, keep func(*core.Note) bool) ([]*core.Note, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(notePrefix)
	iter := tx.NewIterator(opts)
	defer iter.Close()

	var results []*core.Note
	for iter.Rewind(); iter.Valid(); iter.Next() {
		item := iter.Item()
		key := item.Key()

		// Skip the date index and the sequence key, which share the prefix
		if bytes.Equal(key, []byte(noteIDSeq)) ||
			bytes.HasPrefix(key, []byte(noteDatePrefix)) {
			continue
		}

		var note *core.Note
		err := item.Value(func(val []byte) error {
			var err error
			note, err = storage.UnmarshalNote(val)
			return err
		})
		if err != nil {
			return nil, err
		}
		if note == nil {
			continue
		}

		if keep == nil || keep(note) {
			results = append(results, note)
		}
	}
	return results, nil
}

// readNote reads and deserializes a note by key.
// Returns nil (no error) if the key doesn't exist.
func (r *NoteRepository) readNote(tx *badger.Txn, key []byte) (*core.Note, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var note *core.Note
	err = item.Value(func(val []byte) error {
		var err error
		note, err = storage.UnmarshalNote(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}
