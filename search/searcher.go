package search

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/poiesic/synapse/ai"
	"github.com/poiesic/synapse/core"
	"github.com/poiesic/synapse/storage"
)

// semanticSearchLimit caps the number of semantic search hits.
const semanticSearchLimit = 5

// topTagsLimit caps the number of tags reported by analytics.
const topTagsLimit = 3

// Searcher answers retrieval queries over the note corpus: keyword search,
// semantic similarity search, structured date/tag filtering, and corpus
// analytics.
type Searcher struct {
	notes      storage.NoteRepository
	vectorizer ai.Vectorizer
	logger     *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(notes storage.NoteRepository, provider ai.Provider, opts ...Option) (*Searcher, error) {
	if notes == nil {
		return nil, ErrNoteRepositoryRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}

	s := &Searcher{
		notes:      notes,
		vectorizer: provider.Vectorizer(),
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Keyword returns notes whose text or tags contain the query,
// case-insensitively. This is a correctness-of-match operation: results are
// in store order, not relevance-ranked.
func (s *Searcher) Keyword(ctx context.Context, query string) ([]*core.Note, error) {
	return s.notes.FindByPattern(ctx, query)
}

// Semantic returns up to five notes ranked by cosine similarity between the
// query embedding and each note's embedding, best first. Notes without a
// usable embedding (image-origin or degraded) never participate. If the
// query embedding itself degrades, there is nothing meaningful to rank
// against and the result is empty.
func (s *Searcher) Semantic(ctx context.Context, query string) ([]*core.ScoredNote, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	result, err := s.vectorizer.Vectorize(ctx, query)
	if err != nil {
		return nil, err
	}
	if result.Degraded {
		s.logger.Warn("query embedding degraded, returning no semantic results", "query", query)
		return []*core.ScoredNote{}, nil
	}

	notes, err := s.notes.ScanAll(ctx)
	if err != nil {
		s.logger.Error("error scanning corpus", "err", err)
		return nil, err
	}

	scored := make([]*core.ScoredNote, 0, len(notes))
	for _, note := range notes {
		if !note.Embedding.Usable() {
			continue
		}
		tags := note.Tags
		if tags == nil {
			tags = []string{}
		}
		scored = append(scored, &core.ScoredNote{
			Text:  note.Text,
			Tags:  tags,
			Image: note.Image,
			Score: CosineSimilarity(note.Vector, result.Vector),
		})
	}

	// Stable sort: ties keep scan order
	slices.SortStableFunc(scored, func(a, b *core.ScoredNote) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if len(scored) > semanticSearchLimit {
		scored = scored[:semanticSearchLimit]
	}
	return scored, nil
}

// Filter returns notes created within [start, end], newest first, optionally
// constrained to a text/tag pattern. The end bound is widened to the last
// instant of its calendar day; nil bounds are unbounded.
func (s *Searcher) Filter(ctx context.Context, start, end *time.Time, pattern string) ([]*core.Note, error) {
	if end != nil {
		e := endOfDay(*end)
		end = &e
	}
	return s.notes.FindByRange(ctx, start, end, pattern)
}

// endOfDay returns 23:59:59.999 of the given day.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999*int(time.Millisecond), t.Location())
}

// Analytics summarizes the corpus: total count, notes created this month,
// and the three most frequent tags.
func (s *Searcher) Analytics(ctx context.Context) (*core.Analytics, error) {
	notes, err := s.notes.ScanAll(ctx)
	if err != nil {
		s.logger.Error("error scanning corpus", "err", err)
		return nil, err
	}

	// TODO: this counts notes from the current calendar month of any year
	thisMonth := time.Now().UTC().Month()

	monthCount := 0
	tagCounts := make(map[string]int)
	tagOrder := make(map[string]int)
	for _, note := range notes {
		if note.CreatedAt.Month() == thisMonth {
			monthCount++
		}
		for _, tag := range note.Tags {
			if _, seen := tagCounts[tag]; !seen {
				tagOrder[tag] = len(tagOrder)
			}
			tagCounts[tag]++
		}
	}

	tags := make([]string, 0, len(tagCounts))
	for tag := range tagCounts {
		tags = append(tags, tag)
	}
	// Occurrence descending, ties by first-encountered order
	slices.SortFunc(tags, func(a, b string) int {
		if tagCounts[a] != tagCounts[b] {
			return tagCounts[b] - tagCounts[a]
		}
		return tagOrder[a] - tagOrder[b]
	})
	if len(tags) > topTagsLimit {
		tags = tags[:topTagsLimit]
	}

	return &core.Analytics{
		TotalNotes:     len(notes),
		ThisMonthNotes: monthCount,
		TopTags:        tags,
	}, nil
}
