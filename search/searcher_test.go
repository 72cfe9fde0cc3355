package search

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/synapse/ai/mock"
	"github.com/poiesic/synapse/core"
	"github.com/poiesic/synapse/storage"
	"github.com/poiesic/synapse/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) storage.NoteRepository {
	t.Helper()
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

// readyNote builds a note whose embedding matches what the mock vectorizer
// would produce for the same text.
func readyNote(text string, tags ...string) *core.Note {
	return &core.Note{
		Text:      text,
		Vector:    mock.DeterministicVector(text, core.EmbeddingDim),
		Embedding: core.EmbeddingReady,
		Tags:      tags,
	}
}

func TestNewSearcher(t *testing.T) {
	repo := newTestRepo(t)
	provider := mock.NewMockProvider()

	t.Run("valid configuration", func(t *testing.T) {
		s, err := NewSearcher(repo, provider)
		require.NoError(t, err)
		assert.NotNil(t, s)
	})

	t.Run("nil repository", func(t *testing.T) {
		_, err := NewSearcher(nil, provider)
		assert.Equal(t, ErrNoteRepositoryRequired, err)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewSearcher(repo, nil)
		assert.Equal(t, ErrProviderRequired, err)
	})
}

func TestKeyword(t *testing.T) {
	repo := newTestRepo(t)
	s, err := NewSearcher(repo, mock.NewMockProvider())
	require.NoError(t, err)

	ctx := context.Background()
	_, err = repo.AddNotes(ctx,
		readyNote("Bought new running shoes", "shoe"),
		readyNote("meeting notes from standup"),
		readyNote("dinner recipe", "red"),
	)
	require.NoError(t, err)

	t.Run("matches text case-insensitively", func(t *testing.T) {
		found, err := s.Keyword(ctx, "RUNNING")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Bought new running shoes", found[0].Text)
	})

	t.Run("matches tags", func(t *testing.T) {
		found, err := s.Keyword(ctx, "red")
		require.NoError(t, err)
		assert.Len(t, found, 1)
	})

	t.Run("no match", func(t *testing.T) {
		found, err := s.Keyword(ctx, "xyzzy")
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestSemantic(t *testing.T) {
	ctx := context.Background()

	t.Run("empty query rejected", func(t *testing.T) {
		s, err := NewSearcher(newTestRepo(t), mock.NewMockProvider())
		require.NoError(t, err)

		_, err = s.Semantic(ctx, "")
		assert.ErrorIs(t, err, ErrEmptyQuery)

		_, err = s.Semantic(ctx, "   ")
		assert.ErrorIs(t, err, ErrEmptyQuery)
	})

	t.Run("exact embedding match ranks first", func(t *testing.T) {
		repo := newTestRepo(t)
		s, err := NewSearcher(repo, mock.NewMockProvider())
		require.NoError(t, err)

		_, err = repo.AddNotes(ctx,
			readyNote("grocery list for the week"),
			readyNote("blue bag"),
			readyNote("car insurance renewal"),
		)
		require.NoError(t, err)

		results, err := s.Semantic(ctx, "blue bag")
		require.NoError(t, err)
		require.Len(t, results, 3)

		assert.Equal(t, "blue bag", results[0].Text)
		assert.InDelta(t, 1.0, results[0].Score, 1e-5)

		// Non-increasing scores
		for i := 1; i < len(results); i++ {
			assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
		}
	})

	t.Run("untagged notes carry an empty tag list", func(t *testing.T) {
		repo := newTestRepo(t)
		s, err := NewSearcher(repo, mock.NewMockProvider())
		require.NoError(t, err)

		_, err = repo.AddNotes(ctx, readyNote("nothing from the vocabularies here"))
		require.NoError(t, err)

		results, err := s.Semantic(ctx, "query")
		require.NoError(t, err)
		require.Len(t, results, 1)

		// Serializes as [] rather than null
		assert.NotNil(t, results[0].Tags)
		assert.Empty(t, results[0].Tags)
	})

	t.Run("caps results at five", func(t *testing.T) {
		repo := newTestRepo(t)
		s, err := NewSearcher(repo, mock.NewMockProvider())
		require.NoError(t, err)

		notes := make([]*core.Note, 8)
		for i := range notes {
			notes[i] = readyNote("note number " + string(rune('a'+i)))
		}
		_, err = repo.AddNotes(ctx, notes...)
		require.NoError(t, err)

		results, err := s.Semantic(ctx, "anything at all")
		require.NoError(t, err)
		assert.Len(t, results, 5)
	})

	t.Run("unusable embeddings excluded", func(t *testing.T) {
		repo := newTestRepo(t)
		s, err := NewSearcher(repo, mock.NewMockProvider())
		require.NoError(t, err)

		_, err = repo.AddNotes(ctx,
			readyNote("the only rankable note"),
			&core.Note{Text: "degraded note", Embedding: core.EmbeddingDegraded},
			&core.Note{Text: "Image content", Embedding: core.EmbeddingNone, Image: "aGk="},
		)
		require.NoError(t, err)

		results, err := s.Semantic(ctx, "query")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "the only rankable note", results[0].Text)
	})

	t.Run("degraded query embedding yields no results", func(t *testing.T) {
		repo := newTestRepo(t)
		_, err := repo.AddNotes(ctx, readyNote("present and rankable"))
		require.NoError(t, err)

		vectorizer := mock.NewMockVectorizer()
		vectorizer.Degrade = true
		provider := mock.NewMockProviderWithServices(vectorizer, mock.NewMockTextExtractor(""))

		s, err := NewSearcher(repo, provider)
		require.NoError(t, err)

		results, err := s.Semantic(ctx, "query")
		require.NoError(t, err, "degraded query must not surface as an error")
		assert.Empty(t, results)
	})
}

func TestFilter(t *testing.T) {
	repo := newTestRepo(t)
	s, err := NewSearcher(repo, mock.NewMockProvider())
	require.NoError(t, err)

	ctx := context.Background()
	day := func(d int, hour int) time.Time {
		return time.Date(2025, time.March, d, hour, 0, 0, 0, time.UTC)
	}

	older := readyNote("older entry", "red")
	older.CreatedAt = day(10, 9)
	evening := readyNote("evening entry")
	evening.CreatedAt = day(12, 18)
	newest := readyNote("newest entry")
	newest.CreatedAt = day(14, 8)

	_, err = repo.AddNotes(ctx, older, evening, newest)
	require.NoError(t, err)

	t.Run("end bound covers the whole day", func(t *testing.T) {
		start := day(12, 0)
		end := day(12, 0) // midnight, but the 18:00 note must still match
		found, err := s.Filter(ctx, &start, &end, "")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "evening entry", found[0].Text)
	})

	t.Run("newest first across the range", func(t *testing.T) {
		start := day(9, 0)
		end := day(15, 0)
		found, err := s.Filter(ctx, &start, &end, "")
		require.NoError(t, err)
		require.Len(t, found, 3)
		assert.Equal(t, "newest entry", found[0].Text)
		assert.Equal(t, "older entry", found[2].Text)
	})

	t.Run("open bounds", func(t *testing.T) {
		found, err := s.Filter(ctx, nil, nil, "")
		require.NoError(t, err)
		assert.Len(t, found, 3)
	})

	t.Run("pattern narrows the range", func(t *testing.T) {
		start := day(1, 0)
		end := day(31, 0)
		found, err := s.Filter(ctx, &start, &end, "red")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "older entry", found[0].Text)
	})
}

func TestAnalytics(t *testing.T) {
	repo := newTestRepo(t)
	s, err := NewSearcher(repo, mock.NewMockProvider())
	require.NoError(t, err)

	ctx := context.Background()
	now := time.Now().UTC()
	otherMonth := now.Month()%12 + 1

	a := readyNote("red shoe spotted downtown", "red", "shoe")
	a.CreatedAt = time.Date(now.Year(), now.Month(), 15, 10, 0, 0, 0, time.UTC)
	b := readyNote("red bike for sale", "red", "bike")
	b.CreatedAt = time.Date(now.Year()-1, now.Month(), 15, 10, 0, 0, 0, time.UTC)
	c := readyNote("shoe rack assembly", "shoe")
	c.CreatedAt = time.Date(2020, otherMonth, 15, 10, 0, 0, 0, time.UTC)
	d := readyNote("blue notebook", "blue")
	d.CreatedAt = time.Date(2020, otherMonth, 16, 10, 0, 0, 0, time.UTC)

	_, err = repo.AddNotes(ctx, a, b, c, d)
	require.NoError(t, err)

	stats, err := s.Analytics(ctx)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalNotes)

	// Month comparison ignores the year, so last year's same-month note counts
	assert.Equal(t, 2, stats.ThisMonthNotes)

	// red=2 shoe=2 bike=1 blue=1; ties break by first encounter
	assert.Equal(t, []string{"red", "shoe", "bike"}, stats.TopTags)
}

func TestAnalytics_EmptyCorpus(t *testing.T) {
	repo := newTestRepo(t)
	s, err := NewSearcher(repo, mock.NewMockProvider())
	require.NoError(t, err)

	stats, err := s.Analytics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalNotes)
	assert.Equal(t, 0, stats.ThisMonthNotes)
	assert.Empty(t, stats.TopTags)
}
