package ingestion

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

func TestNewPipeline(t *testing.T) {
	repo := newTestRepo(t)
	provider := mock.NewMockProvider()

	t.Run("valid configuration", func(t *testing.T) {
		p, err := NewPipeline(repo, provider)
		require.NoError(t, err)
		assert.NotNil(t, p)
	})

	t.Run("nil repository", func(t *testing.T) {
		_, err := NewPipeline(nil, provider)
		assert.Equal(t, ErrNoteRepositoryRequired, err)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewPipeline(repo, nil)
		assert.Equal(t, ErrProviderRequired, err)
	})
}

func TestIngestText(t *testing.T) {
	repo := newTestRepo(t)
	provider := mock.NewMockProvider()
	p, err := NewPipeline(repo, provider)
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("empty input rejected", func(t *testing.T) {
		_, err := p.IngestText(ctx, "")
		assert.ErrorIs(t, err, ErrEmptyInput)

		_, err = p.IngestText(ctx, "   \t\n")
		assert.ErrorIs(t, err, ErrEmptyInput)
	})

	t.Run("tags derived and embedding stored", func(t *testing.T) {
		note, err := p.IngestText(ctx, "blue bag")
		require.NoError(t, err)
		require.NotNil(t, note)

		assert.NotEqual(t, core.ID(0), note.Id)
		assert.Equal(t, "blue bag", note.Text)
		assert.Equal(t, []string{"blue", "bag"}, note.Tags)
		assert.Equal(t, core.EmbeddingReady, note.Embedding)
		assert.Len(t, note.Vector, core.EmbeddingDim)
		assert.False(t, note.CreatedAt.IsZero())
		assert.WithinDuration(t, time.Now().UTC(), note.CreatedAt, time.Minute)

		// Persisted verbatim
		stored, err := repo.GetNote(ctx, note.Id)
		require.NoError(t, err)
		assert.Equal(t, note.Text, stored.Text)
	})
}

func TestIngestText_DegradePath(t *testing.T) {
	repo := newTestRepo(t)

	vectorizer := mock.NewMockVectorizer()
	vectorizer.Degrade = true
	provider := mock.NewMockProviderWithServices(vectorizer, mock.NewMockTextExtractor(""))

	p, err := NewPipeline(repo, provider)
	require.NoError(t, err)

	ctx := context.Background()
	note, err := p.IngestText(ctx, "provider is down right now")
	require.NoError(t, err, "vectorizer failure must not fail ingestion")
	require.NotNil(t, note)

	assert.Equal(t, core.EmbeddingDegraded, note.Embedding)
	assert.Empty(t, note.Vector)

	// Still retrievable by keyword
	found, err := repo.FindByPattern(ctx, "provider")
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestIngestImage(t *testing.T) {
	ctx := context.Background()
	payload := "aGVsbG8gd29ybGQ="

	t.Run("empty payload rejected", func(t *testing.T) {
		repo := newTestRepo(t)
		p, err := NewPipeline(repo, mock.NewMockProvider())
		require.NoError(t, err)

		_, err = p.IngestImage(ctx, "")
		assert.ErrorIs(t, err, ErrEmptyInput)
	})

	t.Run("extracted text drives tags", func(t *testing.T) {
		repo := newTestRepo(t)
		extractor := mock.NewMockTextExtractor("RED SHOE sale this weekend")
		provider := mock.NewMockProviderWithServices(mock.NewMockVectorizer(), extractor)
		p, err := NewPipeline(repo, provider)
		require.NoError(t, err)

		result, err := p.IngestImage(ctx, payload)
		require.NoError(t, err)

		assert.Equal(t, "RED SHOE sale this weekend", result.ExtractedText)
		assert.Equal(t, "RED SHOE sale this weekend", result.Note.Text)
		assert.Equal(t, []string{"red", "shoe"}, result.Note.Tags)
		assert.Equal(t, payload, result.Note.Image)
		assert.Equal(t, core.EmbeddingNone, result.Note.Embedding)
		assert.Empty(t, result.Note.Vector)
	})

	t.Run("no recovered text stores placeholder", func(t *testing.T) {
		repo := newTestRepo(t)
		extractor := mock.NewMockTextExtractor("")
		provider := mock.NewMockProviderWithServices(mock.NewMockVectorizer(), extractor)
		p, err := NewPipeline(repo, provider)
		require.NoError(t, err)

		result, err := p.IngestImage(ctx, payload)
		require.NoError(t, err, "OCR failure must not fail ingestion")

		assert.Equal(t, "", result.ExtractedText)
		assert.Equal(t, core.ImagePlaceholderText, result.Note.Text)
		assert.Empty(t, result.Note.Tags)

		// Placeholder makes the note reachable by keyword search
		found, err := repo.FindByPattern(ctx, "image content")
		require.NoError(t, err)
		assert.Len(t, found, 1)
	})
}
