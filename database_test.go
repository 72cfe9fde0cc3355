package synapse

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/poiesic/synapse/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	path := filepath.Join(t.TempDir(), "synapse-test")
	db, err := NewDatabase(path, WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})
	return db
}

func TestNewDatabase(t *testing.T) {
	db := newTestDatabase(t)
	assert.NotNil(t, db.NoteRepository())
	assert.NotNil(t, db.Provider())
}

func TestDatabase_EndToEnd(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	pipeline, err := db.NewIngestionPipeline()
	require.NoError(t, err)
	searcher, err := db.NewSearcher()
	require.NoError(t, err)

	note, err := pipeline.IngestText(ctx, "red shoe by the front door")
	require.NoError(t, err)
	assert.Equal(t, []string{"red", "shoe"}, note.Tags)

	found, err := searcher.Keyword(ctx, "front door")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, note.Id, found[0].Id)

	ranked, err := searcher.Semantic(ctx, "red shoe by the front door")
	require.NoError(t, err)
	require.NotEmpty(t, ranked)
	assert.InDelta(t, 1.0, ranked[0].Score, 1e-5)
}

func TestDatabase_CloseIsIdempotentSafe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synapse-close")
	db, err := NewDatabase(path, WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	require.NoError(t, db.Close())
}
