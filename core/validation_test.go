package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestNote() *Note {
	return &Note{
		Id:        ID(1),
		Text:      "blue bag spotted downtown",
		Embedding: EmbeddingNone,
		Tags:      []string{"blue", "bag"},
		CreatedAt: time.Now().UTC().Add(-time.Minute),
	}
}

func TestValidateNote(t *testing.T) {
	t.Run("valid note", func(t *testing.T) {
		require.NoError(t, ValidateNote(validTestNote()))
	})

	t.Run("valid note with ready vector", func(t *testing.T) {
		note := validTestNote()
		note.Embedding = EmbeddingReady
		note.Vector = make([]float32, EmbeddingDim)
		require.NoError(t, ValidateNote(note))
	})

	t.Run("nil note", func(t *testing.T) {
		err := ValidateNote(nil)
		assert.ErrorIs(t, err, ErrInvalidNote)
	})

	t.Run("empty text", func(t *testing.T) {
		note := validTestNote()
		note.Text = ""
		err := ValidateNote(note)
		assert.ErrorIs(t, err, ErrEmptyText)
	})

	t.Run("future timestamp", func(t *testing.T) {
		note := validTestNote()
		note.CreatedAt = time.Now().Add(time.Hour)
		err := ValidateNote(note)
		assert.ErrorIs(t, err, ErrInvalidTimestamp)
	})

	t.Run("uppercase tag", func(t *testing.T) {
		note := validTestNote()
		note.Tags = []string{"Blue"}
		err := ValidateNote(note)
		assert.ErrorIs(t, err, ErrInvalidTag)
	})

	t.Run("duplicate tag", func(t *testing.T) {
		note := validTestNote()
		note.Tags = []string{"blue", "blue"}
		err := ValidateNote(note)
		assert.ErrorIs(t, err, ErrInvalidTag)
	})

	t.Run("ready vector with wrong dimensionality", func(t *testing.T) {
		note := validTestNote()
		note.Embedding = EmbeddingReady
		note.Vector = []float32{0.1, 0.2}
		err := ValidateNote(note)
		assert.ErrorIs(t, err, ErrInvalidVector)
	})

	t.Run("degraded note must not carry a vector", func(t *testing.T) {
		note := validTestNote()
		note.Embedding = EmbeddingDegraded
		note.Vector = []float32{0.1}
		err := ValidateNote(note)
		assert.ErrorIs(t, err, ErrInvalidVector)
	})

	t.Run("unknown embedding state", func(t *testing.T) {
		note := validTestNote()
		note.Embedding = EmbeddingState(42)
		err := ValidateNote(note)
		assert.ErrorIs(t, err, ErrInvalidEmbeddingState)
	})
}

func TestValidateTags(t *testing.T) {
	assert.NoError(t, ValidateTags(nil))
	assert.NoError(t, ValidateTags([]string{"red", "shoe"}))
	assert.Error(t, ValidateTags([]string{""}))
}
