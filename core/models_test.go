package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		id1 := IDFromContent("blue bag")
		id2 := IDFromContent("blue bag")
		assert.Equal(t, id1, id2)
	})

	t.Run("different content different ID", func(t *testing.T) {
		id1 := IDFromContent("blue bag")
		id2 := IDFromContent("red shoe")
		assert.NotEqual(t, id1, id2)
	})

	t.Run("empty content", func(t *testing.T) {
		id := IDFromContent("")
		assert.NotEqual(t, ID(0), id)
	})
}

func TestEmbeddingStateUsable(t *testing.T) {
	assert.True(t, EmbeddingReady.Usable())
	assert.False(t, EmbeddingNone.Usable())
	assert.False(t, EmbeddingDegraded.Usable())
}
