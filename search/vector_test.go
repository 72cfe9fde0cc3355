package search

import (
	"testing"

	"github.com/poiesic/synapse/ai/mock"
	"github.com/poiesic/synapse/core"
	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity(t *testing.T) {
	t.Run("identical vectors score one", func(t *testing.T) {
		v := mock.DeterministicVector("anchor text", core.EmbeddingDim)
		assert.InDelta(t, 1.0, CosineSimilarity(v, v), 1e-5)
	})

	t.Run("opposite vectors score negative one", func(t *testing.T) {
		v := mock.DeterministicVector("anchor text", core.EmbeddingDim)
		neg := make([]float32, len(v))
		for i, x := range v {
			neg[i] = -x
		}
		assert.InDelta(t, -1.0, CosineSimilarity(v, neg), 1e-5)
	})

	t.Run("orthogonal vectors score zero", func(t *testing.T) {
		a := []float32{1, 0, 0}
		b := []float32{0, 1, 0}
		assert.InDelta(t, 0.0, CosineSimilarity(a, b), 1e-6)
	})

	t.Run("zero magnitude is zero not NaN", func(t *testing.T) {
		v := []float32{1, 2, 3}
		zero := []float32{0, 0, 0}
		assert.Equal(t, float32(0), CosineSimilarity(v, zero))
		assert.Equal(t, float32(0), CosineSimilarity(zero, v))
		assert.Equal(t, float32(0), CosineSimilarity(nil, v))
	})

	t.Run("symmetric", func(t *testing.T) {
		a := mock.DeterministicVector("first", core.EmbeddingDim)
		b := mock.DeterministicVector("second", core.EmbeddingDim)
		assert.Equal(t, CosineSimilarity(a, b), CosineSimilarity(b, a))
	})

	t.Run("scale invariant", func(t *testing.T) {
		a := []float32{1, 2, 3}
		b := []float32{4, 5, 6}
		scaled := []float32{8, 10, 12}
		assert.InDelta(t, CosineSimilarity(a, b), CosineSimilarity(a, scaled), 1e-6)
	})
}
