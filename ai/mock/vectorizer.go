package mock

import (
	"context"
	"math"
	"strings"

	"github.com/poiesic/synapse/ai"
	"github.com/poiesic/synapse/core"
)

// MockVectorizer is a test double for ai.Vectorizer.
// It allows custom behavior injection via function fields.
type MockVectorizer struct {
	// VectorizeFunc is called by Vectorize if set.
	// If nil, uses default deterministic behavior.
	VectorizeFunc func(ctx context.Context, text string) (ai.VectorResult, error)

	// Degrade forces every default call to return a degraded result,
	// simulating a provider outage.
	Degrade bool

	callCount int
}

var _ ai.Vectorizer = (*MockVectorizer)(nil)

// NewMockVectorizer creates a mock vectorizer with default deterministic
// behavior. Returns the concrete type to allow test assertions.
func NewMockVectorizer() *MockVectorizer {
	return &MockVectorizer{}
}

// Vectorize generates a deterministic embedding based on the text hash,
// honoring the real contract: ErrEmptyText for blank input, degraded result
// instead of an error on (simulated) provider failure.
func (m *MockVectorizer) Vectorize(ctx context.Context, text string) (ai.VectorResult, error) {
	m.callCount++

	if m.VectorizeFunc != nil {
		return m.VectorizeFunc(ctx, text)
	}

	if strings.TrimSpace(text) == "" {
		return ai.VectorResult{}, ai.ErrEmptyText
	}

	if m.Degrade {
		return ai.VectorResult{Degraded: true}, nil
	}

	return ai.VectorResult{Vector: DeterministicVector(text, core.EmbeddingDim)}, nil
}

// CallCount returns the number of times Vectorize was called.
func (m *MockVectorizer) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom behavior.
func (m *MockVectorizer) Reset() {
	m.callCount = 0
	m.VectorizeFunc = nil
	m.Degrade = false
}

// DeterministicVector creates a deterministic unit-norm embedding from text.
// The same text always produces the same vector, so tests can rely on
// identical inputs scoring 1.0 against each other.
func DeterministicVector(text string, dim int) []float32 {
	seed := uint64(core.IDFromContent(text))

	vector := make([]float32, dim)
	for i := 0; i < dim; i++ {
		// Simple pseudo-random generation based on seed and index
		seed = seed*6364136223846793005 + 1442695040888963407 // LCG constants
		vector[i] = float32(seed%2000)/1000.0 - 1.0
	}

	// Normalize to unit vector
	var sumSquares float64
	for _, v := range vector {
		sumSquares += float64(v) * float64(v)
	}
	if sumSquares > 0 {
		inv := float32(1.0 / math.Sqrt(sumSquares))
		for i := range vector {
			vector[i] *= inv
		}
	}

	return vector
}
