package openai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/synapse/ai"
	"github.com/poiesic/synapse/core"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// Vectorizer implements ai.Vectorizer using OpenAI-compatible embedding APIs.
type Vectorizer struct {
	embedder embeddings.Embedder
	logger   *slog.Logger
}

var _ ai.Vectorizer = (*Vectorizer)(nil)

// newVectorizer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newVectorizer(config *ai.Config) (*Vectorizer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.EmbeddingHost),
		openai.WithToken(config.APIKey),
		openai.WithEmbeddingModel(config.EmbeddingModel),
	)
	if err != nil {
		return nil, err
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}

	return &Vectorizer{
		embedder: embedder,
		logger:   slog.Default().With("component", "openai-vectorizer"),
	}, nil
}

// NewVectorizer creates a new vectorizer using the provided configuration.
//
// Returns ai.Vectorizer interface to enforce abstraction.
func NewVectorizer(config *ai.Config) (ai.Vectorizer, error) {
	return newVectorizer(config)
}

// Vectorize generates an embedding for the given text.
// Provider failures are absorbed into a degraded result; only empty input is
// an error. One outbound call per invocation, no retries.
func (v *Vectorizer) Vectorize(ctx context.Context, text string) (ai.VectorResult, error) {
	if strings.TrimSpace(text) == "" {
		return ai.VectorResult{}, ai.ErrEmptyText
	}

	vectors, err := v.embedder.EmbedDocuments(ctx, []string{text})
	if err != nil {
		v.logger.Warn("embedding provider failed, result degraded", "err", err)
		return ai.VectorResult{Degraded: true}, nil
	}

	if len(vectors) == 0 || len(vectors[0]) != core.EmbeddingDim {
		v.logger.Warn("embedding provider returned unexpected shape, result degraded",
			"vectors", len(vectors))
		return ai.VectorResult{Degraded: true}, nil
	}

	return ai.VectorResult{Vector: vectors[0]}, nil
}
