package ingestion

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/synapse/ai"
	"github.com/poiesic/synapse/core"
	"github.com/poiesic/synapse/storage"
	"github.com/poiesic/synapse/tagging"
)

// Pipeline orchestrates the ingestion of notes: extraction, tagging,
// vectorization, and persistence. Collaborator failures degrade the stored
// note but never fail the ingestion; only caller mistakes (empty input) and
// storage failures are reported as errors.
type Pipeline struct {
	notes      storage.NoteRepository
	vectorizer ai.Vectorizer
	extractor  ai.TextExtractor
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(notes storage.NoteRepository, provider ai.Provider, opts ...Option) (*Pipeline, error) {
	if notes == nil {
		return nil, ErrNoteRepositoryRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}

	p := &Pipeline{
		notes:      notes,
		vectorizer: provider.Vectorizer(),
		extractor:  provider.TextExtractor(),
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// IngestText captures a text snippet as a note: tags are derived from the
// text, the embedding is computed (or marked degraded if the provider
// fails), and the note is persisted with the current time.
func (p *Pipeline) IngestText(ctx context.Context, text string) (*core.Note, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	note := &core.Note{
		Text:      text,
		Tags:      tagging.Extract(text),
		CreatedAt: time.Now().UTC(),
	}

	result, err := p.vectorizer.Vectorize(ctx, text)
	if err != nil {
		return nil, err
	}
	if result.Degraded {
		// Degrade, don't fail: the note stays retrievable by keyword and
		// filter, just not by semantic score.
		note.Embedding = core.EmbeddingDegraded
		p.logger.Warn("vectorization degraded, note stored without usable embedding")
	} else {
		note.Embedding = core.EmbeddingReady
		note.Vector = result.Vector
	}

	added, err := p.notes.AddNotes(ctx, note)
	if err != nil {
		p.logger.Error("error persisting note", "err", err)
		return nil, err
	}

	p.logger.Info("note saved", "id", added[0].Id, "tags", added[0].Tags)
	return added[0], nil
}

// ImageResult is the outcome of an image ingestion: the persisted note and
// the raw text the extractor recovered, for caller display.
type ImageResult struct {
	Note          *core.Note
	ExtractedText string
}

// IngestImage captures an image as a note. OCR failure is absorbed: with no
// recovered text the note is stored with placeholder text and no tags. Image
// notes carry no embedding.
func (p *Pipeline) IngestImage(ctx context.Context, imageBase64 string) (*ImageResult, error) {
	if strings.TrimSpace(imageBase64) == "" {
		return nil, ErrEmptyInput
	}

	extracted, err := p.extractor.ExtractText(ctx, imageBase64)
	if err != nil {
		return nil, err
	}

	text := extracted
	if strings.TrimSpace(text) == "" {
		text = core.ImagePlaceholderText
		p.logger.Info("no text recovered from image, storing placeholder")
	}

	note := &core.Note{
		Text:      text,
		Tags:      tagging.Extract(extracted),
		Embedding: core.EmbeddingNone,
		Image:     imageBase64,
		CreatedAt: time.Now().UTC(),
	}

	added, err := p.notes.AddNotes(ctx, note)
	if err != nil {
		p.logger.Error("error persisting image note", "err", err)
		return nil, err
	}

	p.logger.Info("image note saved", "id", added[0].Id, "tags", added[0].Tags)
	return &ImageResult{Note: added[0], ExtractedText: extracted}, nil
}
