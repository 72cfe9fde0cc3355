package mock

import (
	"context"
	"strings"

	"github.com/poiesic/synapse/ai"
)

// MockTextExtractor is a test double for ai.TextExtractor.
// It allows custom behavior injection via function fields.
type MockTextExtractor struct {
	// ExtractTextFunc is called by ExtractText if set.
	ExtractTextFunc func(ctx context.Context, imageBase64 string) (string, error)

	// Text is returned by default calls. An empty value simulates OCR
	// recovering nothing, which is also what a provider failure looks like
	// to callers.
	Text string

	callCount int
}

var _ ai.TextExtractor = (*MockTextExtractor)(nil)

// NewMockTextExtractor creates a mock extractor that recovers the given text
// from every image. Returns the concrete type to allow test assertions.
func NewMockTextExtractor(text string) *MockTextExtractor {
	return &MockTextExtractor{Text: text}
}

// ExtractText honors the real contract: ErrEmptyImage for a missing payload,
// otherwise the configured text.
func (m *MockTextExtractor) ExtractText(ctx context.Context, imageBase64 string) (string, error) {
	m.callCount++

	if m.ExtractTextFunc != nil {
		return m.ExtractTextFunc(ctx, imageBase64)
	}

	if strings.TrimSpace(imageBase64) == "" {
		return "", ai.ErrEmptyImage
	}

	return m.Text, nil
}

// CallCount returns the number of times ExtractText was called.
func (m *MockTextExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom behavior.
func (m *MockTextExtractor) Reset() {
	m.callCount = 0
	m.ExtractTextFunc = nil
}
