// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/synapse/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// languageNames maps ISO 639-2 hints to the names used in the OCR prompt.
var languageNames = map[string]string{
	"eng": "English",
	"deu": "German",
	"fra": "French",
	"spa": "Spanish",
}

// TextExtractor implements ai.TextExtractor using a vision-capable
// OpenAI-compatible chat model.
type TextExtractor struct {
	client   llms.Model
	language string
	logger   *slog.Logger
}

var _ ai.TextExtractor = (*TextExtractor)(nil)

// newTextExtractor is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newTextExtractor(config *ai.Config) (*TextExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.OCRHost),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.OCRModel),
	)
	if err != nil {
		return nil, err
	}

	return &TextExtractor{
		client:   client,
		language: config.OCRLanguage,
		logger:   slog.Default().With("component", "openai-extractor"),
	}, nil
}

// NewTextExtractor creates a new text extractor using the provided
// configuration.
//
// Returns ai.TextExtractor interface to enforce abstraction.
func NewTextExtractor(config *ai.Config) (ai.TextExtractor, error) {
	return newTextExtractor(config)
}

// ExtractText recovers text from a base64-encoded image via the vision
// model. Any provider failure yields an empty string: callers must treat ""
// as "no text recovered", never as an error.
func (e *TextExtractor) ExtractText(ctx context.Context, imageBase64 string) (string, error) {
	if strings.TrimSpace(imageBase64) == "" {
		return "", ai.ErrEmptyImage
	}

	language := languageNames[e.language]
	if language == "" {
		language = languageNames["eng"]
	}

	prompt := fmt.Sprintf(
		"Transcribe all %s text visible in this image. Respond with the raw text only, nothing else. If there is no text, respond with an empty message.",
		language)

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
				llms.ImageURLPart(asDataURL(imageBase64)),
			},
		},
	}

	response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		e.logger.Warn("text extraction failed, no text recovered", "err", err)
		return "", nil
	}

	if len(response.Choices) < 1 {
		e.logger.Debug("no choices returned from model")
		return "", nil
	}

	return strings.TrimSpace(response.Choices[0].Content), nil
}

// asDataURL wraps a raw base64 payload in a data URL. Payloads that already
// are data URLs pass through untouched.
func asDataURL(imageBase64 string) string {
	if strings.HasPrefix(imageBase64, "data:") {
		return imageBase64
	}
	return "data:image/png;base64," + imageBase64
}
