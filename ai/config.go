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


package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for AI service providers.
type Config struct {
	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "https://api.openai.com/v1"
	EmbeddingHost string

	// OCRHost is the base URL for the vision service used for text
	// extraction from images.
	OCRHost string

	// EmbeddingModel is the model identifier for text embeddings.
	// Must produce 1536-dimensional vectors.
	// Example: "text-embedding-3-small"
	EmbeddingModel string

	// OCRModel is the vision-capable model identifier used for OCR.
	// Example: "gpt-4o-mini"
	OCRModel string

	// APIKey authenticates against the provider. "none" works for local
	// OpenAI-compatible services that don't require authentication.
	APIKey string

	// OCRLanguage is the language hint passed to text extraction.
	// Default: "eng"
	OCRLanguage string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithOCRHost sets the OCR service host URL.
func WithOCRHost(host string) ConfigOption {
	return func(c *Config) {
		c.OCRHost = host
	}
}

// WithHost sets both embedding and OCR hosts to the same URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
		c.OCRHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithOCRModel sets the OCR model identifier.
func WithOCRModel(model string) ConfigOption {
	return func(c *Config) {
		c.OCRModel = model
	}
}

// WithAPIKey sets the provider API key.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithOCRLanguage sets the OCR language hint.
func WithOCRLanguage(lang string) ConfigOption {
	return func(c *Config) {
		c.OCRLanguage = lang
	}
}

// DefaultConfig returns a Config with defaults for the OpenAI API.
func DefaultConfig() *Config {
	defaultHost := "https://api.openai.com/v1"
	return &Config{
		EmbeddingHost:  defaultHost,
		OCRHost:        defaultHost,
		EmbeddingModel: "text-embedding-3-small",
		OCRModel:       "gpt-4o-mini",
		APIKey:         "none",
		OCRLanguage:    "eng",
	}
}

// NewConfig creates a Config with the default values and applies the
// provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to hosts if missing, which is
// required by most OpenAI-compatible APIs.
func (c *Config) Normalize() {
	if c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/") + "/v1"
	}
	if c.OCRHost != "" && !strings.HasSuffix(c.OCRHost, "/v1") {
		c.OCRHost = strings.TrimSuffix(c.OCRHost, "/") + "/v1"
	}
	if c.OCRLanguage == "" {
		c.OCRLanguage = "eng"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.EmbeddingHost == "" {
		return errors.New("ai config: EmbeddingHost is required")
	}
	if c.OCRHost == "" {
		return errors.New("ai config: OCRHost is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.OCRModel == "" {
		return errors.New("ai config: OCRModel is required")
	}
	return nil
}
