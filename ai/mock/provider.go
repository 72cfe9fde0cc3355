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


package mock

import "github.com/poiesic/synapse/ai"

// MockProvider is a test double for ai.Provider.
// It aggregates mock vectorizer and extractor instances.
type MockProvider struct {
	vectorizer *MockVectorizer
	extractor  *MockTextExtractor
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.Provider interface for consistency with production
// constructors. Use GetMockVectorizer()/GetMockExtractor() to access
// concrete types for test assertions.
func NewMockProvider() ai.Provider {
	return &MockProvider{
		vectorizer: NewMockVectorizer(),
		extractor:  NewMockTextExtractor(""),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock
// services. This allows full control over the behavior of each service.
func NewMockProviderWithServices(vectorizer *MockVectorizer, extractor *MockTextExtractor) ai.Provider {
	return &MockProvider{
		vectorizer: vectorizer,
		extractor:  extractor,
	}
}

// Vectorizer returns the mock vectorizer.
func (p *MockProvider) Vectorizer() ai.Vectorizer {
	return p.vectorizer
}

// TextExtractor returns the mock text extractor.
func (p *MockProvider) TextExtractor() ai.TextExtractor {
	return p.extractor
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockVectorizer returns the underlying mock vectorizer for test
// assertions.
func (p *MockProvider) GetMockVectorizer() *MockVectorizer {
	return p.vectorizer
}

// GetMockExtractor returns the underlying mock extractor for test
// assertions.
func (p *MockProvider) GetMockExtractor() *MockTextExtractor {
	return p.extractor
}
