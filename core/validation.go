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


package core

import (
	"fmt"
	"strings"
	"time"
)

// ValidateNote validates a Note according to domain rules.
//
// Validation rules:
//   - Text must not be empty (image notes carry the placeholder text)
//   - CreatedAt must not be in the future
//   - Tags must be lowercase and free of duplicates
//   - A ready vector must have exactly EmbeddingDim entries
//
// NOT validated:
//   - ID (0 is valid before the store assigns one)
//   - Image (optional, opaque payload)
func ValidateNote(note *Note) error {
	if note == nil {
		return fmt.Errorf("%w: note is nil", ErrInvalidNote)
	}

	if note.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidNote, ErrEmptyText)
	}

	if !IsValidTimestamp(note.CreatedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidNote, ErrInvalidTimestamp)
	}

	if err := ValidateTags(note.Tags); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidNote, err)
	}

	if err := ValidateEmbedding(note.Embedding, note.Vector); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidNote, err)
	}

	return nil
}

// ValidateTags checks that tags are lowercase and contain no duplicates.
func ValidateTags(tags []string) error {
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		if tag == "" {
			return fmt.Errorf("%w: empty tag", ErrInvalidTag)
		}
		if tag != strings.ToLower(tag) {
			return fmt.Errorf("%w: %q is not lowercase", ErrInvalidTag, tag)
		}
		if seen[tag] {
			return fmt.Errorf("%w: duplicate tag %q", ErrInvalidTag, tag)
		}
		seen[tag] = true
	}
	return nil
}

// ValidateEmbedding checks the state/vector pairing.
// A ready embedding must be exactly EmbeddingDim long; the other states must
// not carry a vector at all.
func ValidateEmbedding(state EmbeddingState, vector []float32) error {
	switch state {
	case EmbeddingReady:
		if len(vector) != EmbeddingDim {
			return fmt.Errorf("%w: got %d entries, want %d", ErrInvalidVector, len(vector), EmbeddingDim)
		}
	case EmbeddingNone, EmbeddingDegraded:
		if len(vector) != 0 {
			return fmt.Errorf("%w: state %d must not carry a vector", ErrInvalidVector, state)
		}
	default:
		return fmt.Errorf("%w: value %d", ErrInvalidEmbeddingState, state)
	}
	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
