// Package ingestion provides pipeline orchestration for capturing notes.
//
// The Pipeline type turns raw input into persisted, searchable records:
//   - Text input: tagging, vectorization, persistence
//   - Image input: OCR text extraction, tagging, persistence
//
// The external collaborators (vectorizer, text extractor) are unreliable;
// their failures are absorbed into degraded records and never fail the
// ingestion operation. Only empty input and storage failures surface as
// errors.
package ingestion
