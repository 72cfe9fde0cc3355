// Package ai defines contracts for the external AI collaborators: the
// vectorizer that turns text into embeddings and the text extractor that
// recovers text from images.
//
// Both collaborators are unreliable external dependencies. The contracts
// encode the degrade-don't-fail policy: a provider failure never surfaces as
// an error to the caller. Vectorization yields an explicitly degraded result
// and text extraction yields an empty string; only caller contract
// violations (empty input) are reported as errors.
package ai
