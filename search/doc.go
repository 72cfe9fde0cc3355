// Package search implements the retrieval engine: keyword search, semantic
// similarity search over the full corpus, date/tag filtering, and corpus
// analytics.
//
// Semantic search performs a full scan per query, O(N·D). That is a known
// and accepted ceiling at this corpus size; replacing the scan with an
// external nearest-neighbor index would happen behind the same contract.
package search
