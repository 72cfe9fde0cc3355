// Package openai provides ai.Provider implementations backed by
// OpenAI-compatible APIs: embeddings for vectorization and a vision-capable
// chat model for text extraction from images.
package openai
