package core

import "context"

// EmbeddingProvider maps texts to fixed-dimension vectors. The same
// provider and model must be used for indexing and querying.
type EmbeddingProvider interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// LLMProvider generates a completion for a system + user prompt pair.
type LLMProvider interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
}
