package index

import (
	"context"
	"fmt"
	"sort"

	"github.com/neoconsult/booking-assistant/internal/core"
)

// Result pairs a retrieved chunk with its distance to the query.
type Result struct {
	Text     string
	Distance float32
}

// Index is an immutable in-memory vector index over document chunks.
// Chunks and vectors are parallel slices: vectors[i] is the embedding of
// chunks[i]. An index is built once per upload batch and replaced
// wholesale; it is never mutated after Build returns.
type Index struct {
	chunks  []string
	vectors [][]float32
}

// Build embeds every chunk in one batch call and returns a searchable
// index. An empty chunk list yields a usable, empty index.
func Build(ctx context.Context, embedder core.EmbeddingProvider, chunks []string) (*Index, error) {
	if len(chunks) == 0 {
		return &Index{}, nil
	}
	vectors, err := embedder.EmbedTexts(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("embed size mismatch: got %d vectors for %d chunks", len(vectors), len(chunks))
	}
	return &Index{chunks: chunks, vectors: vectors}, nil
}

// Len returns the number of indexed chunks.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.chunks)
}

// Search embeds the query with the same embedder used at build time and
// returns up to k chunks ordered by ascending squared Euclidean distance.
// A nil or empty index returns no results.
func (ix *Index) Search(ctx context.Context, embedder core.EmbeddingProvider, query string, k int) ([]Result, error) {
	if ix.Len() == 0 || k <= 0 {
		return nil, nil
	}
	vectors, err := embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("embed query: got %d vectors", len(vectors))
	}
	q := vectors[0]

	results := make([]Result, len(ix.chunks))
	for i, v := range ix.vectors {
		if len(v) != len(q) {
			return nil, fmt.Errorf("embedding dimension mismatch: index %d, query %d", len(v), len(q))
		}
		results[i] = Result{Text: ix.chunks[i], Distance: sqDist(v, q)}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Distance < results[j].Distance })
	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

func sqDist(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
