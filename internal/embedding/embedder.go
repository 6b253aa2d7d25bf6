// Package embedding provides text embedding backends and vector similarity
// for the embedding-based scoring component.
package embedding

import (
	"context"
	"math"
)

// Embedder generates an embedding vector for a piece of text.
// Implementations must be read-only after construction so a single instance
// is safe for concurrent use by multiple scoring calls.
type Embedder interface {
	// Embed returns a vector representation of the given text.
	Embed(ctx context.Context, text string) ([]float32, error)
	// Model returns the backend model identifier, used in component names.
	Model() string
}

// Cosine returns the cosine similarity between two vectors.
// Returns 0 for mismatched lengths or zero-magnitude inputs.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
