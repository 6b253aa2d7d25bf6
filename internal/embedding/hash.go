package embedding

import (
	"context"
	"fmt"
	"math"
	"unicode"
)

// DefaultHashDim is the vector size used when no dimension is configured.
const DefaultHashDim = 256

// HashEmbedder is a dependency-free local embedding backend. It feature-hashes
// tokens into a fixed-size dense vector and L2-normalizes the result. It runs
// fully offline, which makes it the default backend for tests and for runs
// without an API key.
type HashEmbedder struct {
	dim int
}

// NewHashEmbedder creates a hash embedder with the given vector dimension.
// Non-positive dimensions fall back to DefaultHashDim.
func NewHashEmbedder(dim int) *HashEmbedder {
	if dim <= 0 {
		dim = DefaultHashDim
	}
	return &HashEmbedder{dim: dim}
}

// Model returns the backend identifier, including the vector dimension.
func (h *HashEmbedder) Model() string {
	return fmt.Sprintf("hash-fnv1a-%d", h.dim)
}

// Embed hashes the text's tokens into a dense vector.
func (h *HashEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vec := make([]float32, h.dim)
	hashTokensInto(vec, text)
	normalizeL2(vec)
	return vec, nil
}

// hashTokensInto splits text on non-alphanumeric runes and accumulates each
// token's hashed contribution into vec.
func hashTokensInto(vec []float32, text string) {
	if len(vec) == 0 {
		return
	}
	dim := uint64(len(vec))

	tokenStart := -1
	for idx, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if tokenStart == -1 {
				tokenStart = idx
			}
			continue
		}
		if tokenStart != -1 {
			addHashedToken(vec, dim, text[tokenStart:idx])
			tokenStart = -1
		}
	}
	if tokenStart != -1 {
		addHashedToken(vec, dim, text[tokenStart:])
	}
}

// addHashedToken maps a token to a signed bucket via FNV-1a over its bytes.
func addHashedToken(vec []float32, dim uint64, token string) {
	const (
		offset64 = 14695981039346656037
		prime64  = 1099511628211
	)

	var h uint64 = offset64
	for i := 0; i < len(token); i++ {
		b := token[i]
		// Lowercase ASCII fast-path; full unicode case folding is not worth
		// it for a feature-hashing backend.
		if b >= 'A' && b <= 'Z' {
			b += 'a' - 'A'
		}
		h ^= uint64(b)
		h *= prime64
	}

	idx := int(h % dim)
	sign := float32(1.0)
	if (h>>63)&1 == 1 {
		sign = -1.0
	}
	vec[idx] += sign
}

func normalizeL2(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	scale := float32(1.0 / math.Sqrt(sum))
	for i := range vec {
		vec[i] *= scale
	}
}
