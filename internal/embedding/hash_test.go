package embedding

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashEmbedder_Deterministic(t *testing.T) {
	embedder := NewHashEmbedder(128)

	a, err := embedder.Embed(context.Background(), "go kubernetes docker")
	require.NoError(t, err)
	b, err := embedder.Embed(context.Background(), "go kubernetes docker")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestHashEmbedder_Normalized(t *testing.T) {
	embedder := NewHashEmbedder(128)

	vec, err := embedder.Embed(context.Background(), "distributed systems engineering")
	require.NoError(t, err)

	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, sum, 0.001)
}

func TestHashEmbedder_CaseInsensitive(t *testing.T) {
	embedder := NewHashEmbedder(128)

	lower, err := embedder.Embed(context.Background(), "golang microservices")
	require.NoError(t, err)
	upper, err := embedder.Embed(context.Background(), "GOLANG MICROSERVICES")
	require.NoError(t, err)

	assert.Equal(t, lower, upper)
}

func TestHashEmbedder_DefaultDim(t *testing.T) {
	embedder := NewHashEmbedder(0)

	vec, err := embedder.Embed(context.Background(), "anything")
	require.NoError(t, err)

	assert.Len(t, vec, DefaultHashDim)
	assert.Equal(t, "hash-fnv1a-256", embedder.Model())
}

func TestHashEmbedder_EmptyText(t *testing.T) {
	embedder := NewHashEmbedder(64)

	vec, err := embedder.Embed(context.Background(), "")
	require.NoError(t, err)

	// No tokens, so the vector stays zero
	for _, v := range vec {
		assert.Equal(t, float32(0), v)
	}
}

func TestHashEmbedder_CancelledContext(t *testing.T) {
	embedder := NewHashEmbedder(64)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := embedder.Embed(ctx, "text")
	assert.Error(t, err)
}

func TestCosine_IdenticalVectors(t *testing.T) {
	a := []float32{0.5, 0.5, 0.0}

	assert.InDelta(t, 1.0, Cosine(a, a), 0.001)
}

func TestCosine_OrthogonalVectors(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{0, 1}

	assert.InDelta(t, 0.0, Cosine(a, b), 0.001)
}

func TestCosine_OppositeVectors(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{-1, 0}

	assert.InDelta(t, -1.0, Cosine(a, b), 0.001)
}

func TestCosine_MismatchedLengths(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{1, 0, 0}

	assert.Equal(t, 0.0, Cosine(a, b))
}

func TestCosine_ZeroVector(t *testing.T) {
	a := []float32{0, 0}
	b := []float32{1, 0}

	assert.Equal(t, 0.0, Cosine(a, b))
}

func TestCosine_SimilarTextsScoreHigher(t *testing.T) {
	embedder := NewHashEmbedder(256)

	ref, err := embedder.Embed(context.Background(), "go kubernetes docker")
	require.NoError(t, err)
	similar, err := embedder.Embed(context.Background(), "kubernetes and docker and go")
	require.NoError(t, err)
	unrelated, err := embedder.Embed(context.Background(), "cooking baking")
	require.NoError(t, err)

	assert.Greater(t, Cosine(ref, similar), Cosine(ref, unrelated))
	assert.Greater(t, Cosine(ref, similar), 0.3)
}
