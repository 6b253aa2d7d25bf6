package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-scorer/internal/embedding"
	"github.com/jonathan/resume-scorer/internal/types"
)

// fakeEmbedder returns canned vectors keyed by prepared text. Unknown texts
// get the fallback vector.
type fakeEmbedder struct {
	vectors  map[string][]float32
	fallback []float32
	failWith error
	calls    []string
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.calls = append(f.calls, text)
	if vec, ok := f.vectors[text]; ok {
		return vec, nil
	}
	return f.fallback, nil
}

func (f *fakeEmbedder) Model() string { return "fake-model" }

func TestEmbeddingScorer_Name(t *testing.T) {
	scorer := NewEmbeddingScorer(&fakeEmbedder{fallback: []float32{1, 0}})

	assert.Equal(t, "embedding_fake-model", scorer.Name())
}

func TestEmbeddingScorer_OverallIsMeanOfSections(t *testing.T) {
	embedder := &fakeEmbedder{
		vectors: map[string][]float32{
			"senior go engineer": {1, 0},
			"go kubernetes":      {1, 0}, // similarity 1.0
			"oil painting":       {0, 1}, // similarity 0.0
		},
	}
	scorer := NewEmbeddingScorer(embedder)

	content := map[string]types.Section{
		"skills":  {Highlights: []string{"Go", "Kubernetes"}},
		"hobbies": {Content: "Oil painting"},
	}

	result, err := scorer.ScoreContent(context.Background(), "Senior Go Engineer", content, nil)
	require.NoError(t, err)

	assert.Len(t, result.SectionScores, 2)
	assert.InDelta(t, 1.0, result.SectionScores["skills"].Score, 0.001)
	assert.InDelta(t, 0.0, result.SectionScores["hobbies"].Score, 0.001)
	assert.InDelta(t, 0.5, result.OverallScore, 0.001)
	assert.Equal(t, 2, result.Metadata["section_count"])
	assert.Equal(t, "fake-model", result.Metadata["model_name"])
	assert.GreaterOrEqual(t, result.ProcessingTime, 0.0)
}

func TestEmbeddingScorer_EmptySectionSkipped(t *testing.T) {
	scorer := NewEmbeddingScorer(&fakeEmbedder{fallback: []float32{1, 0}})

	content := map[string]types.Section{
		"skills": {Highlights: []string{"Go"}},
		"empty":  {Highlights: []string{"  "}},
	}

	result, err := scorer.ScoreContent(context.Background(), "Go role", content, nil)
	require.NoError(t, err)

	assert.Contains(t, result.SectionScores, "skills")
	assert.NotContains(t, result.SectionScores, "empty")
	assert.Equal(t, 1, result.Metadata["section_count"])
}

func TestEmbeddingScorer_NoScorableSections(t *testing.T) {
	scorer := NewEmbeddingScorer(&fakeEmbedder{fallback: []float32{1, 0}})

	result, err := scorer.ScoreContent(context.Background(), "Go role", map[string]types.Section{}, nil)
	require.NoError(t, err)

	assert.Empty(t, result.SectionScores)
	assert.Equal(t, 0.0, result.OverallScore)
}

func TestEmbeddingScorer_SectionAllowList(t *testing.T) {
	scorer := NewEmbeddingScorer(&fakeEmbedder{fallback: []float32{1, 0}})

	content := map[string]types.Section{
		"skills":  {Highlights: []string{"Go"}},
		"hobbies": {Content: "Oil painting"},
	}
	opts := &Options{Sections: []string{"skills"}}

	result, err := scorer.ScoreContent(context.Background(), "Go role", content, opts)
	require.NoError(t, err)

	assert.Contains(t, result.SectionScores, "skills")
	assert.NotContains(t, result.SectionScores, "hobbies")
}

func TestEmbeddingScorer_BaselineWhenNoJobDescription(t *testing.T) {
	embedder := &fakeEmbedder{fallback: []float32{1, 0}}
	scorer := NewEmbeddingScorer(embedder, WithBaseline("Neutral Reference"))

	content := map[string]types.Section{
		"skills": {Highlights: []string{"Go"}},
	}

	_, err := scorer.ScoreContent(context.Background(), "   ", content, nil)
	require.NoError(t, err)

	require.NotEmpty(t, embedder.calls)
	assert.Equal(t, "neutral reference", embedder.calls[0])
}

func TestEmbeddingScorer_ScoresEntriesAndBullets(t *testing.T) {
	embedder := &fakeEmbedder{
		vectors: map[string][]float32{
			"go role":        {1, 0},
			"built apis":     {1, 0},
			"wrote go tests": {0, 1},
		},
		fallback: []float32{1, 0},
	}
	scorer := NewEmbeddingScorer(embedder)

	content := map[string]types.Section{
		"experience": {
			Entries: []types.Entry{
				{ID: "exp-1", Type: "experience", Bullets: []string{"Built APIs", "Wrote Go tests"}},
				{ID: "exp-2", Type: "experience"}, // no text, must be omitted
			},
		},
	}

	result, err := scorer.ScoreContent(context.Background(), "Go role", content, nil)
	require.NoError(t, err)

	section := result.SectionScores["experience"]
	require.Len(t, section.Entries, 1)

	entry := section.Entries[0]
	assert.Equal(t, "exp-1", entry.EntryID)
	assert.Equal(t, "experience", entry.EntryType)
	require.Len(t, entry.Bullets, 2)
	assert.Equal(t, "Built APIs", entry.Bullets[0].Content)
	assert.InDelta(t, 1.0, entry.Bullets[0].Score, 0.001)
	assert.Equal(t, "Wrote Go tests", entry.Bullets[1].Content)
	assert.InDelta(t, 0.0, entry.Bullets[1].Score, 0.001)
}

func TestEmbeddingScorer_NegativeSimilarityClampedButKeptAsConfidence(t *testing.T) {
	embedder := &fakeEmbedder{
		vectors: map[string][]float32{
			"go role":   {1, 0},
			"unrelated": {-1, 0},
		},
		fallback: []float32{1, 0},
	}
	scorer := NewEmbeddingScorer(embedder)

	content := map[string]types.Section{
		"misc": {Content: "Unrelated"},
	}

	result, err := scorer.ScoreContent(context.Background(), "Go role", content, nil)
	require.NoError(t, err)

	section := result.SectionScores["misc"]
	assert.Equal(t, 0.0, section.Score)
	assert.InDelta(t, -1.0, section.Confidence, 0.001)
}

func TestEmbeddingScorer_BackendFailurePropagates(t *testing.T) {
	embedder := &fakeEmbedder{failWith: errors.New("backend unavailable")}
	scorer := NewEmbeddingScorer(embedder)

	content := map[string]types.Section{
		"skills": {Highlights: []string{"Go"}},
	}

	_, err := scorer.ScoreContent(context.Background(), "Go role", content, nil)
	assert.ErrorContains(t, err, "backend unavailable")
}

func TestEmbeddingScorer_WithHashBackend(t *testing.T) {
	scorer := NewEmbeddingScorer(embedding.NewHashEmbedder(256))

	content := map[string]types.Section{
		"skills":  {Highlights: []string{"Go", "Kubernetes", "Docker"}},
		"hobbies": {Content: "Watercolor painting and gardening"},
	}

	result, err := scorer.ScoreContent(context.Background(), "Go Kubernetes Docker engineer", content, nil)
	require.NoError(t, err)

	assert.Equal(t, "embedding_hash-fnv1a-256", result.ComponentName)
	assert.Greater(t, result.SectionScores["skills"].Score, result.SectionScores["hobbies"].Score)
	assert.GreaterOrEqual(t, result.OverallScore, 0.0)
	assert.LessOrEqual(t, result.OverallScore, 1.0)
}
