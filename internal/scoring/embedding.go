package scoring

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/resume-scorer/internal/embedding"
	"github.com/jonathan/resume-scorer/internal/types"
)

// DefaultBaseline is the neutral reference text used when no job description
// is supplied. Scoring against it yields a moderate relevance signal rather
// than a failure.
const DefaultBaseline = "a professional role requiring relevant technical skills, experience, and accomplishments"

// EmbeddingScorer scores resume content by cosine similarity of text
// embeddings against a reference text. The embedding backend failing is
// fatal to the current call; sections with no extractable text are skipped,
// not zero-scored.
type EmbeddingScorer struct {
	embedder embedding.Embedder
	baseline string
}

// EmbeddingOption configures an EmbeddingScorer.
type EmbeddingOption func(*EmbeddingScorer)

// WithBaseline overrides the neutral reference text used when the job
// description is empty.
func WithBaseline(text string) EmbeddingOption {
	return func(s *EmbeddingScorer) {
		s.baseline = text
	}
}

// NewEmbeddingScorer creates an embedding scorer backed by the given embedder.
func NewEmbeddingScorer(embedder embedding.Embedder, opts ...EmbeddingOption) *EmbeddingScorer {
	s := &EmbeddingScorer{
		embedder: embedder,
		baseline: DefaultBaseline,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the component name, derived from the backend model.
func (s *EmbeddingScorer) Name() string {
	return "embedding_" + s.embedder.Model()
}

// ScoreContent embeds the reference text once, then scores every selected
// section, entry, and bullet with extractable text by cosine similarity.
func (s *EmbeddingScorer) ScoreContent(ctx context.Context, jobDescription string, content map[string]types.Section, opts *Options) (*types.ScoringResult, error) {
	start := time.Now()

	reference := jobDescription
	if strings.TrimSpace(reference) == "" {
		reference = s.baseline
	}

	refVec, err := s.embedder.Embed(ctx, prepareText(reference))
	if err != nil {
		return nil, fmt.Errorf("failed to embed reference text: %w", err)
	}

	sectionScores := make(map[string]types.SectionScore)
	totalScore := 0.0
	sectionCount := 0

	for sectionID, section := range content {
		if !opts.sectionAllowed(sectionID) {
			continue
		}

		text := sectionText(section)
		if text == "" {
			continue
		}

		score, confidence, err := s.similarity(ctx, refVec, text)
		if err != nil {
			return nil, fmt.Errorf("failed to score section %s: %w", sectionID, err)
		}

		entries, err := s.scoreEntries(ctx, refVec, section.Entries)
		if err != nil {
			return nil, fmt.Errorf("failed to score entries of section %s: %w", sectionID, err)
		}

		sectionScores[sectionID] = types.SectionScore{
			SectionID:  sectionID,
			Score:      score,
			Confidence: confidence,
			Entries:    entries,
		}

		totalScore += score
		sectionCount++
	}

	overallScore := 0.0
	if sectionCount > 0 {
		overallScore = totalScore / float64(sectionCount)
	}

	return &types.ScoringResult{
		ComponentName:  s.Name(),
		SectionScores:  sectionScores,
		OverallScore:   overallScore,
		ProcessingTime: time.Since(start).Seconds(),
		Metadata: map[string]any{
			"model_name":    s.embedder.Model(),
			"section_count": sectionCount,
		},
	}, nil
}

// scoreEntries scores each entry with extractable text, recursing one level
// into its bullets. Entries yielding no text are omitted entirely.
func (s *EmbeddingScorer) scoreEntries(ctx context.Context, refVec []float32, entries []types.Entry) ([]types.ScoredEntry, error) {
	var scored []types.ScoredEntry

	for _, entry := range entries {
		text := entryText(entry)
		if text == "" {
			continue
		}

		score, confidence, err := s.similarity(ctx, refVec, text)
		if err != nil {
			return nil, err
		}

		bullets, err := s.scoreBullets(ctx, refVec, entry.Bullets)
		if err != nil {
			return nil, err
		}

		scored = append(scored, types.ScoredEntry{
			EntryID:    entry.ID,
			EntryType:  entry.Type,
			Score:      score,
			Confidence: confidence,
			Bullets:    bullets,
		})
	}

	return scored, nil
}

// scoreBullets scores each non-empty bullet line.
func (s *EmbeddingScorer) scoreBullets(ctx context.Context, refVec []float32, bullets []string) ([]types.ScoredBullet, error) {
	var scored []types.ScoredBullet

	for _, bullet := range bullets {
		text := strings.TrimSpace(bullet)
		if text == "" {
			continue
		}

		score, confidence, err := s.similarity(ctx, refVec, text)
		if err != nil {
			return nil, err
		}

		scored = append(scored, types.ScoredBullet{
			Content:    text,
			Score:      score,
			Confidence: confidence,
		})
	}

	return scored, nil
}

// similarity embeds the text and compares it with the reference vector.
// The score is the similarity clamped to [0,1]; the confidence is the raw
// similarity, which may be negative.
func (s *EmbeddingScorer) similarity(ctx context.Context, refVec []float32, text string) (float64, float64, error) {
	vec, err := s.embedder.Embed(ctx, prepareText(text))
	if err != nil {
		return 0, 0, err
	}

	sim := embedding.Cosine(refVec, vec)
	return clamp01(sim), sim, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
