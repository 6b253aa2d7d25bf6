package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-scorer/internal/types"
)

func TestPrintScoringResult(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintScoringResult(&types.ScoringResult{
		ComponentName: "llm_scorer",
		SectionScores: map[string]types.SectionScore{
			"skills":  {SectionID: "skills", Score: 0.8},
			"summary": {SectionID: "summary", Score: 0.5},
		},
		OverallScore:   0.65,
		ProcessingTime: 1.23,
	})

	output := buf.String()
	assert.Contains(t, output, "Component: llm_scorer")
	assert.Contains(t, output, "Overall:  0.650")
	assert.Contains(t, output, "Sections: 2")
	assert.Contains(t, output, "skills")
	assert.Contains(t, output, "summary")
}

func TestPrintScoringResult_DegradedShowsError(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintScoringResult(&types.ScoringResult{
		ComponentName: "llm_scorer",
		SectionScores: map[string]types.SectionScore{},
		Metadata:      map[string]any{"error": "LLM generation failed"},
	})

	assert.Contains(t, buf.String(), "LLM generation failed")
}

func TestPrintScoringResult_Nil(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintScoringResult(nil)

	assert.Empty(t, buf.String())
}

func TestPrintCombinedScore(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintCombinedScore(&types.CombinedScore{
		SectionScores: map[string]types.SectionScore{
			"skills": {SectionID: "skills", Score: 0.7, MatchedKeywords: []string{"go", "kubernetes"}},
		},
		OverallScore:     0.7,
		ComponentWeights: map[string]float64{"llm_scorer": 0.6, "embedding_hash-fnv1a-256": 0.4},
	})

	output := buf.String()
	assert.Contains(t, output, "Combined Score")
	assert.Contains(t, output, "Overall:  0.700")
	assert.Contains(t, output, "llm_scorer")
	assert.Contains(t, output, "keywords: go, kubernetes")
}

func TestTopSections_SortedAndCapped(t *testing.T) {
	sections := map[string]types.SectionScore{
		"a": {SectionID: "a", Score: 0.1},
		"b": {SectionID: "b", Score: 0.9},
		"c": {SectionID: "c", Score: 0.5},
		"d": {SectionID: "d", Score: 0.7},
		"e": {SectionID: "e", Score: 0.3},
		"f": {SectionID: "f", Score: 0.6},
	}

	top := topSections(sections)

	assert.Len(t, top, maxItemsToShow)
	assert.Equal(t, "b", top[0].SectionID)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Score, top[i].Score)
	}
}

func TestPrintBox_LongLinesTruncated(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.printBox("Title", strings.Repeat("x", 200))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
}
