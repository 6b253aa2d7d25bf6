// Package types provides type definitions for structured data used throughout the resume-scorer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance for score records.
var validate = validator.New()

// ScoredBullet holds the relevance judgment for a single bullet point.
// Confidence may be negative: the embedding component stores the raw
// (unclamped) cosine similarity there.
type ScoredBullet struct {
	Content              string   `json:"content" validate:"required"`
	Score                float64  `json:"score" validate:"gte=0,lte=1"`
	Confidence           float64  `json:"confidence" validate:"gte=-1,lte=1"`
	MatchedKeywords      []string `json:"matched_keywords,omitempty"`
	RelevanceExplanation string   `json:"relevance_explanation,omitempty"`
}

// ScoredEntry holds the relevance judgment for a single resume item
// (one job, one degree, one project) plus its scored bullets.
// Bullets with no extractable text are absent, never zero-scored placeholders.
type ScoredEntry struct {
	EntryID              string         `json:"entry_id" validate:"required"`
	EntryType            string         `json:"entry_type"`
	Score                float64        `json:"score" validate:"gte=0,lte=1"`
	Confidence           float64        `json:"confidence" validate:"gte=-1,lte=1"`
	MatchedKeywords      []string       `json:"matched_keywords,omitempty"`
	RelevanceExplanation string         `json:"relevance_explanation,omitempty"`
	Bullets              []ScoredBullet `json:"bullets,omitempty" validate:"dive"`
}

// SectionScore holds the relevance judgment for a top-level resume section.
// Entries may be empty for flat sections (e.g. "skills") that have no sub-items.
type SectionScore struct {
	SectionID            string        `json:"section_id" validate:"required"`
	Score                float64       `json:"score" validate:"gte=0,lte=1"`
	Confidence           float64       `json:"confidence" validate:"gte=-1,lte=1"`
	MatchedKeywords      []string      `json:"matched_keywords,omitempty"`
	RelevanceExplanation string        `json:"relevance_explanation,omitempty"`
	Entries              []ScoredEntry `json:"entries,omitempty" validate:"dive"`
}

// ScoringResult is the output of exactly one scoring component for one run.
// It is created once per scoring call and never mutated after construction.
type ScoringResult struct {
	ComponentName  string                  `json:"component_name" validate:"required"`
	SectionScores  map[string]SectionScore `json:"section_scores" validate:"dive"`
	OverallScore   float64                 `json:"overall_score" validate:"gte=0,lte=1"`
	ProcessingTime float64                 `json:"processing_time" validate:"gte=0"`
	Metadata       map[string]any          `json:"metadata,omitempty"`
}

// CombinedScore is the output of the score combiner. It is a fresh value,
// not an alias into any input ScoringResult.
type CombinedScore struct {
	SectionScores    map[string]SectionScore `json:"section_scores" validate:"dive"`
	OverallScore     float64                 `json:"overall_score" validate:"gte=0,lte=1"`
	ComponentWeights map[string]float64      `json:"component_weights"`
	ProcessingTime   float64                 `json:"processing_time" validate:"gte=0"`
	Metadata         map[string]any          `json:"metadata,omitempty"`
}

// Validate checks field ranges on the bullet.
func (b *ScoredBullet) Validate() error { return validate.Struct(b) }

// Validate checks field ranges on the entry and its bullets.
func (e *ScoredEntry) Validate() error { return validate.Struct(e) }

// Validate checks field ranges on the section and its nested entries.
func (s *SectionScore) Validate() error { return validate.Struct(s) }

// Validate checks field ranges on the result and its section scores.
func (r *ScoringResult) Validate() error { return validate.Struct(r) }

// Validate checks field ranges on the combined score.
func (c *CombinedScore) Validate() error { return validate.Struct(c) }
