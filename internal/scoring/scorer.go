// Package scoring provides the relevance-scoring core: independent scoring
// components that judge resume content against a job description, and a
// combiner that merges their results into one weighted score tree.
package scoring

import (
	"context"

	"github.com/jonathan/resume-scorer/internal/types"
)

// DefaultMaxCharsPerSection bounds the rendered text per section sent to the LLM.
const DefaultMaxCharsPerSection = 500

// Options holds the per-call knobs shared by all scoring components.
// A nil Options is valid and selects the defaults.
type Options struct {
	// Sections is an allow-list of section ids to score. Empty means all.
	Sections []string
	// MaxCharsPerSection truncates each section's rendered text before it is
	// sent to the LLM. Zero selects DefaultMaxCharsPerSection.
	MaxCharsPerSection int
}

// Scorer is a single strategy that produces a ScoringResult for resume
// content against a job description. The combiner depends only on the
// output shape, never on which strategy produced it.
type Scorer interface {
	// Name returns the stable component name reported in results.
	Name() string
	// ScoreContent scores the given sections against the job description.
	ScoreContent(ctx context.Context, jobDescription string, content map[string]types.Section, opts *Options) (*types.ScoringResult, error)
}

// sectionAllowed reports whether a section id passes the allow-list.
func (o *Options) sectionAllowed(id string) bool {
	if o == nil || len(o.Sections) == 0 {
		return true
	}
	for _, s := range o.Sections {
		if s == id {
			return true
		}
	}
	return false
}

// maxChars returns the configured truncation limit or the default.
func (o *Options) maxChars() int {
	if o == nil || o.MaxCharsPerSection <= 0 {
		return DefaultMaxCharsPerSection
	}
	return o.MaxCharsPerSection
}
