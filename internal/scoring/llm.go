package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/resume-scorer/internal/llm"
	"github.com/jonathan/resume-scorer/internal/prompts"
	"github.com/jonathan/resume-scorer/internal/schemas"
	"github.com/jonathan/resume-scorer/internal/types"
)

// llmComponentName is the stable component name of the LLM scorer.
const llmComponentName = "llm_scorer"

// LLMScorer obtains qualitative, keyword- and explanation-rich relevance
// judgments from an LLM, structured identically to the embedding scorer's
// output tree. Any failure during prompting, transport, or reply validation
// is converted into a degraded empty result carrying the failure in
// metadata["error"]; the scorer never returns an error past its boundary,
// so one failed component cannot abort the scoring pipeline.
type LLMScorer struct {
	client llm.Client
}

// NewLLMScorer creates an LLM scorer using the given client.
func NewLLMScorer(client llm.Client) *LLMScorer {
	return &LLMScorer{client: client}
}

// Name returns the stable component name.
func (s *LLMScorer) Name() string {
	return llmComponentName
}

// scoringReply mirrors the JSON shape the LLM is asked to return.
type scoringReply struct {
	Sections []replySection `json:"sections"`
}

type replySection struct {
	SectionID       string       `json:"section_id"`
	Score           float64      `json:"score"`
	Confidence      float64      `json:"confidence"`
	MatchedKeywords []string     `json:"matched_keywords"`
	Explanation     string       `json:"explanation"`
	Entries         []replyEntry `json:"entries"`
}

type replyEntry struct {
	EntryID         string        `json:"entry_id"`
	EntryType       string        `json:"entry_type"`
	Score           float64       `json:"score"`
	Confidence      float64       `json:"confidence"`
	MatchedKeywords []string      `json:"matched_keywords"`
	Explanation     string        `json:"explanation"`
	Bullets         []replyBullet `json:"bullets"`
}

type replyBullet struct {
	Content         string   `json:"content"`
	Score           float64  `json:"score"`
	Confidence      float64  `json:"confidence"`
	MatchedKeywords []string `json:"matched_keywords"`
	Explanation     string   `json:"explanation"`
}

// ScoreContent renders the selected sections into bounded text blocks, sends
// one prompt to the LLM, validates the structured reply at every tree level,
// and converts it into a ScoringResult. The returned error is always nil.
func (s *LLMScorer) ScoreContent(ctx context.Context, jobDescription string, content map[string]types.Section, opts *Options) (*types.ScoringResult, error) {
	start := time.Now()
	maxChars := opts.maxChars()

	// Select sections in deterministic order so the prompt is stable.
	selected := make([]string, 0, len(content))
	for sectionID := range content {
		if opts.sectionAllowed(sectionID) {
			selected = append(selected, sectionID)
		}
	}
	sort.Strings(selected)

	if len(selected) == 0 {
		return degradedResult(start, "No sections to process"), nil
	}

	sectionTexts := renderSections(selected, content, maxChars)

	template := prompts.MustGet("scoring.json", "score-sections")
	prompt := prompts.Format(template, map[string]string{
		"JobDescription": jobDescription,
		"SectionTexts":   sectionTexts,
	})

	raw, err := s.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return degradedResult(start, fmt.Sprintf("LLM generation failed: %v", err)), nil
	}

	raw = llm.CleanJSONBlock(raw)
	if err := schemas.ValidateDocument(schemas.ScoringReplySchema, raw); err != nil {
		return degradedResult(start, fmt.Sprintf("invalid scoring reply: %v", err)), nil
	}

	var reply scoringReply
	if err := json.Unmarshal([]byte(raw), &reply); err != nil {
		return degradedResult(start, fmt.Sprintf("failed to parse scoring reply: %v", err)), nil
	}

	sectionScores := make(map[string]types.SectionScore, len(reply.Sections))
	totalScore := 0.0
	for _, sec := range reply.Sections {
		sectionScores[sec.SectionID] = convertReplySection(sec)
		totalScore += sec.Score
	}

	overallScore := 0.0
	if len(sectionScores) > 0 {
		overallScore = totalScore / float64(len(sectionScores))
	}

	return &types.ScoringResult{
		ComponentName:  llmComponentName,
		SectionScores:  sectionScores,
		OverallScore:   overallScore,
		ProcessingTime: time.Since(start).Seconds(),
		Metadata: map[string]any{
			"section_count":         len(sectionScores),
			"max_chars_per_section": maxChars,
		},
	}, nil
}

// degradedResult is the non-throwing failure value of the LLM scorer.
func degradedResult(start time.Time, reason string) *types.ScoringResult {
	return &types.ScoringResult{
		ComponentName:  llmComponentName,
		SectionScores:  map[string]types.SectionScore{},
		OverallScore:   0.0,
		ProcessingTime: time.Since(start).Seconds(),
		Metadata:       map[string]any{"error": reason},
	}
}

// convertReplySection maps a validated reply section onto the score model.
func convertReplySection(sec replySection) types.SectionScore {
	entries := make([]types.ScoredEntry, 0, len(sec.Entries))
	for _, entry := range sec.Entries {
		bullets := make([]types.ScoredBullet, 0, len(entry.Bullets))
		for _, bullet := range entry.Bullets {
			bullets = append(bullets, types.ScoredBullet{
				Content:              bullet.Content,
				Score:                bullet.Score,
				Confidence:           bullet.Confidence,
				MatchedKeywords:      bullet.MatchedKeywords,
				RelevanceExplanation: bullet.Explanation,
			})
		}
		if len(bullets) == 0 {
			bullets = nil
		}
		entries = append(entries, types.ScoredEntry{
			EntryID:              entry.EntryID,
			EntryType:            entry.EntryType,
			Score:                entry.Score,
			Confidence:           entry.Confidence,
			MatchedKeywords:      entry.MatchedKeywords,
			RelevanceExplanation: entry.Explanation,
			Bullets:              bullets,
		})
	}
	if len(entries) == 0 {
		entries = nil
	}

	return types.SectionScore{
		SectionID:            sec.SectionID,
		Score:                sec.Score,
		Confidence:           sec.Confidence,
		MatchedKeywords:      sec.MatchedKeywords,
		RelevanceExplanation: sec.Explanation,
		Entries:              entries,
	}
}

// renderSections formats the selected sections for the prompt, labeling
// entries with their ids so the reply can reference them, and truncating
// each section's block to maxChars.
func renderSections(sectionIDs []string, content map[string]types.Section, maxChars int) string {
	var blocks []string

	for _, sectionID := range sectionIDs {
		block := renderSection(content[sectionID])
		if block == "" {
			continue
		}
		if len(block) > maxChars {
			block = block[:maxChars] + "..."
		}
		blocks = append(blocks, fmt.Sprintf("Section %s:\n%s", sectionID, block))
	}

	return strings.Join(blocks, "\n\n")
}

// renderSection builds a section's text block: section-level text first,
// then one labeled line per entry.
func renderSection(sec types.Section) string {
	var lines []string

	for _, h := range sec.Highlights {
		if h = strings.TrimSpace(h); h != "" {
			lines = append(lines, h)
		}
	}
	if d := strings.TrimSpace(sec.Description); d != "" {
		lines = append(lines, d)
	}
	if c := strings.TrimSpace(sec.Content); c != "" {
		lines = append(lines, c)
	}
	for _, entry := range sec.Entries {
		text := entryText(entry)
		if text == "" {
			continue
		}
		label := entry.ID
		if entry.Type != "" {
			label = fmt.Sprintf("%s (%s)", entry.ID, entry.Type)
		}
		lines = append(lines, fmt.Sprintf("Entry %s: %s", label, text))
	}

	return strings.Join(lines, "\n")
}
