package scoring

import (
	"time"

	"github.com/jonathan/resume-scorer/internal/types"
)

// Combiner merges ScoringResults from heterogeneous components into one
// CombinedScore using per-component weights. It reads but never retains or
// mutates its inputs; the output is a fresh value.
type Combiner struct {
	weights map[string]float64
}

// NewCombiner creates a combiner with default component weights. A nil or
// empty map means every component present in the results gets equal weight.
func NewCombiner(weights map[string]float64) *Combiner {
	return &Combiner{weights: weights}
}

// CombineResults merges the results under the effective weights: custom
// weights if given, otherwise the combiner's configured weights, otherwise
// equal weight 1.0 per component. Weights are normalized to sum to 1.0.
// An empty results slice is not an error; it yields an empty-shaped
// CombinedScore with overall score 0.0.
func (c *Combiner) CombineResults(results []types.ScoringResult, customWeights map[string]float64) *types.CombinedScore {
	start := time.Now()

	weights := customWeights
	if len(weights) == 0 {
		weights = c.weights
	}
	if len(weights) == 0 {
		weights = make(map[string]float64, len(results))
		for _, result := range results {
			weights[result.ComponentName] = 1.0
		}
	}
	weights = normalizeWeights(weights)

	combinedSections := combineSections(results, weights)

	overallScore := 0.0
	if len(combinedSections) > 0 {
		total := 0.0
		for _, section := range combinedSections {
			total += section.Score
		}
		overallScore = total / float64(len(combinedSections))
	}

	processingTimes := make(map[string]float64, len(results))
	for _, result := range results {
		processingTimes[result.ComponentName] = result.ProcessingTime
	}

	return &types.CombinedScore{
		SectionScores:    combinedSections,
		OverallScore:     overallScore,
		ComponentWeights: weights,
		ProcessingTime:   time.Since(start).Seconds(),
		Metadata: map[string]any{
			"component_weights":          weights,
			"component_processing_times": processingTimes,
		},
	}
}

// normalizeWeights divides every weight by the total so the result sums to
// 1.0. A non-positive total is returned as-is: those components simply
// contribute nothing, which must not be a division error.
func normalizeWeights(weights map[string]float64) map[string]float64 {
	normalized := make(map[string]float64, len(weights))

	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		for name, w := range weights {
			normalized[name] = w
		}
		return normalized
	}

	for name, w := range weights {
		normalized[name] = w / total
	}
	return normalized
}

// combineSections merges section scores across components. The output covers
// the union of section ids: a section scored by only one component still
// appears, weighted only by the components that scored it.
func combineSections(results []types.ScoringResult, weights map[string]float64) map[string]types.SectionScore {
	sectionIDs := make(map[string]bool)
	for _, result := range results {
		for sectionID := range result.SectionScores {
			sectionIDs[sectionID] = true
		}
	}

	combined := make(map[string]types.SectionScore, len(sectionIDs))
	for sectionID := range sectionIDs {
		weightedSum := 0.0
		weightSum := 0.0
		agg := &aggregate{}
		var entries []types.ScoredEntry

		// Iterate results in slice order so explanations and first-seen
		// entry types are deterministic.
		for _, result := range results {
			section, ok := result.SectionScores[sectionID]
			if !ok {
				continue
			}
			weight := weights[result.ComponentName]
			weightedSum += section.Score * weight
			weightSum += weight
			agg.add(section.Score, section.Confidence, section.MatchedKeywords, section.RelevanceExplanation)
			entries = append(entries, section.Entries...)
		}

		score := 0.0
		if weightSum > 0 {
			score = weightedSum / weightSum
		}

		combined[sectionID] = types.SectionScore{
			SectionID:            sectionID,
			Score:                score,
			Confidence:           agg.meanConfidence(),
			MatchedKeywords:      agg.keywordUnion(),
			RelevanceExplanation: agg.joinedExplanation(),
			Entries:              combineEntries(entries),
		}
	}

	return combined
}

// combineEntries groups entries by entry_id across components (not by
// position) and averages each group. entry_type is taken from the first
// record seen for the id.
func combineEntries(entries []types.ScoredEntry) []types.ScoredEntry {
	if len(entries) == 0 {
		return nil
	}

	var order []string
	byID := make(map[string][]types.ScoredEntry)
	for _, entry := range entries {
		if _, seen := byID[entry.EntryID]; !seen {
			order = append(order, entry.EntryID)
		}
		byID[entry.EntryID] = append(byID[entry.EntryID], entry)
	}

	combined := make([]types.ScoredEntry, 0, len(order))
	for _, entryID := range order {
		group := byID[entryID]
		agg := &aggregate{}
		var bullets []types.ScoredBullet
		for _, entry := range group {
			agg.add(entry.Score, entry.Confidence, entry.MatchedKeywords, entry.RelevanceExplanation)
			bullets = append(bullets, entry.Bullets...)
		}

		combined = append(combined, types.ScoredEntry{
			EntryID:              entryID,
			EntryType:            group[0].EntryType,
			Score:                agg.meanScore(),
			Confidence:           agg.meanConfidence(),
			MatchedKeywords:      agg.keywordUnion(),
			RelevanceExplanation: agg.joinedExplanation(),
			Bullets:              combineBullets(bullets),
		})
	}

	return combined
}

// combineBullets groups bullets by exact content string across components
// and averages each group. Two distinct bullets with identical text merge
// into one record; callers that need to distinguish them must disambiguate
// the content upstream.
func combineBullets(bullets []types.ScoredBullet) []types.ScoredBullet {
	if len(bullets) == 0 {
		return nil
	}

	var order []string
	byContent := make(map[string][]types.ScoredBullet)
	for _, bullet := range bullets {
		if _, seen := byContent[bullet.Content]; !seen {
			order = append(order, bullet.Content)
		}
		byContent[bullet.Content] = append(byContent[bullet.Content], bullet)
	}

	combined := make([]types.ScoredBullet, 0, len(order))
	for _, content := range order {
		group := byContent[content]
		agg := &aggregate{}
		for _, bullet := range group {
			agg.add(bullet.Score, bullet.Confidence, bullet.MatchedKeywords, bullet.RelevanceExplanation)
		}

		combined = append(combined, types.ScoredBullet{
			Content:              content,
			Score:                agg.meanScore(),
			Confidence:           agg.meanConfidence(),
			MatchedKeywords:      agg.keywordUnion(),
			RelevanceExplanation: agg.joinedExplanation(),
		})
	}

	return combined
}

// aggregate accumulates the merge parts shared by all three tree levels:
// mean score, mean confidence, keyword union, and explanation concatenation.
// Sections replace the mean score with their own weighted score but reuse
// the rest.
type aggregate struct {
	scoreSum      float64
	confidenceSum float64
	count         int
	keywords      []string
	seenKeywords  map[string]bool
	explanations  []string
}

// add records one contributing component's values, in result order.
func (a *aggregate) add(score, confidence float64, keywords []string, explanation string) {
	a.scoreSum += score
	a.confidenceSum += confidence
	a.count++

	if a.seenKeywords == nil {
		a.seenKeywords = make(map[string]bool)
	}
	for _, kw := range keywords {
		if !a.seenKeywords[kw] {
			a.seenKeywords[kw] = true
			a.keywords = append(a.keywords, kw)
		}
	}

	if explanation != "" {
		a.explanations = append(a.explanations, explanation)
	}
}

func (a *aggregate) meanScore() float64 {
	if a.count == 0 {
		return 0
	}
	return a.scoreSum / float64(a.count)
}

func (a *aggregate) meanConfidence() float64 {
	if a.count == 0 {
		return 0
	}
	return a.confidenceSum / float64(a.count)
}

// keywordUnion returns the deduplicated keywords in first-seen order.
func (a *aggregate) keywordUnion() []string {
	if len(a.keywords) == 0 {
		return nil
	}
	union := make([]string, len(a.keywords))
	copy(union, a.keywords)
	return union
}

// joinedExplanation concatenates the non-empty explanations in the order
// they were added, or returns "" when no component supplied one.
func (a *aggregate) joinedExplanation() string {
	if len(a.explanations) == 0 {
		return ""
	}
	joined := a.explanations[0]
	for _, e := range a.explanations[1:] {
		joined += " | " + e
	}
	return joined
}
