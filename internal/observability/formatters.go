// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/resume-scorer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintScoringResult outputs a human-readable summary of one component's result.
func (p *Printer) PrintScoringResult(result *types.ScoringResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:  %.3f\n", result.OverallScore))
	sb.WriteString(fmt.Sprintf("Sections: %d\n", len(result.SectionScores)))
	sb.WriteString(fmt.Sprintf("Took:     %.2fs\n", result.ProcessingTime))

	if errMsg, ok := result.Metadata["error"]; ok {
		sb.WriteString(fmt.Sprintf("Error:    %v\n", errMsg))
	}

	for _, section := range topSections(result.SectionScores) {
		sb.WriteString(fmt.Sprintf("  • %-20s %.3f\n", section.SectionID, section.Score))
	}

	p.printBox(fmt.Sprintf("Component: %s", result.ComponentName), sb.String())
}

// PrintCombinedScore outputs a human-readable summary of the combined result.
func (p *Printer) PrintCombinedScore(combined *types.CombinedScore) {
	if combined == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:  %.3f\n", combined.OverallScore))
	sb.WriteString("\n")

	sb.WriteString("Component Weights:\n")
	for _, name := range sortedKeys(combined.ComponentWeights) {
		sb.WriteString(fmt.Sprintf("  • %-24s %.2f\n", name, combined.ComponentWeights[name]))
	}
	sb.WriteString("\n")

	sections := topSections(combined.SectionScores)
	if len(sections) > 0 {
		sb.WriteString("Top Sections:\n")
		for _, section := range sections {
			sb.WriteString(fmt.Sprintf("  • %-20s %.3f\n", section.SectionID, section.Score))
			if len(section.MatchedKeywords) > 0 {
				keywords := section.MatchedKeywords
				if len(keywords) > maxItemsToShow {
					keywords = keywords[:maxItemsToShow]
				}
				sb.WriteString(fmt.Sprintf("    keywords: %s\n", strings.Join(keywords, ", ")))
			}
		}
	}

	p.printBox("Combined Score", sb.String())
}

// topSections returns up to maxItemsToShow sections sorted by score descending.
func topSections(sections map[string]types.SectionScore) []types.SectionScore {
	sorted := make([]types.SectionScore, 0, len(sections))
	for _, section := range sections {
		sorted = append(sorted, section)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].SectionID < sorted[j].SectionID
	})

	if len(sorted) > maxItemsToShow {
		sorted = sorted[:maxItemsToShow]
	}
	return sorted
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
