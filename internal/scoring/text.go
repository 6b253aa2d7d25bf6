package scoring

import (
	"strings"

	"github.com/jonathan/resume-scorer/internal/types"
)

// sectionText extracts the scoreable text of a section: its highlights,
// description, content, and the text of every entry, joined with spaces.
// Returns "" for sections with nothing to score.
func sectionText(sec types.Section) string {
	var parts []string

	for _, h := range sec.Highlights {
		if h = strings.TrimSpace(h); h != "" {
			parts = append(parts, h)
		}
	}
	if d := strings.TrimSpace(sec.Description); d != "" {
		parts = append(parts, d)
	}
	if c := strings.TrimSpace(sec.Content); c != "" {
		parts = append(parts, c)
	}
	for _, entry := range sec.Entries {
		if t := entryText(entry); t != "" {
			parts = append(parts, t)
		}
	}

	return strings.Join(parts, " ")
}

// entryText extracts the scoreable text of one entry: description,
// highlights, and bullets, joined with spaces.
func entryText(entry types.Entry) string {
	var parts []string

	if d := strings.TrimSpace(entry.Description); d != "" {
		parts = append(parts, d)
	}
	for _, h := range entry.Highlights {
		if h = strings.TrimSpace(h); h != "" {
			parts = append(parts, h)
		}
	}
	for _, b := range entry.Bullets {
		if b = strings.TrimSpace(b); b != "" {
			parts = append(parts, b)
		}
	}

	return strings.Join(parts, " ")
}

// prepareText normalizes text before embedding: trimmed and lower-cased.
func prepareText(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
