package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-scorer/internal/types"
)

func TestSectionText_Highlights(t *testing.T) {
	section := types.Section{
		Highlights: []string{"Go", "Kubernetes", "Docker"},
	}

	assert.Equal(t, "Go Kubernetes Docker", sectionText(section))
}

func TestSectionText_AllFields(t *testing.T) {
	section := types.Section{
		Highlights:  []string{"Go"},
		Description: "Backend engineering",
		Content:     "Five years of experience",
		Entries: []types.Entry{
			{ID: "exp-1", Bullets: []string{"Built APIs"}},
		},
	}

	assert.Equal(t, "Go Backend engineering Five years of experience Built APIs", sectionText(section))
}

func TestSectionText_Empty(t *testing.T) {
	assert.Equal(t, "", sectionText(types.Section{}))
}

func TestSectionText_WhitespaceOnly(t *testing.T) {
	section := types.Section{
		Highlights: []string{"  ", "\t"},
		Content:    "   ",
	}

	assert.Equal(t, "", sectionText(section))
}

func TestEntryText_DescriptionHighlightsBullets(t *testing.T) {
	entry := types.Entry{
		Description: "Platform team",
		Highlights:  []string{"Led migration"},
		Bullets:     []string{"Cut latency by 40%", "  "},
	}

	assert.Equal(t, "Platform team Led migration Cut latency by 40%", entryText(entry))
}

func TestEntryText_Empty(t *testing.T) {
	assert.Equal(t, "", entryText(types.Entry{ID: "exp-1"}))
}

func TestPrepareText_TrimsAndLowercases(t *testing.T) {
	assert.Equal(t, "senior go engineer", prepareText("  Senior Go Engineer \n"))
}
