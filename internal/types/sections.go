package types

// Section is one top-level resume category as supplied by the upstream
// resume parser. All fields are optional; scoring components extract
// whatever text is present and skip sections that yield none.
// This package does not validate resume schema completeness.
type Section struct {
	Description string   `json:"description,omitempty"`
	Content     string   `json:"content,omitempty"`
	Highlights  []string `json:"highlights,omitempty"`
	Entries     []Entry  `json:"entries,omitempty"`
}

// Entry is one item within a section, e.g. one job or one degree.
// ID must be stable and unique within its section so that entries can be
// matched across scoring components.
type Entry struct {
	ID          string   `json:"id"`
	Type        string   `json:"type,omitempty"` // "experience", "education", "project", ...
	Description string   `json:"description,omitempty"`
	Highlights  []string `json:"highlights,omitempty"`
	Bullets     []string `json:"bullets,omitempty"`
}
