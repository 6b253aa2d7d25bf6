// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Embedding backend identifiers accepted in configuration.
const (
	BackendHash   = "hash"
	BackendGemini = "gemini"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Resume string `json:"resume,omitempty"` // Path to resume sections JSON file
	Job    string `json:"job,omitempty"`    // Path to job description text file

	// Scoring
	Sections           []string           `json:"sections,omitempty"`              // Allow-list of section ids to score
	MaxCharsPerSection int                `json:"max_chars_per_section,omitempty"` // Truncation limit for LLM section blocks
	Weights            map[string]float64 `json:"weights,omitempty"`               // Per-component combination weights
	Baseline           string             `json:"baseline,omitempty"`              // Neutral reference text when no job description

	// Embedding backend
	EmbeddingBackend string `json:"embedding_backend,omitempty"` // "hash" or "gemini"
	EmbeddingModel   string `json:"embedding_model,omitempty"`   // Model name for the gemini backend
	EmbeddingDim     int    `json:"embedding_dim,omitempty"`     // Vector size for the hash backend

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.EmbeddingBackend != "" && c.EmbeddingBackend != BackendHash && c.EmbeddingBackend != BackendGemini {
		return fmt.Errorf("config error: 'embedding_backend' must be %q or %q", BackendHash, BackendGemini)
	}
	if c.EmbeddingBackend == BackendGemini && c.APIKey == "" {
		return fmt.Errorf("config error: 'embedding_backend' %q requires 'api_key'", BackendGemini)
	}

	if c.EmbeddingDim < 0 {
		return fmt.Errorf("config error: 'embedding_dim' must be non-negative")
	}
	if c.MaxCharsPerSection < 0 {
		return fmt.Errorf("config error: 'max_chars_per_section' must be non-negative")
	}

	for component, weight := range c.Weights {
		if weight < 0 {
			return fmt.Errorf("config error: weight for %q must be non-negative", component)
		}
	}

	// Validate file paths exist (if specified)
	if c.Resume != "" {
		if _, err := os.Stat(c.Resume); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.Resume)
		}
	}
	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.Baseline == "" {
		result.Baseline = defaults.Baseline
	}
	if result.EmbeddingBackend == "" {
		result.EmbeddingBackend = defaults.EmbeddingBackend
	}
	if result.EmbeddingModel == "" {
		result.EmbeddingModel = defaults.EmbeddingModel
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.EmbeddingDim == 0 {
		result.EmbeddingDim = defaults.EmbeddingDim
	}
	if result.MaxCharsPerSection == 0 {
		result.MaxCharsPerSection = defaults.MaxCharsPerSection
	}

	// Collection fields: use default if unset
	if len(result.Sections) == 0 {
		result.Sections = defaults.Sections
	}
	if len(result.Weights) == 0 {
		result.Weights = defaults.Weights
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
