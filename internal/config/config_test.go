package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	path := writeTempFile(t, "config.json", `{
		"sections": ["skills", "experience"],
		"max_chars_per_section": 800,
		"weights": {"embedding_hash-fnv1a-256": 0.4, "llm_scorer": 0.6},
		"embedding_backend": "hash",
		"embedding_dim": 512,
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"skills", "experience"}, cfg.Sections)
	assert.Equal(t, 800, cfg.MaxCharsPerSection)
	assert.InDelta(t, 0.6, cfg.Weights["llm_scorer"], 0.001)
	assert.Equal(t, BackendHash, cfg.EmbeddingBackend)
	assert.Equal(t, 512, cfg.EmbeddingDim)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")

	assert.ErrorContains(t, err, "config path is empty")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))

	assert.ErrorContains(t, err, "failed to read config file")
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeTempFile(t, "bad.json", `{"sections": [`)

	_, err := LoadConfig(path)

	assert.ErrorContains(t, err, "failed to parse config JSON")
}

func TestValidate_InvalidBackend(t *testing.T) {
	cfg := &Config{EmbeddingBackend: "word2vec"}

	assert.ErrorContains(t, cfg.Validate(), "'embedding_backend'")
}

func TestValidate_GeminiBackendRequiresAPIKey(t *testing.T) {
	cfg := &Config{EmbeddingBackend: BackendGemini}

	assert.ErrorContains(t, cfg.Validate(), "requires 'api_key'")
}

func TestValidate_NegativeWeight(t *testing.T) {
	cfg := &Config{Weights: map[string]float64{"llm_scorer": -0.5}}

	assert.ErrorContains(t, cfg.Validate(), "must be non-negative")
}

func TestValidate_NegativeEmbeddingDim(t *testing.T) {
	cfg := &Config{EmbeddingDim: -1}

	assert.ErrorContains(t, cfg.Validate(), "'embedding_dim'")
}

func TestValidate_ResumeFileMustExist(t *testing.T) {
	cfg := &Config{Resume: filepath.Join(t.TempDir(), "missing.json")}

	assert.ErrorContains(t, cfg.Validate(), "resume file not found")
}

func TestValidate_Empty(t *testing.T) {
	cfg := &Config{}

	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults_FlagsWin(t *testing.T) {
	flags := &Config{
		Resume:           "flags-resume.json",
		EmbeddingBackend: BackendGemini,
	}
	defaults := Config{
		Resume:           "file-resume.json",
		Job:              "file-job.txt",
		EmbeddingBackend: BackendHash,
		EmbeddingDim:     512,
		Weights:          map[string]float64{"llm_scorer": 0.5},
	}

	merged := flags.MergeWithDefaults(defaults)

	assert.Equal(t, "flags-resume.json", merged.Resume)
	assert.Equal(t, "file-job.txt", merged.Job)
	assert.Equal(t, BackendGemini, merged.EmbeddingBackend)
	assert.Equal(t, 512, merged.EmbeddingDim)
	assert.InDelta(t, 0.5, merged.Weights["llm_scorer"], 0.001)
}
