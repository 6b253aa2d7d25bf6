package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-scorer/internal/config"
	"github.com/jonathan/resume-scorer/internal/embedding"
	"github.com/jonathan/resume-scorer/internal/llm"
	"github.com/jonathan/resume-scorer/internal/pipeline"
	"github.com/jonathan/resume-scorer/internal/scoring"
	"github.com/jonathan/resume-scorer/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score resume sections against a job description",
	Long:  "Scores every resume section, entry, and bullet against a job description using the configured scoring components, combines the results by weight, and writes the combined score JSON.",
	RunE:  runScore,
}

var (
	scoreResume      string
	scoreJob         string
	scoreOutput      string
	scoreConfigPath  string
	scoreSections    []string
	scoreMaxChars    int
	scoreBackend     string
	scoreDim         int
	scoreAPIKey      string
	scoreDatabaseURL string
	scoreVerbose     bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreResume, "resume", "r", "", "Path to resume sections JSON file (required)")
	scoreCmd.Flags().StringVarP(&scoreJob, "job", "j", "", "Path to job description text file (omit to score against the neutral baseline)")
	scoreCmd.Flags().StringVarP(&scoreOutput, "out", "o", "", "Path to output combined score JSON file (required)")
	scoreCmd.Flags().StringVarP(&scoreConfigPath, "config", "c", "", "Path to JSON config file")
	scoreCmd.Flags().StringSliceVar(&scoreSections, "sections", nil, "Section ids to score (default: all)")
	scoreCmd.Flags().IntVar(&scoreMaxChars, "max-chars", 0, "Truncation limit per section for the LLM prompt")
	scoreCmd.Flags().StringVar(&scoreBackend, "embedding", "", "Embedding backend: hash or gemini (default: hash)")
	scoreCmd.Flags().IntVar(&scoreDim, "embedding-dim", 0, "Vector size for the hash embedding backend")
	scoreCmd.Flags().StringVar(&scoreAPIKey, "api-key", "", "Gemini API key (default: GEMINI_API_KEY env)")
	scoreCmd.Flags().StringVar(&scoreDatabaseURL, "database-url", "", "PostgreSQL URL for run persistence (default: DATABASE_URL env)")
	scoreCmd.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Print per-component score summaries")

	if err := scoreCmd.MarkFlagRequired("resume"); err != nil {
		panic(fmt.Sprintf("failed to mark resume flag as required: %v", err))
	}
	if err := scoreCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	// 1. Resolve configuration: flags win over config file, config file over env
	cfg := config.Config{
		Resume:             scoreResume,
		Job:                scoreJob,
		Sections:           scoreSections,
		MaxCharsPerSection: scoreMaxChars,
		EmbeddingBackend:   scoreBackend,
		EmbeddingDim:       scoreDim,
		APIKey:             scoreAPIKey,
		DatabaseURL:        scoreDatabaseURL,
		Verbose:            scoreVerbose,
	}
	if scoreConfigPath != "" {
		fileCfg, err := config.LoadConfig(scoreConfigPath)
		if err != nil {
			return err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// 2. Load resume sections
	resumeContent, err := os.ReadFile(cfg.Resume)
	if err != nil {
		return fmt.Errorf("failed to read resume file %s: %w", cfg.Resume, err)
	}
	var sections map[string]types.Section
	if err := json.Unmarshal(resumeContent, &sections); err != nil {
		return fmt.Errorf("failed to unmarshal resume sections JSON: %w", err)
	}

	// 3. Load job description if given
	jobDescription := ""
	if cfg.Job != "" {
		jobContent, err := os.ReadFile(cfg.Job)
		if err != nil {
			return fmt.Errorf("failed to read job description file %s: %w", cfg.Job, err)
		}
		jobDescription = string(jobContent)
	}

	// 4. Build the embedding backend
	var embedder embedding.Embedder
	if cfg.EmbeddingBackend == config.BackendGemini {
		geminiEmbedder, err := embedding.NewGeminiEmbedder(ctx, cfg.APIKey, cfg.EmbeddingModel)
		if err != nil {
			return fmt.Errorf("failed to create embedding backend: %w", err)
		}
		defer func() { _ = geminiEmbedder.Close() }()
		embedder = geminiEmbedder
	} else {
		embedder = embedding.NewHashEmbedder(cfg.EmbeddingDim)
	}

	// 5. Assemble the scoring components. The LLM judge needs an API key;
	// without one the run proceeds on embedding similarity alone.
	var embeddingOpts []scoring.EmbeddingOption
	if cfg.Baseline != "" {
		embeddingOpts = append(embeddingOpts, scoring.WithBaseline(cfg.Baseline))
	}
	scorers := []scoring.Scorer{scoring.NewEmbeddingScorer(embedder, embeddingOpts...)}

	if cfg.APIKey != "" {
		client, err := llm.NewClient(ctx, nil, cfg.APIKey)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer func() { _ = client.Close() }()
		scorers = append(scorers, scoring.NewLLMScorer(client))
	} else {
		fmt.Println("No API key configured; scoring with embedding similarity only")
	}

	// 6. Run the scoring pipeline
	combined, err := pipeline.Run(ctx, scorers, scoring.NewCombiner(cfg.Weights), pipeline.RunOptions{
		JobDescription:     jobDescription,
		Content:            sections,
		Sections:           cfg.Sections,
		MaxCharsPerSection: cfg.MaxCharsPerSection,
		DatabaseURL:        cfg.DatabaseURL,
		Verbose:            cfg.Verbose,
	})
	if err != nil {
		return fmt.Errorf("scoring run failed: %w", err)
	}

	// 7. Write combined score JSON
	jsonOutput, err := json.MarshalIndent(combined, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal combined score to JSON: %w", err)
	}

	outputDir := filepath.Dir(scoreOutput)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}
	if err := os.WriteFile(scoreOutput, jsonOutput, 0644); err != nil {
		return fmt.Errorf("failed to write combined score to output file %s: %w", scoreOutput, err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Scored %d sections (overall %.3f) to %s\n",
		len(combined.SectionScores), combined.OverallScore, scoreOutput)

	return nil
}
