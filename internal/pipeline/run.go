// Package pipeline provides the high-level orchestration for a scoring run:
// invoking every scoring component, combining their results, and optionally
// persisting the artifacts.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-scorer/internal/db"
	"github.com/jonathan/resume-scorer/internal/observability"
	"github.com/jonathan/resume-scorer/internal/scoring"
	"github.com/jonathan/resume-scorer/internal/types"
)

// jobSummaryLimit bounds the job description excerpt stored with a run record.
const jobSummaryLimit = 120

// ProgressEvent represents a progress update during a scoring run
type ProgressEvent struct {
	Step      string `json:"step"`
	Component string `json:"component,omitempty"`
	Message   string `json:"message"`
	RunID     string `json:"run_id,omitempty"`
	Content   any    `json:"content,omitempty"`
}

// ProgressCallback is called when run progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for one scoring run
type RunOptions struct {
	JobDescription     string
	Content            map[string]types.Section
	Sections           []string // Optional allow-list of section ids
	MaxCharsPerSection int
	Weights            map[string]float64 // Optional per-component weights
	DatabaseURL        string
	Verbose            bool
	OnProgress         ProgressCallback
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, step, component, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:      step,
			Component: component,
			Message:   message,
			Content:   content,
		})
	}
}

// Run invokes every scorer concurrently against the same content, combines
// the results under the configured weights, and returns the combined score.
// The components themselves hold no mutable shared state, so parallel
// invocation is safe. An embedding-backend failure aborts the run; an LLM
// component failure surfaces as a degraded result and the run continues.
func Run(ctx context.Context, scorers []scoring.Scorer, combiner *scoring.Combiner, opts RunOptions) (*types.CombinedScore, error) {
	if len(scorers) == 0 {
		return nil, fmt.Errorf("no scoring components configured")
	}

	printer := observability.NewPrinter(os.Stdout)

	// Initialize database connection if configured
	var store *db.Store
	var runID uuid.UUID
	if opts.DatabaseURL != "" {
		var err error
		store, err = db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: Failed to connect to database: %v\n", err)
			fmt.Printf("Continuing without database persistence...\n")
			store = nil
		} else {
			defer store.Close()
			runID, err = store.CreateRun(ctx, jobSummary(opts.JobDescription))
			if err != nil {
				fmt.Printf("Warning: Failed to create run record: %v\n", err)
				store = nil
			}
		}
	}

	scoreOpts := &scoring.Options{
		Sections:           opts.Sections,
		MaxCharsPerSection: opts.MaxCharsPerSection,
	}

	// Score with every component concurrently
	results := make([]*types.ScoringResult, len(scorers))
	g, gctx := errgroup.WithContext(ctx)
	for i, scorer := range scorers {
		g.Go(func() error {
			emitProgress(&opts, "scoring", scorer.Name(), fmt.Sprintf("Scoring with %s", scorer.Name()), nil)
			result, err := scorer.ScoreContent(gctx, opts.JobDescription, opts.Content, scoreOpts)
			if err != nil {
				return fmt.Errorf("component %s failed: %w", scorer.Name(), err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if store != nil {
			if dbErr := store.CompleteRun(ctx, runID, "failed"); dbErr != nil {
				fmt.Printf("Warning: Failed to mark run failed: %v\n", dbErr)
			}
		}
		return nil, err
	}

	collected := make([]types.ScoringResult, 0, len(results))
	for _, result := range results {
		if result == nil {
			continue
		}
		if opts.Verbose {
			printer.PrintScoringResult(result)
		}
		if errMsg, ok := result.Metadata["error"]; ok {
			fmt.Printf("Warning: Component %s degraded: %v\n", result.ComponentName, errMsg)
		}
		emitProgress(&opts, "scored", result.ComponentName,
			fmt.Sprintf("Component %s scored %d sections", result.ComponentName, len(result.SectionScores)), nil)
		if store != nil {
			if err := store.SaveResult(ctx, runID, result.ComponentName, result); err != nil {
				fmt.Printf("Warning: Failed to save %s result: %v\n", result.ComponentName, err)
			}
		}
		collected = append(collected, *result)
	}

	// Combine
	combined := combiner.CombineResults(collected, opts.Weights)
	if opts.Verbose {
		printer.PrintCombinedScore(combined)
	}
	emitProgress(&opts, "combined", "",
		fmt.Sprintf("Combined %d component results into %d sections", len(collected), len(combined.SectionScores)), combined)

	if store != nil {
		if err := store.SaveCombined(ctx, runID, combined); err != nil {
			fmt.Printf("Warning: Failed to save combined score: %v\n", err)
		}
		if err := store.CompleteRun(ctx, runID, "completed"); err != nil {
			fmt.Printf("Warning: Failed to mark run completed: %v\n", err)
		}
	}

	return combined, nil
}

// jobSummary returns a short single-line excerpt of the job description for
// the run record.
func jobSummary(jobDescription string) string {
	summary := strings.Join(strings.Fields(jobDescription), " ")
	if len(summary) > jobSummaryLimit {
		summary = summary[:jobSummaryLimit]
	}
	return summary
}
