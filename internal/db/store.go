// Package db provides PostgreSQL persistence for scoring runs and their
// result artifacts.
package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Artifact step names for scoring runs.
const (
	StepComponentResult = "component_result"
	StepCombinedScore   = "combined_score"
)

// Store wraps a PostgreSQL connection pool
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the connection pool
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// CreateRun creates a new scoring run record and returns its ID.
// jobSummary is a short identifying excerpt of the job description.
func (s *Store) CreateRun(ctx context.Context, jobSummary string) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.pool.QueryRow(ctx,
		`INSERT INTO scoring_runs (job_summary, status)
		 VALUES ($1, 'running')
		 RETURNING id`,
		jobSummary,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create scoring run: %w", err)
	}
	return id, nil
}

// CompleteRun marks a scoring run as completed
func (s *Store) CompleteRun(ctx context.Context, runID uuid.UUID, status string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE scoring_runs SET status = $1, completed_at = NOW() WHERE id = $2`,
		status, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete scoring run: %w", err)
	}
	return nil
}

// SaveResult stores one component's scoring result for a run
func (s *Store) SaveResult(ctx context.Context, runID uuid.UUID, componentName string, result any) error {
	return s.saveArtifact(ctx, runID, StepComponentResult, componentName, result)
}

// SaveCombined stores the combined score for a run
func (s *Store) SaveCombined(ctx context.Context, runID uuid.UUID, combined any) error {
	return s.saveArtifact(ctx, runID, StepCombinedScore, "combined", combined)
}

// saveArtifact stores a JSON artifact for a scoring run
func (s *Store) saveArtifact(ctx context.Context, runID uuid.UUID, step, component string, content any) error {
	jsonBytes, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO score_artifacts (run_id, step, component, content)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (run_id, step, component) DO UPDATE SET content = $4, created_at = NOW()`,
		runID, step, component, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save artifact %s/%s: %w", step, component, err)
	}
	return nil
}

// GetCombined retrieves the stored combined score for a run.
// Returns nil without error when the run has no combined score yet.
func (s *Store) GetCombined(ctx context.Context, runID uuid.UUID) ([]byte, error) {
	var content []byte
	err := s.pool.QueryRow(ctx,
		`SELECT content FROM score_artifacts WHERE run_id = $1 AND step = $2`,
		runID, StepCombinedScore,
	).Scan(&content)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get combined score: %w", err)
	}
	return content, nil
}
