package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jswierad/distill"
)

// Compile-time interface verification.
var _ distill.RunService = (*RunService)(nil)

// RunService implements distill.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun records a completed batch run and its per-item results.
func (s *RunService) CreateRun(ctx context.Context, manifest *distill.RunManifest) (*distill.Run, error) {
	if err := manifest.Validate(); err != nil {
		return nil, err
	}

	run := &distill.Run{
		ID:          uuid.New().String(),
		GeneratedAt: manifest.GeneratedAt.UTC(),
		InputDir:    manifest.InputDir,
		OutputDir:   manifest.OutputDir,
		Total:       manifest.Total,
		OK:          manifest.OK,
		Failed:      manifest.Failed,
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, generated_at, input_dir, output_dir, total, ok, failed)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.GeneratedAt.Format(time.RFC3339), run.InputDir, run.OutputDir,
		run.Total, run.OK, run.Failed)
	if err != nil {
		return nil, err
	}

	for i, item := range manifest.Results {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO run_items (run_id, position, input_path, output_path, ok, extracted_chars, error)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, run.ID, i, item.InputPath, item.OutputPath, item.OK, item.ExtractedChars, item.Error)
		if err != nil {
			return nil, err
		}
	}

	return run, nil
}

// FindRunByID retrieves a run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*distill.Run, error) {
	var run distill.Run
	var generatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, generated_at, input_dir, output_dir, total, ok, failed
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &generatedAt, &run.InputDir, &run.OutputDir,
		&run.Total, &run.OK, &run.Failed)

	if err == sql.ErrNoRows {
		return nil, distill.Errorf(distill.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	run.GeneratedAt, err = parseRFC3339(generatedAt, "generated_at")
	if err != nil {
		return nil, err
	}

	return &run, nil
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter distill.RunFilter) ([]*distill.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, generated_at, input_dir, output_dir, total, ok, failed FROM runs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.InputDir != nil {
		query.WriteString(" AND input_dir = ?")
		args = append(args, *filter.InputDir)
	}

	query.WriteString(" ORDER BY generated_at DESC, id")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*distill.Run
	for rows.Next() {
		var run distill.Run
		var generatedAt string

		if err := rows.Scan(&run.ID, &generatedAt, &run.InputDir, &run.OutputDir,
			&run.Total, &run.OK, &run.Failed); err != nil {
			return nil, err
		}

		run.GeneratedAt, err = parseRFC3339(generatedAt, "generated_at")
		if err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

// FindRunItems retrieves the per-item results of a run in processing order.
func (s *RunService) FindRunItems(ctx context.Context, runID string) ([]distill.ItemResult, error) {
	if _, err := s.FindRunByID(ctx, runID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT input_path, output_path, ok, extracted_chars, error
		FROM run_items
		WHERE run_id = ?
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []distill.ItemResult
	for rows.Next() {
		var item distill.ItemResult
		if err := rows.Scan(&item.InputPath, &item.OutputPath, &item.OK,
			&item.ExtractedChars, &item.Error); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
