package distill

import (
	"context"
	"errors"
	"time"
)

// ItemResult is the outcome of processing one input within a batch run.
// Results are appended to the run's sequence in processing order and never
// mutated afterwards.
type ItemResult struct {
	InputPath      string  `json:"input_path"`
	OutputPath     *string `json:"output_path"`
	OK             bool    `json:"ok"`
	ExtractedChars int     `json:"extracted_chars"`
	Error          *string `json:"error"`
}

// NewItemSuccess returns a successful result for an input. chars is the
// character count of the rendered body, zero when an existing artifact was
// reused.
func NewItemSuccess(inputPath, outputPath string, chars int) ItemResult {
	return ItemResult{
		InputPath:      inputPath,
		OutputPath:     &outputPath,
		OK:             true,
		ExtractedChars: chars,
	}
}

// NewItemFailure returns a failed result carrying the error message. For
// application errors the message alone is kept; for any other error the
// full text is preserved for diagnostics.
func NewItemFailure(inputPath string, err error) ItemResult {
	msg := err.Error()
	var e *Error
	if errors.As(err, &e) {
		msg = e.Message
	}
	return ItemResult{
		InputPath: inputPath,
		Error:     &msg,
	}
}

// Validate checks the result consistency invariant: a successful result
// carries an output path and no error, a failed result the reverse.
func (r *ItemResult) Validate() error {
	if r.InputPath == "" {
		return Errorf(EINVALID, "item result input path required")
	}
	if r.OK {
		if r.OutputPath == nil {
			return Errorf(EINVALID, "successful item result requires an output path")
		}
		if r.Error != nil {
			return Errorf(EINVALID, "successful item result must not carry an error")
		}
		return nil
	}
	if r.OutputPath != nil {
		return Errorf(EINVALID, "failed item result must not carry an output path")
	}
	if r.Error == nil {
		return Errorf(EINVALID, "failed item result requires an error")
	}
	return nil
}

// RunManifest is the durable summary of one batch invocation. It is created
// once per run, written exactly once after all items complete, and never
// updated afterwards.
type RunManifest struct {
	GeneratedAt time.Time    `json:"generated_at"`
	InputDir    string       `json:"input_dir"`
	OutputDir   string       `json:"output_dir"`
	Total       int          `json:"total"`
	OK          int          `json:"ok"`
	Failed      int          `json:"failed"`
	Results     []ItemResult `json:"results"`
}

// NewRunManifest assembles a manifest from results in processing order,
// tallying the success and failure counts.
func NewRunManifest(inputDir, outputDir string, results []ItemResult) *RunManifest {
	m := &RunManifest{
		GeneratedAt: time.Now().UTC(),
		InputDir:    inputDir,
		OutputDir:   outputDir,
		Total:       len(results),
		Results:     results,
	}
	for _, r := range results {
		if r.OK {
			m.OK++
		} else {
			m.Failed++
		}
	}
	return m
}

// Validate checks the manifest totals invariants.
func (m *RunManifest) Validate() error {
	if m.Total != len(m.Results) {
		return Errorf(EINVALID, "manifest total %d does not match %d results", m.Total, len(m.Results))
	}
	if m.OK+m.Failed != m.Total {
		return Errorf(EINVALID, "manifest counts %d ok + %d failed do not add up to %d", m.OK, m.Failed, m.Total)
	}
	for i := range m.Results {
		if err := m.Results[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Run is a persisted record of one batch invocation in the run ledger.
type Run struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generatedAt"`
	InputDir    string    `json:"inputDir"`
	OutputDir   string    `json:"outputDir"`
	Total       int       `json:"total"`
	OK          int       `json:"ok"`
	Failed      int       `json:"failed"`
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	ID       *string `json:"id"`
	InputDir *string `json:"inputDir"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RunService records batch runs so history survives manifest overwrites.
// The manifest file remains the on-disk contract; the ledger is auxiliary
// and append-only.
type RunService interface {
	// CreateRun persists a manifest and its per-item results.
	CreateRun(ctx context.Context, manifest *RunManifest) (*Run, error)

	// FindRuns retrieves runs matching the filter, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// FindRunItems retrieves a run's item results in processing order.
	// Returns ENOTFOUND if the run does not exist.
	FindRunItems(ctx context.Context, runID string) ([]ItemResult, error)
}
