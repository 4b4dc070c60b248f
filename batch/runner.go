// Package batch orchestrates article extraction over inputs: directories
// of saved HTML files and lists of live URLs.
package batch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"unicode/utf8"

	"github.com/jswierad/distill"
	"github.com/jswierad/distill/fs"
	"golang.org/x/sync/errgroup"
)

// Runner processes a directory of HTML files into rendered article
// artifacts plus a run manifest.
type Runner struct {
	Extractor   distill.Extractor
	Converter   distill.Converter
	Enricher    distill.MetadataEnricher
	Concurrency int
}

// Options configures a single batch run.
type Options struct {
	InputDir  string
	OutputDir string
	Format    distill.Format
	Overwrite bool
	Limit     int
}

// Validate checks that the options are usable.
func (o Options) Validate() error {
	if o.InputDir == "" {
		return distill.Errorf(distill.EINVALID, "input directory required")
	}
	if o.OutputDir == "" {
		return distill.Errorf(distill.EINVALID, "output directory required")
	}
	if o.Limit < 0 {
		return distill.Errorf(distill.EINVALID, "limit must not be negative")
	}
	return o.Format.Validate()
}

// ProgressEvent reports progress during a batch run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Path      string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// itemOutcome carries a single item's result back to the collector.
type itemOutcome struct {
	position int
	result   distill.ItemResult
}

// Run discovers HTML files under the input directory, processes them
// concurrently, and writes artifacts and a manifest to the output
// directory. Per-item failures are recorded in the manifest; only setup
// problems return an error.
func (r *Runner) Run(ctx context.Context, opts Options, progress ProgressFunc) (*distill.RunManifest, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	files, err := fs.HTMLFiles(opts.InputDir)
	if err != nil {
		return nil, err
	}
	if opts.Limit > 0 && len(files) > opts.Limit {
		files = files[:opts.Limit]
	}

	writer := fs.NewWriter(opts.OutputDir)
	if err := writer.EnsureDir(); err != nil {
		return nil, err
	}

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	total := len(files)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	outcomeCh := make(chan itemOutcome, total)
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, relPath := range files {
			i, relPath := i, relPath
			g.Go(func() error {
				outcomeCh <- itemOutcome{
					position: i,
					result:   r.processFile(gctx, relPath, writer, opts),
				}
				return nil
			})
		}
		_ = g.Wait()
		close(outcomeCh)
	}()

	// Reassemble in discovery order so the manifest is stable.
	results := make([]distill.ItemResult, total)
	for outcome := range outcomeCh {
		completed.Add(1)
		results[outcome.position] = outcome.result

		if progress != nil {
			event := ProgressEvent{
				Completed: int(completed.Load()),
				Total:     total,
				Path:      outcome.result.InputPath,
			}
			if outcome.result.OK {
				event.Type = ProgressCompleted
			} else {
				event.Type = ProgressFailed
				if outcome.result.Error != nil {
					event.Error = distill.Errorf(distill.EINTERNAL, "%s", *outcome.result.Error)
				}
			}
			progress(event)
		}
	}

	manifest := distill.NewRunManifest(opts.InputDir, opts.OutputDir, results)
	if _, err := fs.WriteManifest(opts.OutputDir, manifest); err != nil {
		return nil, err
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return manifest, nil
}

// processFile extracts and renders one HTML file. Panics from the
// extraction engine are converted into item failures so a single bad
// input cannot abort the run.
func (r *Runner) processFile(ctx context.Context, relPath string, writer *fs.Writer, opts Options) (result distill.ItemResult) {
	defer func() {
		if p := recover(); p != nil {
			result = distill.NewItemFailure(relPath, distill.Errorf(distill.EINTERNAL, "processing panic: %v", p))
		}
	}()

	if err := ctx.Err(); err != nil {
		return distill.NewItemFailure(relPath, err)
	}

	raw, err := os.ReadFile(filepath.Join(opts.InputDir, filepath.FromSlash(relPath)))
	if err != nil {
		return distill.NewItemFailure(relPath, err)
	}

	article, err := r.Extractor.Extract(string(raw), relPath)
	if err != nil {
		return distill.NewItemFailure(relPath, err)
	}

	// Enrichment is best effort; missing metadata never fails an item.
	if r.Enricher != nil {
		_ = r.Enricher.Enrich(string(raw), article)
	}

	content := r.render(article, opts.Format)

	// The writer skips existing non-empty artifacts unless overwriting,
	// so extraction failures surface even for inputs processed before.
	name := distill.FlatName(relPath, opts.Format.Ext())
	path, written, err := writer.WriteArtifact(name, content, opts.Overwrite)
	if err != nil {
		return distill.NewItemFailure(relPath, err)
	}

	chars := 0
	if written {
		chars = utf8.RuneCountInString(content)
	}
	return distill.NewItemSuccess(relPath, path, chars)
}

// render produces the artifact content for the requested format. For
// markdown, the extracted content HTML is converted when possible and
// the plain text is reflowed otherwise.
func (r *Runner) render(article *distill.Article, format distill.Format) string {
	if format == distill.TextFormat {
		return distill.FormatText(article)
	}

	var body string
	if article.ContentHTML != "" && r.Converter != nil {
		if md, err := r.Converter.Convert(article.ContentHTML); err == nil {
			body = md
		}
	}
	return distill.FormatMarkdown(article, body)
}
