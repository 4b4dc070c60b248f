// Package mock provides function-field mocks for testing.
package mock

import (
	"context"

	"github.com/jswierad/distill"
)

var _ distill.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of distill.Extractor.
type Extractor struct {
	ExtractFn func(html, source string) (*distill.Article, error)
}

func (e *Extractor) Extract(html, source string) (*distill.Article, error) {
	return e.ExtractFn(html, source)
}

var _ distill.Converter = (*Converter)(nil)

// Converter is a mock implementation of distill.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ distill.MetadataEnricher = (*Enricher)(nil)

// Enricher is a mock implementation of distill.MetadataEnricher.
type Enricher struct {
	EnrichFn func(html string, a *distill.Article) error
}

func (e *Enricher) Enrich(html string, a *distill.Article) error {
	return e.EnrichFn(html, a)
}

var _ distill.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of distill.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ distill.Asker = (*Asker)(nil)

// Asker is a mock implementation of distill.Asker.
type Asker struct {
	AskFn func(ctx context.Context, artifacts []*distill.Artifact, question string) (string, error)
}

func (a *Asker) Ask(ctx context.Context, artifacts []*distill.Artifact, question string) (string, error) {
	return a.AskFn(ctx, artifacts, question)
}
