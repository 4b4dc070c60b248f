package batch

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/jswierad/distill"
	"github.com/jswierad/distill/fs"
	"github.com/jswierad/distill/goquery"
)

// Scraper fetches live URLs and writes one JSON, Markdown, and plain
// text artifact per article, named after the article title slug.
type Scraper struct {
	Fetcher     distill.Fetcher
	Extractor   distill.Extractor
	Converter   distill.Converter
	Enricher    distill.MetadataEnricher
	Limiter     distill.DomainLimiter
	RetryDelays []time.Duration
	Timeout     time.Duration

	// IncludeRawText stores the page's pre-cleaning plain text in the
	// JSON record of every scraped article.
	IncludeRawText bool
}

// ScrapeAll processes the URLs sequentially, honoring per-domain rate
// limits, and returns one result per URL in input order. A failing URL
// never stops the rest of the batch.
func (s *Scraper) ScrapeAll(ctx context.Context, urls []string, outputDir string) ([]distill.ItemResult, error) {
	if len(urls) == 0 {
		return nil, distill.Errorf(distill.EINVALID, "no URLs given")
	}

	writer := fs.NewWriter(outputDir)
	if err := writer.EnsureDir(); err != nil {
		return nil, err
	}

	results := make([]distill.ItemResult, 0, len(urls))
	for _, rawURL := range urls {
		if err := ctx.Err(); err != nil {
			results = append(results, distill.NewItemFailure(rawURL, err))
			continue
		}
		results = append(results, s.scrapeOne(ctx, rawURL, writer))
	}
	return results, nil
}

// ScrapeOne fetches and renders a single URL. includeRaw requests the
// pre-cleaning plain text in addition to the Scraper's own setting. The
// returned error carries the application error code for callers that map
// it onto a transport.
func (s *Scraper) ScrapeOne(ctx context.Context, rawURL, outputDir string, includeRaw bool) (distill.ItemResult, *distill.Article, error) {
	writer := fs.NewWriter(outputDir)
	if err := writer.EnsureDir(); err != nil {
		return distill.NewItemFailure(rawURL, err), nil, err
	}
	return s.scrapeOneArticle(ctx, rawURL, writer, includeRaw || s.IncludeRawText)
}

func (s *Scraper) scrapeOne(ctx context.Context, rawURL string, writer *fs.Writer) distill.ItemResult {
	result, _, _ := s.scrapeOneArticle(ctx, rawURL, writer, s.IncludeRawText)
	return result
}

func (s *Scraper) scrapeOneArticle(ctx context.Context, rawURL string, writer *fs.Writer, includeRaw bool) (distill.ItemResult, *distill.Article, error) {
	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() {
		err = distill.Errorf(distill.EINVALID, "invalid URL: %s", rawURL)
		return distill.NewItemFailure(rawURL, err), nil, err
	}

	if s.Limiter != nil {
		if err := s.Limiter.Wait(ctx, u.Host); err != nil {
			return distill.NewItemFailure(rawURL, err), nil, err
		}
	}

	fetchCtx := ctx
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(fetchCtx, rawURL, s.Fetcher.Fetch, nil, delays)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = distill.Errorf(distill.EUNAVAILABLE, "fetch timed out: %s", rawURL)
		}
		return distill.NewItemFailure(rawURL, err), nil, err
	}

	article, err := s.Extractor.Extract(html, rawURL)
	if err != nil {
		return distill.NewItemFailure(rawURL, err), nil, err
	}
	if s.Enricher != nil {
		_ = s.Enricher.Enrich(html, article)
	}
	if includeRaw {
		if raw, rerr := goquery.DocumentText(html); rerr == nil {
			article.RawText = raw
		}
	}
	article.ScrapedAt = time.Now().UTC()

	md, err := s.writeArtifacts(article, writer)
	if err != nil {
		return distill.NewItemFailure(rawURL, err), nil, err
	}

	return distill.NewItemSuccess(rawURL, md.path, md.chars), article, nil
}

type writtenMarkdown struct {
	path  string
	chars int
}

// writeArtifacts writes slug.json, slug.md, and slug.txt. The markdown
// artifact is the primary output reported in the result.
func (s *Scraper) writeArtifacts(article *distill.Article, writer *fs.Writer) (writtenMarkdown, error) {
	slug := distill.Slugify(article.Title)

	data, err := json.MarshalIndent(article, "", "  ")
	if err != nil {
		return writtenMarkdown{}, err
	}
	if _, _, err := writer.WriteArtifact(slug+".json", string(data)+"\n", true); err != nil {
		return writtenMarkdown{}, err
	}

	var body string
	if article.ContentHTML != "" && s.Converter != nil {
		if converted, cerr := s.Converter.Convert(article.ContentHTML); cerr == nil {
			body = converted
		}
	}
	markdown := distill.FormatMarkdown(article, body)
	mdPath, _, err := writer.WriteArtifact(slug+".md", markdown, true)
	if err != nil {
		return writtenMarkdown{}, err
	}

	if _, _, err := writer.WriteArtifact(slug+".txt", distill.FormatText(article), true); err != nil {
		return writtenMarkdown{}, err
	}

	return writtenMarkdown{path: mdPath, chars: utf8.RuneCountInString(markdown)}, nil
}
