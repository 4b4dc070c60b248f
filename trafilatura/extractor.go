// Package trafilatura implements distill.Extractor on top of
// go-trafilatura, the primary extraction engine.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/jswierad/distill"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements distill.Extractor at compile time.
var _ distill.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract readable article content and
// metadata from HTML.
type Extractor struct {
	includeTables   bool
	includeComments bool
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithTables controls whether table content is extracted. Default true.
func WithTables(include bool) Option {
	return func(e *Extractor) {
		e.includeTables = include
	}
}

// WithComments controls whether comment sections are extracted.
// Default false.
func WithComments(include bool) Option {
	return func(e *Extractor) {
		e.includeComments = include
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{includeTables: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes raw HTML and returns the normalized article record.
func (e *Extractor) Extract(rawHTML, source string) (_ *distill.Article, err error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, distill.Errorf(distill.EINVALID, "empty HTML input")
	}

	// The engine can panic on pathological markup; a single bad input
	// must never take down a whole batch.
	defer func() {
		if r := recover(); r != nil {
			err = distill.Errorf(distill.EINTERNAL, "extraction panic: %v", r)
		}
	}()

	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: !e.includeComments,
		ExcludeTables:   !e.includeTables,
	}
	if u, perr := url.Parse(source); perr == nil && u.IsAbs() {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, distill.Errorf(distill.EINTERNAL, "trafilatura: %v", err)
	}

	text := strings.TrimSpace(result.ContentText)
	if text == "" {
		return nil, distill.Errorf(distill.ENOCONTENT, "no extractable content")
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	meta := result.Metadata
	art := &distill.Article{
		Title:       meta.Title,
		Author:      meta.Author,
		Sitename:    meta.Sitename,
		Description: meta.Description,
		Categories:  meta.Categories,
		Tags:        meta.Tags,
		Source:      source,
		Text:        text,
		ContentHTML: contentHTML,
	}
	if !meta.Date.IsZero() {
		art.Date = meta.Date.Format("2006-01-02")
	}

	passthrough := map[string]any{}
	if meta.Language != "" {
		passthrough["language"] = meta.Language
	}
	if meta.Hostname != "" {
		passthrough["hostname"] = meta.Hostname
	}
	if meta.License != "" {
		passthrough["license"] = meta.License
	}
	if len(passthrough) > 0 {
		art.Metadata = passthrough
	}

	return art, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
