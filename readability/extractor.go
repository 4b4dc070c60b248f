// Package readability implements distill.Extractor on top of
// go-readability, selectable as an alternate extraction engine.
package readability

import (
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/jswierad/distill"
)

// Ensure Extractor implements distill.Extractor at compile time.
var _ distill.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract readable article content.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the normalized article record.
func (e *Extractor) Extract(rawHTML, source string) (_ *distill.Article, err error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, distill.Errorf(distill.EINVALID, "empty HTML input")
	}

	defer func() {
		if r := recover(); r != nil {
			err = distill.Errorf(distill.EINTERNAL, "extraction panic: %v", r)
		}
	}()

	var pageURL *url.URL
	if u, perr := url.Parse(source); perr == nil && u.IsAbs() {
		pageURL = u
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), pageURL)
	if err != nil {
		return nil, distill.Errorf(distill.EINTERNAL, "readability: %v", err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return nil, distill.Errorf(distill.ENOCONTENT, "no extractable content")
	}

	return &distill.Article{
		Title:       article.Title,
		Author:      article.Byline,
		Sitename:    article.SiteName,
		Description: article.Excerpt,
		Source:      source,
		Text:        text,
		ContentHTML: article.Content,
	}, nil
}
