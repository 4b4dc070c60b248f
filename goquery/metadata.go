// Package goquery implements distill.MetadataEnricher using goquery to
// fill in article metadata the extraction engine missed.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jswierad/distill"
)

// Ensure Enricher implements distill.MetadataEnricher at compile time.
var _ distill.MetadataEnricher = (*Enricher)(nil)

// Enricher fills empty Article metadata fields from the document head.
// Fields already set by the extraction engine are left untouched.
type Enricher struct{}

// NewEnricher creates a new Enricher.
func NewEnricher() *Enricher {
	return &Enricher{}
}

// Enrich parses the raw HTML and fills missing metadata on the article.
func (e *Enricher) Enrich(html string, a *distill.Article) error {
	if a == nil {
		return distill.Errorf(distill.EINVALID, "nil article")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return distill.Errorf(distill.EINTERNAL, "parse HTML: %v", err)
	}

	if a.Title == "" {
		a.Title = firstNonEmpty(
			metaContent(doc, `meta[property="og:title"]`),
			strings.TrimSpace(doc.Find("title").First().Text()),
		)
	}
	if a.Author == "" {
		a.Author = firstNonEmpty(
			metaContent(doc, `meta[name="author"]`),
			metaContent(doc, `meta[property="article:author"]`),
		)
	}
	if a.Description == "" {
		a.Description = firstNonEmpty(
			metaContent(doc, `meta[name="description"]`),
			metaContent(doc, `meta[property="og:description"]`),
		)
	}
	if a.Sitename == "" {
		a.Sitename = metaContent(doc, `meta[property="og:site_name"]`)
	}
	if a.Date == "" {
		a.Date = firstNonEmpty(
			metaContent(doc, `meta[property="article:published_time"]`),
			metaContent(doc, `meta[name="date"]`),
		)
		if len(a.Date) > 10 {
			a.Date = a.Date[:10]
		}
	}

	return nil
}

// DocumentText returns the visible plain text of a whole page, before
// any boilerplate removal. Script, style, and noscript content is
// dropped and whitespace runs are collapsed.
func DocumentText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", distill.Errorf(distill.EINTERNAL, "parse HTML: %v", err)
	}

	doc.Find("script, style, noscript").Remove()

	scope := doc.Find("body")
	if scope.Length() == 0 {
		scope = doc.Selection
	}
	return strings.Join(strings.Fields(scope.Text()), " "), nil
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
