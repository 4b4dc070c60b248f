package distill

import "time"

// Article is the normalized record produced by extracting one HTML input.
// It is created fresh per input by an Extractor, never mutated after
// creation, and consumed once when the artifact is rendered.
type Article struct {
	Title       string   `json:"title,omitempty"`
	Author      string   `json:"author,omitempty"`
	Date        string   `json:"date,omitempty"`
	Sitename    string   `json:"sitename,omitempty"`
	Description string   `json:"description,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	Tags        []string `json:"tags,omitempty"`

	// Source identifies the input the article came from: a file path for
	// batch runs or a URL for scrapes. Always set.
	Source string `json:"source"`

	// Text is the cleaned body text. An extraction that yields no usable
	// text is a failure (ENOCONTENT), never an article with an empty body.
	Text string `json:"text"`

	// RawText is the page's pre-cleaning plain text, captured on request
	// during scraping.
	RawText string `json:"raw_text,omitempty"`

	// ContentHTML is the main content as clean HTML with boilerplate
	// removed. It feeds markdown conversion and is not part of the
	// serialized record.
	ContentHTML string `json:"-"`

	// ScrapedAt is set for URL scrapes only.
	ScrapedAt time.Time `json:"scraped_at,omitzero"`

	// Metadata holds open-ended passthrough fields from the extraction
	// engine (language, hostname, license, ...).
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Validate returns an error if the article is missing required fields.
func (a *Article) Validate() error {
	if a.Source == "" {
		return Errorf(EINVALID, "article source required")
	}
	if a.Text == "" {
		return Errorf(EINVALID, "article body text required")
	}
	return nil
}

// Extractor extracts readable article content from raw HTML.
type Extractor interface {
	// Extract processes raw HTML and returns the normalized article.
	// source identifies the input (path or URL) and is recorded on the
	// returned article. Malformed markup must never panic through this
	// method. Returns ENOCONTENT when the input yields no usable body
	// text; other engine failures preserve the original message.
	Extract(html, source string) (*Article, error)
}

// MetadataEnricher fills article fields the extraction engine could not
// determine, typically from document meta tags.
type MetadataEnricher interface {
	Enrich(html string, a *Article) error
}
