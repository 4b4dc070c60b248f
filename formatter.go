package distill

import (
	"fmt"
	"strings"
	"time"
)

// Format selects the rendering of extracted articles.
type Format string

// Supported output formats.
const (
	MarkdownFormat Format = "markdown"
	TextFormat     Format = "text"
)

// Validate returns an error if the format is not supported.
func (f Format) Validate() error {
	switch f {
	case MarkdownFormat, TextFormat:
		return nil
	}
	return Errorf(EINVALID, "unknown output format %q", string(f))
}

// Ext returns the artifact file extension for the format.
func (f Format) Ext() string {
	if f == TextFormat {
		return ".txt"
	}
	return ".md"
}

// Reflow paragraph limits. Extraction engines often emit one sentence per
// line; in Markdown single newlines render as spaces, so lines are grouped
// into paragraphs separated by blank lines.
const (
	maxSentencesPerParagraph = 4
	maxCharsPerParagraph     = 900
)

// FormatMarkdown renders an article as Markdown with a fixed field order:
// title heading, author, publish date, site name, summary, categories,
// tags, then the body. body must already be Markdown; pass an empty string
// to reflow the article's plain text into paragraphs instead. The field
// order is load-bearing: consumers diff rendered output.
func FormatMarkdown(a *Article, body string) string {
	if body == "" {
		body = Reflow(a.Text)
	}

	var parts []string
	if a.Title != "" {
		parts = append(parts, "# "+a.Title+"\n")
	}
	if a.Author != "" {
		parts = append(parts, "**Author:** "+a.Author)
	}
	if a.Date != "" {
		parts = append(parts, "**Published:** "+a.Date)
	}
	if a.Sitename != "" {
		parts = append(parts, "**Source:** "+a.Sitename)
	}
	if a.Description != "" {
		parts = append(parts, "\n## Summary\n"+a.Description+"\n")
	}
	if len(a.Categories) > 0 {
		parts = append(parts, "**Categories:** "+strings.Join(a.Categories, ", "))
	}
	if len(a.Tags) > 0 {
		parts = append(parts, "**Tags:** "+strings.Join(a.Tags, ", "))
	}
	parts = append(parts, "\n---\n\n## Article Content\n\n"+body)

	return NormalizeMarkdown(strings.Join(parts, "\n"))
}

// FormatText renders the same field set as FormatMarkdown without markdown
// syntax, separated by blank lines.
func FormatText(a *Article) string {
	var parts []string
	if a.Title != "" {
		parts = append(parts, a.Title)
	}
	if a.Author != "" {
		parts = append(parts, "Author: "+a.Author)
	}
	if a.Date != "" {
		parts = append(parts, "Published: "+a.Date)
	}
	if a.Sitename != "" {
		parts = append(parts, "Source: "+a.Sitename)
	}
	if a.Description != "" {
		parts = append(parts, a.Description)
	}
	if len(a.Categories) > 0 {
		parts = append(parts, "Categories: "+strings.Join(a.Categories, ", "))
	}
	if len(a.Tags) > 0 {
		parts = append(parts, "Tags: "+strings.Join(a.Tags, ", "))
	}
	parts = append(parts, a.Text)

	return NormalizeText(strings.Join(parts, "\n\n"))
}

// NormalizeText normalizes line endings, strips trailing whitespace from
// each line, collapses runs of more than two blank lines, and guarantees a
// single trailing newline.
func NormalizeText(text string) string {
	text = normalizeNewlines(text)
	lines := strings.Split(text, "\n")

	cleaned := make([]string, 0, len(lines))
	blankRun := 0
	for _, ln := range lines {
		ln = strings.TrimRight(ln, " \t")
		if strings.TrimSpace(ln) == "" {
			blankRun++
			if blankRun <= 2 {
				cleaned = append(cleaned, "")
			}
			continue
		}
		blankRun = 0
		cleaned = append(cleaned, ln)
	}

	return strings.TrimSpace(strings.Join(cleaned, "\n")) + "\n"
}

// NormalizeMarkdown normalizes line endings and guarantees a single
// trailing newline.
func NormalizeMarkdown(md string) string {
	return strings.TrimSpace(normalizeNewlines(md)) + "\n"
}

// Reflow converts line-per-sentence plain text into Markdown paragraphs.
// Existing blank lines are kept as paragraph breaks; otherwise consecutive
// lines are grouped until the paragraph limits are reached.
func Reflow(text string) string {
	if text == "" {
		return ""
	}

	rawLines := strings.Split(normalizeNewlines(text), "\n")
	for i, ln := range rawLines {
		rawLines[i] = strings.TrimSpace(ln)
	}

	hasBlank := false
	for _, ln := range rawLines {
		if ln == "" {
			hasBlank = true
			break
		}
	}

	var paragraphs []string
	var buf []string

	flush := func() {
		if len(buf) > 0 {
			paragraphs = append(paragraphs, strings.Join(buf, " "))
			buf = buf[:0]
		}
	}

	if hasBlank {
		for _, ln := range rawLines {
			if ln == "" {
				flush()
				continue
			}
			buf = append(buf, ln)
		}
		flush()
		return strings.Join(paragraphs, "\n\n")
	}

	sentences, chars := 0, 0
	for _, ln := range rawLines {
		if ln == "" {
			continue
		}
		buf = append(buf, ln)
		sentences++
		chars += len(ln) + 1

		if sentences >= maxSentencesPerParagraph || chars >= maxCharsPerParagraph {
			flush()
			sentences, chars = 0, 0
		}
	}
	flush()

	return strings.Join(paragraphs, "\n\n")
}

// FormatRuns formats ledger runs for display, one per line, in the order
// given.
func FormatRuns(runs []*Run) string {
	if len(runs) == 0 {
		return ""
	}

	parts := make([]string, 0, len(runs))
	for _, r := range runs {
		parts = append(parts, fmt.Sprintf("%s  %s  total=%d ok=%d failed=%d  %s -> %s",
			r.GeneratedAt.UTC().Format(time.RFC3339), r.ID, r.Total, r.OK, r.Failed, r.InputDir, r.OutputDir))
	}

	return strings.Join(parts, "\n")
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
