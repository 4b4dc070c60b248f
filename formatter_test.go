package distill_test

import (
	"strings"
	"testing"
	"time"

	"github.com/jswierad/distill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMarkdown(t *testing.T) {
	t.Parallel()

	t.Run("renders fields in fixed order", func(t *testing.T) {
		t.Parallel()

		a := &distill.Article{
			Title:  "Hello",
			Author: "Jane",
			Source: "news/a.html",
			Text:   "World",
		}

		got := distill.FormatMarkdown(a, "")

		heading := strings.Index(got, "# Hello")
		author := strings.Index(got, "**Author:** Jane")
		body := strings.Index(got, "World")

		require.GreaterOrEqual(t, heading, 0)
		require.Greater(t, author, heading)
		require.Greater(t, body, author)
	})

	t.Run("omits absent fields", func(t *testing.T) {
		t.Parallel()

		a := &distill.Article{Source: "a.html", Text: "Body only."}

		got := distill.FormatMarkdown(a, "")

		assert.False(t, strings.HasPrefix(got, "# "), "unexpected title heading in %q", got)
		assert.NotContains(t, got, "**Author:**")
		assert.NotContains(t, got, "**Published:**")
		assert.NotContains(t, got, "**Categories:**")
		assert.NotContains(t, got, "**Tags:**")
		assert.Contains(t, got, "Body only.")
	})

	t.Run("includes all metadata when present", func(t *testing.T) {
		t.Parallel()

		a := &distill.Article{
			Title:       "Title",
			Author:      "Author",
			Date:        "2026-01-02",
			Sitename:    "Example News",
			Description: "A summary.",
			Categories:  []string{"world", "politics"},
			Tags:        []string{"go", "parsing"},
			Source:      "https://example.com/a",
			Text:        "Body.",
		}

		got := distill.FormatMarkdown(a, "")

		assert.Contains(t, got, "# Title")
		assert.Contains(t, got, "**Author:** Author")
		assert.Contains(t, got, "**Published:** 2026-01-02")
		assert.Contains(t, got, "**Source:** Example News")
		assert.Contains(t, got, "## Summary\nA summary.")
		assert.Contains(t, got, "**Categories:** world, politics")
		assert.Contains(t, got, "**Tags:** go, parsing")
	})

	t.Run("uses provided markdown body verbatim", func(t *testing.T) {
		t.Parallel()

		a := &distill.Article{Title: "T", Source: "a.html", Text: "plain"}

		got := distill.FormatMarkdown(a, "## Section\n\ncode `x`")

		assert.Contains(t, got, "## Section\n\ncode `x`")
		assert.NotContains(t, got, "plain")
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		a := &distill.Article{Title: "T", Author: "A", Source: "s", Text: "b"}

		assert.Equal(t, distill.FormatMarkdown(a, ""), distill.FormatMarkdown(a, ""))
	})

	t.Run("ends with a single trailing newline", func(t *testing.T) {
		t.Parallel()

		a := &distill.Article{Source: "s", Text: "b"}

		got := distill.FormatMarkdown(a, "")

		assert.True(t, strings.HasSuffix(got, "\n"))
		assert.False(t, strings.HasSuffix(got, "\n\n"))
	})
}

func TestFormatText(t *testing.T) {
	t.Parallel()

	t.Run("renders fields without markdown syntax", func(t *testing.T) {
		t.Parallel()

		a := &distill.Article{
			Title:  "Hello",
			Author: "Jane",
			Tags:   []string{"go"},
			Source: "a.html",
			Text:   "World",
		}

		got := distill.FormatText(a)

		assert.NotContains(t, got, "#")
		assert.NotContains(t, got, "**")
		assert.Contains(t, got, "Hello")
		assert.Contains(t, got, "Author: Jane")
		assert.Contains(t, got, "Tags: go")
		assert.Contains(t, got, "World")
	})

	t.Run("separates fields with blank lines", func(t *testing.T) {
		t.Parallel()

		a := &distill.Article{Title: "Hello", Author: "Jane", Source: "a.html", Text: "World"}

		got := distill.FormatText(a)

		assert.Contains(t, got, "Hello\n\nAuthor: Jane\n\nWorld")
	})
}

func TestNormalizeText(t *testing.T) {
	t.Parallel()

	t.Run("collapses excessive blank lines", func(t *testing.T) {
		t.Parallel()

		got := distill.NormalizeText("a\n\n\n\n\nb")

		assert.Equal(t, "a\n\n\nb\n", got)
	})

	t.Run("normalizes line endings", func(t *testing.T) {
		t.Parallel()

		got := distill.NormalizeText("a\r\nb\rc")

		assert.Equal(t, "a\nb\nc\n", got)
	})

	t.Run("strips trailing whitespace per line", func(t *testing.T) {
		t.Parallel()

		got := distill.NormalizeText("a  \nb\t")

		assert.Equal(t, "a\nb\n", got)
	})
}

func TestNormalizeMarkdown(t *testing.T) {
	t.Parallel()

	got := distill.NormalizeMarkdown("# Title\r\n\r\nbody\n\n\n")

	assert.Equal(t, "# Title\n\nbody\n", got)
}

func TestReflow(t *testing.T) {
	t.Parallel()

	t.Run("keeps existing blank lines as paragraph breaks", func(t *testing.T) {
		t.Parallel()

		got := distill.Reflow("First sentence.\nSecond sentence.\n\nNew paragraph.")

		assert.Equal(t, "First sentence. Second sentence.\n\nNew paragraph.", got)
	})

	t.Run("groups line-per-sentence text into paragraphs", func(t *testing.T) {
		t.Parallel()

		got := distill.Reflow("One.\nTwo.\nThree.\nFour.\nFive.")

		assert.Equal(t, "One. Two. Three. Four.\n\nFive.", got)
	})

	t.Run("returns empty string for empty input", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, distill.Reflow(""))
	})
}

func TestFormatRuns(t *testing.T) {
	t.Parallel()

	t.Run("formats one line per run", func(t *testing.T) {
		t.Parallel()

		runs := []*distill.Run{
			{
				ID:          "run-1",
				GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
				InputDir:    "data/html",
				OutputDir:   "data/output",
				Total:       3,
				OK:          2,
				Failed:      1,
			},
		}

		got := distill.FormatRuns(runs)

		assert.Equal(t, "2026-01-02T03:04:05Z  run-1  total=3 ok=2 failed=1  data/html -> data/output", got)
	})

	t.Run("returns empty string for no runs", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, distill.FormatRuns(nil))
	})
}
