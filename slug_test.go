package distill_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jswierad/distill"
	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "lowercases and replaces spaces",
			title: "Breaking News Today",
			want:  "breaking_news_today",
		},
		{
			name:  "strips special characters",
			title: "What's New? (2026 Edition!)",
			want:  "whats_new_2026_edition",
		},
		{
			name:  "collapses hyphen runs",
			title: "state--of--the--art",
			want:  "state_of_the_art",
		},
		{
			name:  "trims leading and trailing underscores",
			title: "  framed  ",
			want:  "framed",
		},
		{
			name:  "empty title falls back to untitled",
			title: "",
			want:  "untitled",
		},
		{
			name:  "only specials falls back to untitled",
			title: "???!!!",
			want:  "untitled",
		},
		{
			name:  "keeps cyrillic letters",
			title: "Жёсткие новости",
			want:  "жёсткие_новости",
		},
		{
			name:  "keeps cjk letters",
			title: "世界新闻速递",
			want:  "世界新闻速递",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, distill.Slugify(tt.title))
		})
	}

	t.Run("caps length at 100 characters", func(t *testing.T) {
		t.Parallel()

		got := distill.Slugify(strings.Repeat("long title ", 30))

		assert.LessOrEqual(t, len(got), 100)
		assert.NotEmpty(t, got)
	})

	t.Run("caps multibyte titles without splitting a rune", func(t *testing.T) {
		t.Parallel()

		got := distill.Slugify(strings.Repeat("новости", 30))

		assert.True(t, utf8.ValidString(got))
		assert.LessOrEqual(t, utf8.RuneCountInString(got), 100)
	})

	t.Run("distinct non-ascii titles produce distinct slugs", func(t *testing.T) {
		t.Parallel()

		a := distill.Slugify("世界新闻速递")
		b := distill.Slugify("Жёсткие новости")

		assert.NotEqual(t, "untitled", a)
		assert.NotEqual(t, "untitled", b)
		assert.NotEqual(t, a, b)
	})
}
