package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/jswierad/distill"
	"github.com/jswierad/distill/mock"
	distillslog "github.com/jswierad/distill/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs successful extraction", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		next := &mock.Extractor{
			ExtractFn: func(html, source string) (*distill.Article, error) {
				return &distill.Article{Title: "T", Source: source, Text: "body"}, nil
			},
		}

		ext := distillslog.NewLoggingExtractor(next, logger)
		article, err := ext.Extract("<p>body</p>", "a.html")

		require.NoError(t, err)
		assert.Equal(t, "T", article.Title)
		assert.Contains(t, buf.String(), "extraction")
		assert.Contains(t, buf.String(), "a.html")
	})

	t.Run("logs failures with error code", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		next := &mock.Extractor{
			ExtractFn: func(html, source string) (*distill.Article, error) {
				return nil, distill.Errorf(distill.ENOCONTENT, "no extractable content")
			},
		}

		ext := distillslog.NewLoggingExtractor(next, logger)
		_, err := ext.Extract("<p></p>", "a.html")

		require.Error(t, err)
		assert.Equal(t, distill.ENOCONTENT, distill.ErrorCode(err))
		assert.Contains(t, buf.String(), "extraction failed")
		assert.Contains(t, buf.String(), distill.ENOCONTENT)
	})
}
