// Package slog provides logging decorators for distill services.
package slog

import (
	"log/slog"
	"time"

	"github.com/jswierad/distill"
)

// Ensure LoggingExtractor implements distill.Extractor.
var _ distill.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with timing and outcome logging.
type LoggingExtractor struct {
	next   distill.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next distill.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the result.
func (e *LoggingExtractor) Extract(html, source string) (*distill.Article, error) {
	begin := time.Now()
	article, err := e.next.Extract(html, source)
	if err != nil {
		e.logger.Warn("extraction failed",
			"source", source,
			"code", distill.ErrorCode(err),
			"duration", time.Since(begin),
		)
		return nil, err
	}

	e.logger.Debug("extraction",
		"source", source,
		"title", article.Title,
		"chars", len(article.Text),
		"duration", time.Since(begin),
	)
	return article, nil
}
