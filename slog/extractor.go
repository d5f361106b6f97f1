package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sentimeter"
)

var _ sentimeter.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   sentimeter.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next sentimeter.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Inject logs page preparation at debug level.
func (e *LoggingExtractor) Inject(ctx context.Context, pageURL string) (err error) {
	defer func(begin time.Time) {
		e.logger.Debug("inject",
			"url", pageURL,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Inject(ctx, pageURL)
}

// Extract logs the extraction with the number of comments found.
func (e *LoggingExtractor) Extract(ctx context.Context, pageURL string) (ext *sentimeter.Extraction, err error) {
	defer func(begin time.Time) {
		var count int
		var extErr string
		if ext != nil {
			count = ext.Count
			extErr = ext.Error
		}
		attrs := []any{
			"url", pageURL,
			"comments", count,
			"duration", time.Since(begin),
		}
		if extErr != "" {
			attrs = append(attrs, "extraction_error", extErr)
		}
		attrs = append(attrs, "err", err)
		e.logger.Info("extract", attrs...)
	}(time.Now())
	return e.next.Extract(ctx, pageURL)
}

// Close delegates to the wrapped extractor.
func (e *LoggingExtractor) Close() error {
	return e.next.Close()
}
