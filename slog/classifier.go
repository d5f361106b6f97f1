package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sentimeter"
)

var _ sentimeter.Classifier = (*LoggingClassifier)(nil)

// LoggingClassifier wraps a Classifier with logging.
type LoggingClassifier struct {
	next   sentimeter.Classifier
	logger *slog.Logger
}

// NewLoggingClassifier creates a new LoggingClassifier.
func NewLoggingClassifier(next sentimeter.Classifier, logger *slog.Logger) *LoggingClassifier {
	return &LoggingClassifier{next: next, logger: logger}
}

// Health logs the health probe.
func (c *LoggingClassifier) Health(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		c.logger.Debug("health",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Health(ctx)
}

// ClassifyBatch logs the batch size and the outcome.
func (c *LoggingClassifier) ClassifyBatch(ctx context.Context, items []string) (result *sentimeter.AnalysisResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"items", len(items),
			"duration", time.Since(begin),
		}
		if result != nil {
			attrs = append(attrs,
				"positive", result.Statistics.PositivePercent,
				"neutral", result.Statistics.NeutralPercent,
				"negative", result.Statistics.NegativePercent,
			)
		}
		if code := sentimeter.ErrorCode(err); code != "" {
			attrs = append(attrs, "code", code)
		}
		attrs = append(attrs, "err", err)
		c.logger.Info("classify", attrs...)
	}(time.Now())
	return c.next.ClassifyBatch(ctx, items)
}
