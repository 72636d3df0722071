// Package slog provides logging decorators for the service interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
)

// Ensure LoggingCompleter implements doccrawler.Completer.
var _ doccrawler.Completer = (*LoggingCompleter)(nil)

// LoggingCompleter wraps a Completer with debug logging.
type LoggingCompleter struct {
	next   doccrawler.Completer
	logger *slog.Logger
}

// NewLoggingCompleter creates a new LoggingCompleter.
func NewLoggingCompleter(next doccrawler.Completer, logger *slog.Logger) *LoggingCompleter {
	return &LoggingCompleter{next: next, logger: logger}
}

// Complete delegates to the wrapped completer and logs the operation.
func (c *LoggingCompleter) Complete(ctx context.Context, prompt string, temperature float32) (completion *doccrawler.Completion, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"prompt_len", len(prompt),
			"duration", time.Since(begin),
			"err", err,
		}
		if completion != nil {
			attrs = append(attrs,
				"input_tokens", completion.InputTokens,
				"output_tokens", completion.OutputTokens,
			)
		}
		c.logger.Debug("completion", attrs...)
	}(time.Now())
	return c.next.Complete(ctx, prompt, temperature)
}
