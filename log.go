package doccrawler

import (
	"context"
	"time"
)

// ErrorSink records non-fatal failures keyed by session so a unit of work
// can be dropped without aborting its siblings.
type ErrorSink interface {
	Record(ctx context.Context, sessionID, message string) error
}

// UsageRecord is the token accounting for one completion-API call.
type UsageRecord struct {
	Timestamp         time.Time     `json:"timestamp"`
	RequestType       string        `json:"request_type"` // "url_filtering", "chunking", ...
	RequestCount      int           `json:"request_count"`
	InputTokens       int           `json:"input_tokens"`
	OutputTokens      int           `json:"output_tokens"`
	TotalInputTokens  int           `json:"total_input_tokens"`
	TotalOutputTokens int           `json:"total_output_tokens"`
	Duration          time.Duration `json:"time_taken"`
}

// UsageLog persists token-usage accounting.
type UsageLog interface {
	SaveUsage(ctx context.Context, rec *UsageRecord) error
}
