package sqlite

import (
	"context"
	"time"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
)

// Ensure UsageLog implements doccrawler.UsageLog at compile time.
var _ doccrawler.UsageLog = (*UsageLog)(nil)

// UsageLog persists completion-API token accounting.
type UsageLog struct {
	db *DB
}

// NewUsageLog creates a UsageLog backed by db.
func NewUsageLog(db *DB) *UsageLog {
	return &UsageLog{db: db}
}

// SaveUsage inserts one usage record.
func (l *UsageLog) SaveUsage(ctx context.Context, rec *doccrawler.UsageRecord) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO llm_usage (
			timestamp, request_type, request_count,
			input_tokens, output_tokens,
			total_input_tokens, total_output_tokens, time_taken_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Timestamp.UTC().Format(time.RFC3339),
		rec.RequestType,
		rec.RequestCount,
		rec.InputTokens,
		rec.OutputTokens,
		rec.TotalInputTokens,
		rec.TotalOutputTokens,
		rec.Duration.Milliseconds(),
	)
	return err
}

// FindUsage returns all usage records of a request type, oldest first.
// An empty type returns everything.
func (l *UsageLog) FindUsage(ctx context.Context, requestType string) ([]*doccrawler.UsageRecord, error) {
	query := `SELECT timestamp, request_type, request_count,
		input_tokens, output_tokens,
		total_input_tokens, total_output_tokens, time_taken_ms
		FROM llm_usage`
	var args []any
	if requestType != "" {
		query += ` WHERE request_type = ?`
		args = append(args, requestType)
	}
	query += ` ORDER BY id`

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*doccrawler.UsageRecord
	for rows.Next() {
		var rec doccrawler.UsageRecord
		var timestamp string
		var ms int64
		if err := rows.Scan(
			&timestamp, &rec.RequestType, &rec.RequestCount,
			&rec.InputTokens, &rec.OutputTokens,
			&rec.TotalInputTokens, &rec.TotalOutputTokens, &ms,
		); err != nil {
			return nil, err
		}
		if rec.Timestamp, err = parseRFC3339(timestamp, "timestamp"); err != nil {
			return nil, err
		}
		rec.Duration = time.Duration(ms) * time.Millisecond
		out = append(out, &rec)
	}
	return out, rows.Err()
}
