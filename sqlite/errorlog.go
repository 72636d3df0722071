package sqlite

import (
	"context"
	"time"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
)

// Ensure ErrorSink implements doccrawler.ErrorSink at compile time.
var _ doccrawler.ErrorSink = (*ErrorSink)(nil)

// ErrorSink persists non-fatal crawl failures per session.
type ErrorSink struct {
	db *DB
}

// NewErrorSink creates an ErrorSink backed by db.
func NewErrorSink(db *DB) *ErrorSink {
	return &ErrorSink{db: db}
}

// Record inserts one error report.
func (s *ErrorSink) Record(ctx context.Context, sessionID, message string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO crawl_errors (session_id, message, created_at) VALUES (?, ?, ?)`,
		sessionID, message, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// SessionError is one recorded failure.
type SessionError struct {
	SessionID string
	Message   string
	CreatedAt time.Time
}

// SessionErrors returns all failures recorded for a session, oldest
// first.
func (s *ErrorSink) SessionErrors(ctx context.Context, sessionID string) ([]SessionError, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, message, created_at FROM crawl_errors WHERE session_id = ? ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SessionError
	for rows.Next() {
		var e SessionError
		var createdAt string
		if err := rows.Scan(&e.SessionID, &e.Message, &createdAt); err != nil {
			return nil, err
		}
		if e.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
