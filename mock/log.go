package mock

import (
	"context"
	"sync"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
)

var _ doccrawler.ErrorSink = (*ErrorSink)(nil)

// ErrorSink is a mock implementation of doccrawler.ErrorSink.
// With no RecordFn set it collects messages in Recorded.
type ErrorSink struct {
	RecordFn func(ctx context.Context, sessionID, message string) error

	mu       sync.Mutex
	Recorded []string
}

func (s *ErrorSink) Record(ctx context.Context, sessionID, message string) error {
	if s.RecordFn != nil {
		return s.RecordFn(ctx, sessionID, message)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Recorded = append(s.Recorded, message)
	return nil
}

// Messages returns a snapshot of collected messages.
func (s *ErrorSink) Messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.Recorded...)
}

var _ doccrawler.UsageLog = (*UsageLog)(nil)

// UsageLog is a mock implementation of doccrawler.UsageLog.
// With no SaveUsageFn set it collects records in Saved.
type UsageLog struct {
	SaveUsageFn func(ctx context.Context, rec *doccrawler.UsageRecord) error

	mu    sync.Mutex
	Saved []*doccrawler.UsageRecord
}

func (l *UsageLog) SaveUsage(ctx context.Context, rec *doccrawler.UsageRecord) error {
	if l.SaveUsageFn != nil {
		return l.SaveUsageFn(ctx, rec)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Saved = append(l.Saved, rec)
	return nil
}

// Records returns a snapshot of collected usage records.
func (l *UsageLog) Records() []*doccrawler.UsageRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*doccrawler.UsageRecord(nil), l.Saved...)
}
