package sqlite_test

import (
	"context"
	"testing"
	"time"

	doccrawler "github.com/Krish-Goyani/DocCrawler"
	"github.com/Krish-Goyani/DocCrawler/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsageLog_SaveUsage(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	log := sqlite.NewUsageLog(db)
	ctx := context.Background()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, log.SaveUsage(ctx, &doccrawler.UsageRecord{
		Timestamp:         now,
		RequestType:       "chunking",
		RequestCount:      1,
		InputTokens:       1200,
		OutputTokens:      340,
		TotalInputTokens:  1200,
		TotalOutputTokens: 340,
		Duration:          2500 * time.Millisecond,
	}))
	require.NoError(t, log.SaveUsage(ctx, &doccrawler.UsageRecord{
		Timestamp:         now.Add(time.Minute),
		RequestType:       "url_filtering",
		RequestCount:      2,
		InputTokens:       800,
		OutputTokens:      100,
		TotalInputTokens:  2000,
		TotalOutputTokens: 440,
		Duration:          900 * time.Millisecond,
	}))

	records, err := log.FindUsage(ctx, "chunking")
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "chunking", rec.RequestType)
	assert.Equal(t, 1, rec.RequestCount)
	assert.Equal(t, 1200, rec.InputTokens)
	assert.Equal(t, 340, rec.OutputTokens)
	assert.Equal(t, 1200, rec.TotalInputTokens)
	assert.Equal(t, 340, rec.TotalOutputTokens)
	assert.Equal(t, 2500*time.Millisecond, rec.Duration)
	assert.True(t, rec.Timestamp.Equal(now))
}

func TestUsageLog_FindUsage_empty_type_returns_all(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	log := sqlite.NewUsageLog(db)
	ctx := context.Background()

	for _, requestType := range []string{"chunking", "url_filtering", "chunking"} {
		require.NoError(t, log.SaveUsage(ctx, &doccrawler.UsageRecord{
			Timestamp:   time.Now().UTC(),
			RequestType: requestType,
		}))
	}

	records, err := log.FindUsage(ctx, "")
	require.NoError(t, err)
	assert.Len(t, records, 3)

	records, err = log.FindUsage(ctx, "url_filtering")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
