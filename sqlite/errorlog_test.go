package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/Krish-Goyani/DocCrawler/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorSink_Record(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	sink := sqlite.NewErrorSink(db)
	ctx := context.Background()

	require.NoError(t, sink.Record(ctx, "session-1", "fetch failed for https://docs.example.com/a: timeout"))
	require.NoError(t, sink.Record(ctx, "session-1", "chunking failed for https://docs.example.com/b: bad output"))
	require.NoError(t, sink.Record(ctx, "session-2", "other session"))

	errs, err := sink.SessionErrors(ctx, "session-1")
	require.NoError(t, err)
	require.Len(t, errs, 2, "errors are scoped to the session")

	assert.Equal(t, "session-1", errs[0].SessionID)
	assert.Equal(t, "fetch failed for https://docs.example.com/a: timeout", errs[0].Message)
	assert.Equal(t, "chunking failed for https://docs.example.com/b: bad output", errs[1].Message)
	assert.WithinDuration(t, time.Now().UTC(), errs[0].CreatedAt, time.Minute)
}

func TestErrorSink_SessionErrors_empty_session(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	sink := sqlite.NewErrorSink(db)

	errs, err := sink.SessionErrors(context.Background(), "no-such-session")
	require.NoError(t, err)
	assert.Empty(t, errs)
}
