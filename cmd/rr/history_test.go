package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neotica/restaurantreview/pkg/journal"
	"github.com/neotica/restaurantreview/pkg/model"
)

func TestPrintHistory_Empty(t *testing.T) {
	j, err := journal.Open(journal.MemoryPath)
	require.NoError(t, err)
	defer j.Close()

	var buf bytes.Buffer
	require.NoError(t, printHistory(context.Background(), &buf, j, "r1", 0))
	assert.Equal(t, "No reviews submitted yet.\n", buf.String())
}

func TestPrintHistory_ListsSubmissions(t *testing.T) {
	j, err := journal.Open(journal.MemoryPath)
	require.NoError(t, err)
	defer j.Close()

	ctx := context.Background()
	now := time.Now()
	require.NoError(t, j.RecordSubmission(ctx, &model.Submission{
		RestaurantID: "r1", Reviewer: "martinn", Text: "Great food",
		Outcome: model.SubmissionPosted, CreatedAt: now.Add(-time.Minute),
	}))
	require.NoError(t, j.RecordSubmission(ctx, &model.Submission{
		RestaurantID: "r1", Reviewer: "martinn", Text: "Cold soup",
		Outcome: model.SubmissionFailed, Error: "network down", CreatedAt: now,
	}))
	require.NoError(t, j.RecordSubmission(ctx, &model.Submission{
		RestaurantID: "r2", Reviewer: "someone", Text: "Elsewhere",
		Outcome: model.SubmissionPosted, CreatedAt: now,
	}))

	var buf bytes.Buffer
	require.NoError(t, printHistory(ctx, &buf, j, "r1", 10))

	out := buf.String()
	assert.Contains(t, out, "REVIEWER")
	assert.Contains(t, out, "Great food")
	assert.Contains(t, out, "Cold soup")
	assert.Contains(t, out, "network down")
	assert.NotContains(t, out, "Elsewhere")
}
