package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neotica/restaurantreview/pkg/model"
)

func setupJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestRecordSubmission_AssignsID(t *testing.T) {
	j := setupJournal(t)

	s := &model.Submission{
		RestaurantID: "r1",
		Reviewer:     "martinn",
		Text:         "Great food",
		Outcome:      model.SubmissionPosted,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, j.RecordSubmission(context.Background(), s))
	assert.NotZero(t, s.ID)
}

func TestRecordSubmission_RejectsUnknownOutcome(t *testing.T) {
	j := setupJournal(t)

	err := j.RecordSubmission(context.Background(), &model.Submission{Outcome: "pending"})
	assert.Error(t, err)
}

func TestRecent_NewestFirstAndFiltered(t *testing.T) {
	j := setupJournal(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, s := range []model.Submission{
		{RestaurantID: "r1", Reviewer: "a", Text: "first", Outcome: model.SubmissionPosted, CreatedAt: base},
		{RestaurantID: "r2", Reviewer: "a", Text: "other", Outcome: model.SubmissionPosted, CreatedAt: base.Add(time.Minute)},
		{RestaurantID: "r1", Reviewer: "a", Text: "second", Outcome: model.SubmissionFailed, Error: "reset", CreatedAt: base.Add(2 * time.Minute)},
	} {
		s := s
		require.NoError(t, j.RecordSubmission(ctx, &s), "entry %d", i)
	}

	subs, err := j.Recent(ctx, "r1", 0)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "second", subs[0].Text)
	assert.Equal(t, model.SubmissionFailed, subs[0].Outcome)
	assert.Equal(t, "reset", subs[0].Error)
	assert.Equal(t, "first", subs[1].Text)

	all, err := j.Recent(ctx, "", 2)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "second", all[0].Text)
	assert.Equal(t, "other", all[1].Text)
}

func TestOpen_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "journal.db")
	j, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, j.Close())
	assert.FileExists(t, path)
}
