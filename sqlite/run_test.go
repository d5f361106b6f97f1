package sqlite_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/fwojciec/sentimeter"
	"github.com/fwojciec/sentimeter/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func testRun(pageURL string) *sentimeter.Run {
	return &sentimeter.Run{
		PageURL: pageURL,
		Result: &sentimeter.AnalysisResult{
			Items: []sentimeter.ClassifiedItem{
				{Text: "love it", Sentiment: sentimeter.Positive, Confidence: 0.91},
				{Text: "it's ok", Sentiment: sentimeter.Neutral, Confidence: 0.55},
				{Text: "awful", Sentiment: sentimeter.Negative, Confidence: 0.88},
				{Text: "great", Sentiment: sentimeter.Positive, Confidence: 0.77},
			},
			Statistics: sentimeter.BatchStatistics{
				PositivePercent: 50,
				NeutralPercent:  25,
				NegativePercent: 25,
				TotalCount:      4,
			},
		},
	}
}

func TestRunService_CreateRun(t *testing.T) {
	t.Parallel()

	t.Run("creates run with generated ID, hash and timestamp", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		run := testRun("https://www.youtube.com/watch?v=abc")
		err := svc.CreateRun(ctx, run)
		require.NoError(t, err)

		assert.NotEmpty(t, run.ID, "ID should be generated")
		assert.Len(t, run.ContentHash, 16, "ContentHash should be 8 bytes hex")
		assert.False(t, run.CreatedAt.IsZero(), "CreatedAt should be set")
	})

	t.Run("same batch yields same hash", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		first := testRun("https://www.youtube.com/watch?v=abc")
		second := testRun("https://www.youtube.com/watch?v=xyz")
		require.NoError(t, svc.CreateRun(ctx, first))
		require.NoError(t, svc.CreateRun(ctx, second))

		assert.NotEqual(t, first.ID, second.ID)
		assert.Equal(t, first.ContentHash, second.ContentHash)
	})

	t.Run("different batch yields different hash", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		first := testRun("https://www.youtube.com/watch?v=abc")
		second := testRun("https://www.youtube.com/watch?v=abc")
		second.Result.Items[0].Text = "hate it"
		require.NoError(t, svc.CreateRun(ctx, first))
		require.NoError(t, svc.CreateRun(ctx, second))

		assert.NotEqual(t, first.ContentHash, second.ContentHash)
	})

	t.Run("returns error for invalid run", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)

		err := svc.CreateRun(context.Background(), &sentimeter.Run{})
		require.Error(t, err)
		assert.Equal(t, sentimeter.EINVALID, sentimeter.ErrorCode(err))
	})

	t.Run("returns error for invalid result", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)

		run := testRun("https://www.youtube.com/watch?v=abc")
		run.Result.Items[0].Confidence = 1.5

		err := svc.CreateRun(context.Background(), run)
		require.Error(t, err)
		assert.Equal(t, sentimeter.EINVALID, sentimeter.ErrorCode(err))

		runs, err := svc.FindRuns(context.Background(), sentimeter.RunFilter{})
		require.NoError(t, err)
		assert.Empty(t, runs)
	})
}

func TestRunService_FindRunByID(t *testing.T) {
	t.Parallel()

	t.Run("returns run with items in batch order", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		run := testRun("https://www.youtube.com/watch?v=abc")
		require.NoError(t, svc.CreateRun(ctx, run))

		found, err := svc.FindRunByID(ctx, run.ID)
		require.NoError(t, err)
		assert.Equal(t, run.ID, found.ID)
		assert.Equal(t, run.PageURL, found.PageURL)
		assert.Equal(t, run.ContentHash, found.ContentHash)
		assert.Equal(t, run.CreatedAt.Unix(), found.CreatedAt.Unix())
		assert.Equal(t, run.Result.Statistics, found.Result.Statistics)
		assert.Equal(t, run.Result.Items, found.Result.Items)
	})

	t.Run("returns run with empty result", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		run := &sentimeter.Run{PageURL: "https://www.youtube.com/watch?v=abc", Result: &sentimeter.AnalysisResult{}}
		require.NoError(t, svc.CreateRun(ctx, run))

		found, err := svc.FindRunByID(ctx, run.ID)
		require.NoError(t, err)
		assert.Empty(t, found.Result.Items)
		assert.NotNil(t, found.Result.Items)
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)

		_, err := svc.FindRunByID(context.Background(), "nonexistent-id")
		require.Error(t, err)
		assert.Equal(t, sentimeter.ENOTFOUND, sentimeter.ErrorCode(err))
	})
}

func TestRunService_FindRuns(t *testing.T) {
	t.Parallel()

	t.Run("returns runs newest first without items", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		var ids []string
		for i := range 3 {
			run := testRun(fmt.Sprintf("https://www.youtube.com/watch?v=v%d", i))
			require.NoError(t, svc.CreateRun(ctx, run))
			ids = append(ids, run.ID)
		}

		runs, err := svc.FindRuns(ctx, sentimeter.RunFilter{})
		require.NoError(t, err)
		require.Len(t, runs, 3)
		assert.Equal(t, ids[2], runs[0].ID)
		assert.Equal(t, ids[1], runs[1].ID)
		assert.Equal(t, ids[0], runs[2].ID)
		for _, run := range runs {
			assert.Nil(t, run.Result.Items)
			assert.Equal(t, 4, run.Result.Statistics.TotalCount)
		}
	})

	t.Run("filters by page URL", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreateRun(ctx, testRun("https://www.youtube.com/watch?v=abc")))
		require.NoError(t, svc.CreateRun(ctx, testRun("https://www.youtube.com/watch?v=xyz")))
		require.NoError(t, svc.CreateRun(ctx, testRun("https://www.youtube.com/watch?v=abc")))

		pageURL := "https://www.youtube.com/watch?v=abc"
		runs, err := svc.FindRuns(ctx, sentimeter.RunFilter{PageURL: &pageURL})
		require.NoError(t, err)
		assert.Len(t, runs, 2)
		for _, run := range runs {
			assert.Equal(t, pageURL, run.PageURL)
		}
	})

	t.Run("filters by ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		run := testRun("https://www.youtube.com/watch?v=abc")
		require.NoError(t, svc.CreateRun(ctx, run))
		require.NoError(t, svc.CreateRun(ctx, testRun("https://www.youtube.com/watch?v=xyz")))

		runs, err := svc.FindRuns(ctx, sentimeter.RunFilter{ID: &run.ID})
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, run.ID, runs[0].ID)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		for i := range 5 {
			require.NoError(t, svc.CreateRun(ctx, testRun(fmt.Sprintf("https://www.youtube.com/watch?v=v%d", i))))
		}

		runs, err := svc.FindRuns(ctx, sentimeter.RunFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, runs, 2)

		runs, err = svc.FindRuns(ctx, sentimeter.RunFilter{Limit: 2, Offset: 4})
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, "https://www.youtube.com/watch?v=v0", runs[0].PageURL)
	})

	t.Run("returns empty when no runs", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)

		runs, err := svc.FindRuns(context.Background(), sentimeter.RunFilter{})
		require.NoError(t, err)
		assert.Empty(t, runs)
	})
}

func TestRunService_DeleteRun(t *testing.T) {
	t.Parallel()

	t.Run("deletes run and its items", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		run := testRun("https://www.youtube.com/watch?v=abc")
		require.NoError(t, svc.CreateRun(ctx, run))

		require.NoError(t, svc.DeleteRun(ctx, run.ID))

		_, err := svc.FindRunByID(ctx, run.ID)
		assert.Equal(t, sentimeter.ENOTFOUND, sentimeter.ErrorCode(err))

		var items int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM run_items WHERE run_id = ?", run.ID).Scan(&items))
		assert.Zero(t, items)
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)

		err := svc.DeleteRun(context.Background(), "nonexistent-id")
		require.Error(t, err)
		assert.Equal(t, sentimeter.ENOTFOUND, sentimeter.ErrorCode(err))
	})
}
