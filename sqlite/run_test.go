package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jswierad/distill"
	"github.com/jswierad/distill/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure RunService implements distill.RunService at compile time.
var _ distill.RunService = (*sqlite.RunService)(nil)

func mustOpenDB(t *testing.T) *sqlite.DB {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}

func testManifest() *distill.RunManifest {
	return distill.NewRunManifest("data/html", "data/output", []distill.ItemResult{
		distill.NewItemSuccess("a.html", "data/output/a.md", 120),
		distill.NewItemFailure("b.html", errors.New("no extractable content")),
	})
}

func TestRunService_CreateRun(t *testing.T) {
	t.Parallel()

	t.Run("assigns id and persists counts", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewRunService(mustOpenDB(t))

		run, err := s.CreateRun(context.Background(), testManifest())

		require.NoError(t, err)
		assert.NotEmpty(t, run.ID)
		assert.Equal(t, 2, run.Total)
		assert.Equal(t, 1, run.OK)
		assert.Equal(t, 1, run.Failed)
		assert.Equal(t, "data/html", run.InputDir)
		assert.False(t, run.GeneratedAt.IsZero())
	})

	t.Run("rejects inconsistent manifest", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewRunService(mustOpenDB(t))
		m := testManifest()
		m.Total = 99

		_, err := s.CreateRun(context.Background(), m)

		require.Error(t, err)
		assert.Equal(t, distill.EINVALID, distill.ErrorCode(err))
	})
}

func TestRunService_FindRuns(t *testing.T) {
	t.Parallel()

	t.Run("returns runs newest first", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewRunService(mustOpenDB(t))

		older := testManifest()
		older.GeneratedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		_, err := s.CreateRun(context.Background(), older)
		require.NoError(t, err)

		newer := testManifest()
		newer.GeneratedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		_, err = s.CreateRun(context.Background(), newer)
		require.NoError(t, err)

		runs, err := s.FindRuns(context.Background(), distill.RunFilter{})

		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.True(t, runs[0].GeneratedAt.After(runs[1].GeneratedAt))
	})

	t.Run("filters by input dir", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewRunService(mustOpenDB(t))
		_, err := s.CreateRun(context.Background(), testManifest())
		require.NoError(t, err)

		other := distill.NewRunManifest("other/html", "other/output", nil)
		_, err = s.CreateRun(context.Background(), other)
		require.NoError(t, err)

		inputDir := "data/html"
		runs, err := s.FindRuns(context.Background(), distill.RunFilter{InputDir: &inputDir})

		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, "data/html", runs[0].InputDir)
	})

	t.Run("paginates", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewRunService(mustOpenDB(t))
		for i := 0; i < 3; i++ {
			m := testManifest()
			m.GeneratedAt = time.Date(2026, 1, i+1, 0, 0, 0, 0, time.UTC)
			_, err := s.CreateRun(context.Background(), m)
			require.NoError(t, err)
		}

		runs, err := s.FindRuns(context.Background(), distill.RunFilter{Limit: 1, Offset: 1})

		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), runs[0].GeneratedAt)
	})
}

func TestRunService_FindRunByID(t *testing.T) {
	t.Parallel()

	t.Run("returns stored run", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewRunService(mustOpenDB(t))
		created, err := s.CreateRun(context.Background(), testManifest())
		require.NoError(t, err)

		got, err := s.FindRunByID(context.Background(), created.ID)

		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, created.Total, got.Total)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewRunService(mustOpenDB(t))

		_, err := s.FindRunByID(context.Background(), "nope")

		require.Error(t, err)
		assert.Equal(t, distill.ENOTFOUND, distill.ErrorCode(err))
	})
}

func TestRunService_FindRunItems(t *testing.T) {
	t.Parallel()

	t.Run("returns items in processing order", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewRunService(mustOpenDB(t))
		created, err := s.CreateRun(context.Background(), testManifest())
		require.NoError(t, err)

		items, err := s.FindRunItems(context.Background(), created.ID)

		require.NoError(t, err)
		require.Len(t, items, 2)

		assert.Equal(t, "a.html", items[0].InputPath)
		assert.True(t, items[0].OK)
		assert.Equal(t, "data/output/a.md", *items[0].OutputPath)
		assert.Equal(t, 120, items[0].ExtractedChars)
		assert.Nil(t, items[0].Error)

		assert.Equal(t, "b.html", items[1].InputPath)
		assert.False(t, items[1].OK)
		assert.Nil(t, items[1].OutputPath)
		assert.Equal(t, "no extractable content", *items[1].Error)
	})

	t.Run("unknown run is not found", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewRunService(mustOpenDB(t))

		_, err := s.FindRunItems(context.Background(), "nope")

		require.Error(t, err)
		assert.Equal(t, distill.ENOTFOUND, distill.ErrorCode(err))
	})
}
