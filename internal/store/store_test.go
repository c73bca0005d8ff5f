package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"pitchdeck-scraper/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "runs", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openTemp(t)
	require.NoError(t, Migrate(db.Pool))

	var v int
	require.NoError(t, db.Pool.QueryRow(`PRAGMA user_version;`).Scan(&v))
	require.Equal(t, 1, v)
}

func TestRecordRunRoundTrip(t *testing.T) {
	db := openTemp(t)
	ctx := context.Background()

	started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	recs := []domain.CompanyRecord{
		{Name: "Acme", Description: "Rockets", LogoURL: "/a.png"},
		{Name: "Beta", Description: "Boats", LogoURL: "/b.png"},
	}

	run, err := RecordRun(ctx, db.Pool, domain.Run{
		Operation:  "companies",
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Second),
		OutputPath: "companies.json",
	}, recs)
	require.NoError(t, err)
	require.NotZero(t, run.ID)
	require.Equal(t, 2, run.RecordCount)

	got, err := GetRun(ctx, db.Pool, run.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(run, got); diff != "" {
		t.Fatalf("run mismatch (-want +got):\n%s", diff)
	}

	raw, err := ListRecords(ctx, db.Pool, run.ID)
	require.NoError(t, err)
	require.Len(t, raw, 2)

	var back []domain.CompanyRecord
	for _, r := range raw {
		var c domain.CompanyRecord
		require.NoError(t, json.Unmarshal(r, &c))
		back = append(back, c)
	}
	require.Equal(t, recs, back)
}

func TestListRunsFilterAndOrder(t *testing.T) {
	db := openTemp(t)
	ctx := context.Background()
	now := time.Now().UTC()

	for _, op := range []string{"companies", "pitches", "companies"} {
		_, err := RecordRun(ctx, db.Pool, domain.Run{Operation: op, StartedAt: now, FinishedAt: now, OutputPath: op + ".json"}, []domain.PitchRecord{})
		require.NoError(t, err)
	}

	all, err := ListRuns(ctx, db.Pool, ListRunsOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Greater(t, all[0].ID, all[1].ID)

	companies, err := ListRuns(ctx, db.Pool, ListRunsOpts{Operation: "companies", Limit: 1})
	require.NoError(t, err)
	require.Len(t, companies, 1)
	require.Equal(t, "companies", companies[0].Operation)
}

func TestGetRunNotFound(t *testing.T) {
	db := openTemp(t)
	_, err := GetRun(context.Background(), db.Pool, 42)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCleanupOldRuns(t *testing.T) {
	db := openTemp(t)
	ctx := context.Background()
	old := time.Now().UTC().Add(-200 * 24 * time.Hour)

	oldRun, err := RecordRun(ctx, db.Pool, domain.Run{Operation: "pitches", StartedAt: old, FinishedAt: old}, []domain.PitchRecord{{Name: "x", Hashtags: []string{}}})
	require.NoError(t, err)
	_, err = RecordRun(ctx, db.Pool, domain.Run{Operation: "pitches", StartedAt: time.Now(), FinishedAt: time.Now()}, []domain.PitchRecord{})
	require.NoError(t, err)

	n, err := CleanupOldRuns(ctx, db.Pool, 90*24*time.Hour)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	recs, err := ListRecords(ctx, db.Pool, oldRun.ID)
	require.NoError(t, err)
	require.Empty(t, recs)
}
