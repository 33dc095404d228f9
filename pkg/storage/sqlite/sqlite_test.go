package sqlite_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"phishguard/pkg/domain"
	"phishguard/pkg/logger"
	"phishguard/pkg/serrors"
	"phishguard/pkg/storage"
	"phishguard/pkg/storage/sqlite"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)

	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *sqlite.SQLite {
	t.Helper()

	db, err := sqlite.New(context.Background(), sqlite.Options{
		Path:      filepath.Join(t.TempDir(), "phishguard.db"),
		EnableWAL: true,
		Migrate:   true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func TestSQLite_New_InMemory(t *testing.T) {
	db, err := sqlite.New(context.Background(), sqlite.Options{Path: ":memory:", Migrate: true})
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	count, err := db.BlacklistCount(context.Background())
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestSQLite_Blacklist(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	inserted, err := db.AddBlacklistEntries(ctx,
		domain.BlacklistEntry{Hostname: "evil.example", Source: "kisa"},
		domain.BlacklistEntry{Hostname: "phish.example", Source: "kisa"},
		domain.BlacklistEntry{Hostname: "evil.example", Source: "manual"},
	)
	require.NoError(t, err)
	require.EqualValues(t, 2, inserted)

	hostnames, err := db.BlacklistHostnames(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"evil.example", "phish.example"}, hostnames)

	deleted, err := db.DeleteBlacklistSource(ctx, "kisa")
	require.NoError(t, err)
	require.EqualValues(t, 2, deleted)

	count, err := db.BlacklistCount(ctx)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestSQLite_AddBlacklistEntries_Batches(t *testing.T) {
	db := setupTestDB(t)

	entries := make([]domain.BlacklistEntry, 0, 1000)
	for i := range 1000 {
		entries = append(entries, domain.BlacklistEntry{Hostname: fmt.Sprintf("host%d.example", i), Source: "kisa"})
	}

	inserted, err := db.AddBlacklistEntries(context.Background(), entries...)
	require.NoError(t, err)
	require.EqualValues(t, 1000, inserted)
}

func TestSQLite_SyncState(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	state, err := db.SyncState(ctx, "kisa")
	require.NoError(t, err)
	require.Nil(t, state)

	at := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, mode := range []domain.SyncMode{domain.SyncModeFull, domain.SyncModeIncremental} {
		require.NoError(t, db.SaveSyncState(ctx, domain.SyncState{
			Source:     "kisa",
			Mode:       mode,
			TotalCount: 100 * (i + 1),
			LastPage:   i + 1,
			LastSyncAt: at.Add(time.Duration(i) * time.Hour),
		}))
	}

	state, err = db.SyncState(ctx, "kisa")
	require.NoError(t, err)
	require.NotNil(t, state)
	require.Equal(t, domain.SyncModeIncremental, state.Mode)
	require.Equal(t, 200, state.TotalCount)
	require.Equal(t, 2, state.LastPage)
	require.True(t, at.Add(time.Hour).Equal(state.LastSyncAt))
}

func TestSQLite_Analyses(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	var first *domain.Analysis
	for i := range 3 {
		stored, err := db.StoreAnalysis(ctx, domain.Analysis{
			URL:      "http://naverr.com",
			Hostname: "naverr.com",
			Result: domain.AggregatedResult{
				Hostname:  "naverr.com",
				TotalRisk: 80 + i,
				RiskLevel: domain.RiskLevelDanger,
			},
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
		if first == nil {
			first = stored
		}
	}

	fetched, err := db.AnalysisByID(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	require.Equal(t, 80, fetched.Result.TotalRisk)
	require.True(t, base.Equal(fetched.CreatedAt))

	missing, err := db.AnalysisByID(ctx, domain.AnalysisID(uuid.New()))
	require.NoError(t, err)
	require.Nil(t, missing)

	page, err := db.AnalysesByHostname(ctx, "naverr.com", time.Time{}, 2)
	require.NoError(t, err)
	require.Len(t, page.Analyses, 2)
	require.Equal(t, 82, page.Analyses[0].Result.TotalRisk)
	require.NotNil(t, page.NextCursor)

	page, err = db.AnalysesByHostname(ctx, "naverr.com", *page.NextCursor, 0)
	require.NoError(t, err)
	require.Len(t, page.Analyses, 1)
	require.Nil(t, page.NextCursor)
}

func TestSQLite_WithTx(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	err := db.WithTx(ctx, func(s storage.AllStorage) error {
		_, err := s.AddBlacklistEntries(ctx, domain.BlacklistEntry{Hostname: "rolled.example", Source: "kisa"})
		require.NoError(t, err)

		return errors.New("boom")
	})
	require.Error(t, err)

	err = db.WithTx(ctx, func(s storage.AllStorage) error {
		_, err := s.AddBlacklistEntries(ctx, domain.BlacklistEntry{Hostname: "kept.example", Source: "kisa"})

		return err
	})
	require.NoError(t, err)

	hostnames, err := db.BlacklistHostnames(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"kept.example"}, hostnames)

	tx, err := db.Begin(ctx)
	require.NoError(t, err)
	_, err = tx.(*sqlite.SQLite).Begin(ctx)
	require.ErrorIs(t, err, storage.ErrAlreadyInTx)
	require.NoError(t, tx.Rollback())

	require.ErrorIs(t, db.Commit(), storage.ErrNotInTx)
}

func TestSQLite_AddJob_Unsupported(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.AddJob(context.Background(), nil, nil)
	require.ErrorIs(t, err, storage.ErrJobsUnsupported)
	require.ErrorIs(t, err, serrors.ErrUnavailable)
}
