package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"phishguard/pkg/domain"
	"phishguard/pkg/storage"
)

func TestPgSQL_AddBlacklistEntries(t *testing.T) {
	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)

	ctx := context.Background()

	inserted, err := pgSQL.AddBlacklistEntries(ctx,
		domain.BlacklistEntry{Hostname: "evil.example", Source: "kisa"},
		domain.BlacklistEntry{Hostname: "phish.example", Source: "kisa"},
		domain.BlacklistEntry{Hostname: "", Source: "kisa"},
	)
	require.NoError(t, err)
	require.EqualValues(t, 2, inserted)

	// duplicates are skipped
	inserted, err = pgSQL.AddBlacklistEntries(ctx,
		domain.BlacklistEntry{Hostname: "evil.example", Source: "manual"},
		domain.BlacklistEntry{Hostname: "new.example", Source: "manual"},
	)
	require.NoError(t, err)
	require.EqualValues(t, 1, inserted)

	count, err := pgSQL.BlacklistCount(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 3, count)

	hostnames, err := pgSQL.BlacklistHostnames(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"evil.example", "phish.example", "new.example"}, hostnames)
}

func TestPgSQL_AddBlacklistEntries_Batches(t *testing.T) {
	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)

	entries := make([]domain.BlacklistEntry, 0, 1200)
	for i := range 1200 {
		entries = append(entries, domain.BlacklistEntry{
			Hostname: fmt.Sprintf("host%d.example", i),
			Source:   "kisa",
		})
	}

	inserted, err := pgSQL.AddBlacklistEntries(context.Background(), entries...)
	require.NoError(t, err)
	require.EqualValues(t, 1200, inserted)
}

func TestPgSQL_DeleteBlacklistSource_WithinTx(t *testing.T) {
	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)

	ctx := context.Background()
	_, err := pgSQL.AddBlacklistEntries(ctx,
		domain.BlacklistEntry{Hostname: "old.example", Source: "kisa"},
		domain.BlacklistEntry{Hostname: "manual.example", Source: "manual"},
	)
	require.NoError(t, err)

	err = pgSQL.WithTx(ctx, func(s storage.AllStorage) error {
		deleted, err := s.DeleteBlacklistSource(ctx, "kisa")
		require.NoError(t, err)
		require.EqualValues(t, 1, deleted)

		_, err = s.AddBlacklistEntries(ctx, domain.BlacklistEntry{Hostname: "fresh.example", Source: "kisa"})

		return err
	})
	require.NoError(t, err)

	hostnames, err := pgSQL.BlacklistHostnames(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"manual.example", "fresh.example"}, hostnames)
}

func TestPgSQL_SyncState(t *testing.T) {
	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)

	ctx := context.Background()

	state, err := pgSQL.SyncState(ctx, "kisa")
	require.NoError(t, err)
	require.Nil(t, state)

	first := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, pgSQL.SaveSyncState(ctx, domain.SyncState{
		Source:     "kisa",
		Mode:       domain.SyncModeFull,
		TotalCount: 4200,
		LastPage:   5,
		LastSyncAt: first,
	}))

	second := first.Add(time.Hour)
	require.NoError(t, pgSQL.SaveSyncState(ctx, domain.SyncState{
		Source:     "kisa",
		Mode:       domain.SyncModeIncremental,
		TotalCount: 4300,
		LastPage:   5,
		LastSyncAt: second,
	}))

	state, err = pgSQL.SyncState(ctx, "kisa")
	require.NoError(t, err)
	require.NotNil(t, state)
	require.Equal(t, domain.SyncModeIncremental, state.Mode)
	require.Equal(t, 4300, state.TotalCount)
	require.True(t, second.Equal(state.LastSyncAt))
}
