package sqlite

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"phishguard/pkg/domain"
)

const (
	blacklistTable = "blacklist"
	syncStateTable = "blacklist_sync_state"

	// SQLite caps bound parameters per statement; three columns per row.
	insertBatchSize = 300
)

// BlacklistHostnames returns every stored hostname.
func (s *SQLite) BlacklistHostnames(ctx context.Context) ([]string, error) {
	var hostnames []string
	if err := s.Builder.From(blacklistTable).
		Select("hostname").
		Executor().ScanValsContext(ctx, &hostnames); err != nil {
		return nil, fmt.Errorf("could not fetch blacklist from sqlite: %w", err)
	}

	return hostnames, nil
}

// BlacklistCount returns the number of stored hostnames.
func (s *SQLite) BlacklistCount(ctx context.Context) (int64, error) {
	count, err := s.Builder.From(blacklistTable).CountContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not count blacklist in sqlite: %w", err)
	}

	return count, nil
}

// AddBlacklistEntries inserts entries in batches, ignoring known hostnames.
func (s *SQLite) AddBlacklistEntries(ctx context.Context, entries ...domain.BlacklistEntry) (int64, error) {
	rows := make([]blacklistRow, 0, len(entries))
	for _, e := range entries {
		if e.Hostname == "" {
			continue
		}
		rows = append(rows, blacklistRow{Hostname: e.Hostname, Source: e.Source, AddedAt: utc(e.AddedAt)})
	}

	var inserted int64
	for start := 0; start < len(rows); start += insertBatchSize {
		end := min(start+insertBatchSize, len(rows))
		res, err := s.Builder.Insert(blacklistTable).
			Prepared(true).
			Rows(rows[start:end]).
			OnConflict(goqu.DoNothing()).
			Executor().ExecContext(ctx)
		if err != nil {
			return inserted, fmt.Errorf("could not insert blacklist entries into sqlite: %w", err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return inserted, fmt.Errorf("could not read affected rows: %w", err)
		}
		inserted += n
	}

	return inserted, nil
}

// DeleteBlacklistSource removes every hostname reported by source.
func (s *SQLite) DeleteBlacklistSource(ctx context.Context, source string) (int64, error) {
	res, err := s.Builder.Delete(blacklistTable).
		Prepared(true).
		Where(goqu.I("source").Eq(source)).
		Executor().ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not delete blacklist source from sqlite: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("could not read affected rows: %w", err)
	}

	return n, nil
}

// SyncState returns the bookkeeping of source, or nil when it never ran.
func (s *SQLite) SyncState(ctx context.Context, source string) (*domain.SyncState, error) {
	var row syncStateRow
	found, err := s.Builder.From(syncStateTable).
		Prepared(true).
		Where(goqu.I("source").Eq(source)).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch sync state from sqlite: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &domain.SyncState{
		Source:     row.Source,
		Mode:       domain.SyncMode(row.Mode),
		TotalCount: row.TotalCount,
		LastPage:   row.LastPage,
		LastSyncAt: row.LastSyncAt,
	}, nil
}

// SaveSyncState updates the bookkeeping of state.Source, inserting it when
// no row exists yet.
func (s *SQLite) SaveSyncState(ctx context.Context, state domain.SyncState) error {
	row := syncStateRow{
		Source:     state.Source,
		Mode:       string(state.Mode),
		TotalCount: state.TotalCount,
		LastPage:   state.LastPage,
		LastSyncAt: utc(state.LastSyncAt),
	}

	res, err := s.Builder.Update(syncStateTable).
		Prepared(true).
		Set(row).
		Where(goqu.I("source").Eq(state.Source)).
		Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("could not update sync state in sqlite: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}

	if _, err := s.Builder.Insert(syncStateTable).
		Prepared(true).
		Rows(row).
		Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("could not insert sync state into sqlite: %w", err)
	}

	return nil
}
