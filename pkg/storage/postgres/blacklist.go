package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"phishguard/pkg/domain"
)

const (
	blacklistTable = "blacklist"
	syncStateTable = "blacklist_sync_state"

	// insertBatchSize bounds the number of rows of a single INSERT statement.
	insertBatchSize = 500
)

// BlacklistHostnames returns every stored hostname.
func (p *PgSQL) BlacklistHostnames(ctx context.Context) ([]string, error) {
	var hostnames []string
	if err := p.Builder.From(blacklistTable).
		Select("hostname").
		Executor().ScanValsContext(ctx, &hostnames); err != nil {
		return nil, fmt.Errorf("could not fetch blacklist from pg: %w", err)
	}

	return hostnames, nil
}

// BlacklistCount returns the number of stored hostnames.
func (p *PgSQL) BlacklistCount(ctx context.Context) (int64, error) {
	count, err := p.Builder.From(blacklistTable).CountContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not count blacklist in pg: %w", err)
	}

	return count, nil
}

// AddBlacklistEntries inserts entries in batches, skipping hostnames that are
// already stored. A zero AddedAt is replaced with the current time.
func (p *PgSQL) AddBlacklistEntries(ctx context.Context, entries ...domain.BlacklistEntry) (int64, error) {
	now := time.Now().UTC()
	rows := make([]PgBlacklistEntry, 0, len(entries))
	for _, e := range entries {
		if e.Hostname == "" {
			continue
		}
		addedAt := e.AddedAt
		if addedAt.IsZero() {
			addedAt = now
		}
		rows = append(rows, PgBlacklistEntry{Hostname: e.Hostname, Source: e.Source, AddedAt: addedAt})
	}

	var inserted int64
	for start := 0; start < len(rows); start += insertBatchSize {
		end := min(start+insertBatchSize, len(rows))
		res, err := p.Builder.Insert(blacklistTable).
			Rows(rows[start:end]).
			OnConflict(goqu.DoNothing()).
			Executor().ExecContext(ctx)
		if err != nil {
			return inserted, fmt.Errorf("could not insert blacklist entries into pg: %w", err)
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
func (p *PgSQL) DeleteBlacklistSource(ctx context.Context, source string) (int64, error) {
	res, err := p.Builder.Delete(blacklistTable).
		Where(goqu.I("source").Eq(source)).
		Executor().ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not delete blacklist source from pg: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("could not read affected rows: %w", err)
	}

	return n, nil
}

// SyncState returns the bookkeeping of source, or nil when it never ran.
func (p *PgSQL) SyncState(ctx context.Context, source string) (*domain.SyncState, error) {
	var row PgSyncState
	found, err := p.Builder.From(syncStateTable).
		Where(goqu.I("source").Eq(source)).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch sync state from pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// SaveSyncState upserts the bookkeeping of state.Source.
func (p *PgSQL) SaveSyncState(ctx context.Context, state domain.SyncState) error {
	row := PgSyncState{
		Source:     state.Source,
		Mode:       string(state.Mode),
		TotalCount: state.TotalCount,
		LastPage:   state.LastPage,
		LastSyncAt: state.LastSyncAt,
	}
	_, err := p.Builder.Insert(syncStateTable).
		Rows(row).
		OnConflict(goqu.DoUpdate("source", goqu.Record{
			"mode":         goqu.I("excluded.mode"),
			"total_count":  goqu.I("excluded.total_count"),
			"last_page":    goqu.I("excluded.last_page"),
			"last_sync_at": goqu.I("excluded.last_sync_at"),
		})).
		Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("could not save sync state into pg: %w", err)
	}

	return nil
}
