package storage

import (
	"context"

	"phishguard/pkg/domain"
)

// BlacklistStorage persists reported phishing hostnames and the bookkeeping of
// the feed synchronization. Hostnames are stored as given, so callers
// normalize them first (the KISA client lower-cases them). A hostname is
// unique across sources: the first source to report it keeps it.
//
// The blacklist detector loads the whole set into memory through
// BlacklistHostnames and reloads it after every sync; the sync worker and the
// `blacklist import` command are the only writers.
type BlacklistStorage interface {
	// BlacklistHostnames returns every stored hostname, in no particular
	// order. An empty store yields an empty slice and a nil error.
	BlacklistHostnames(ctx context.Context) ([]string, error)
	// BlacklistCount returns the number of stored hostnames across all
	// sources. It backs the total recorded in the sync state.
	BlacklistCount(ctx context.Context) (int64, error)
	// AddBlacklistEntries inserts entries and returns how many rows were
	// actually inserted. Hostnames that are already stored are skipped
	// without error, which makes incremental syncs and repeated imports
	// idempotent. Entries with an empty hostname are dropped and a zero
	// AddedAt is replaced with the current time.
	AddBlacklistEntries(ctx context.Context, entries ...domain.BlacklistEntry) (int64, error)
	// DeleteBlacklistSource removes every hostname reported by source and
	// returns how many rows were removed. A full sync calls it and then
	// re-inserts the feed inside the same transaction, so readers never see
	// a half-replaced set.
	DeleteBlacklistSource(ctx context.Context, source string) (int64, error)
	// SyncState returns the bookkeeping of the last sync of source (time,
	// mode, feed total and the last page fetched), or nil with a nil error if
	// the source was never synced.
	SyncState(ctx context.Context, source string) (*domain.SyncState, error)
	// SaveSyncState creates or replaces the bookkeeping of state.Source. A full
	// sync saves it in the same transaction as the rows it describes; an
	// incremental sync saves it after merging.
	SaveSyncState(ctx context.Context, state domain.SyncState) error
}
