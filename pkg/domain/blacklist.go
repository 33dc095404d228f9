package domain

import "time"

// SyncMode selects how the blacklist feed is synchronized.
type SyncMode string

const (
	// SyncModeFull walks every page of the feed and replaces the stored set.
	SyncModeFull SyncMode = "full"
	// SyncModeIncremental fetches the newest pages and merges them.
	SyncModeIncremental SyncMode = "incremental"
)

// BlacklistEntry is a hostname reported by an external registry.
type BlacklistEntry struct {
	Hostname string
	Source   string
	AddedAt  time.Time
}

// SyncState is the persisted bookkeeping of the last feed synchronization.
type SyncState struct {
	Source     string
	Mode       SyncMode
	TotalCount int
	LastPage   int
	LastSyncAt time.Time
}
