// Package storage defines the persistence ports of the service: the phishing
// blacklist and its synchronization state, analysis records and background
// jobs. Backends (PostgreSQL, SQLite) live in sub-packages.
//
//go:generate mockgen -package mockstorage -source=interface.go -destination=mock/mockstorage.go *
package storage

import "context"

// AllStorage is a composite interface of every domain-specific capability the
// application needs from a backend: the phishing blacklist and its sync state,
// persisted analyses and background jobs. Both the root handle (Storage) and a
// transactional handle (TxStorage) implement it, so code written against
// AllStorage runs unchanged inside or outside a transaction.
type AllStorage interface {
	BlacklistStorage
	AnalysisStorage
	JobStorage
}

// TxStorage is a storage handle bound to one database transaction. It exposes
// the same capabilities as AllStorage; nothing it writes is visible to other
// handles until Commit succeeds. Implementations become unusable after Commit
// or Rollback, and calling either on a handle that is not in a transaction
// returns ErrNotInTx.
type TxStorage interface {
	AllStorage

	// Commit persists every change made through the handle. The handle must
	// not be used afterwards, whatever the outcome.
	Commit() error
	// Rollback discards every change made through the handle. Calling it after
	// a failed Commit is harmless.
	Rollback() error
}

// Storage is the root, non-transactional handle of a backend. It owns the
// underlying connections and hands out transactional handles.
//
// A backend constructor returns a Storage ready for use; migrations are
// applied separately (PgSQL.Migrate) or on open (SQLite with Migrate set).
type Storage interface {
	AllStorage

	// Begin starts a new transaction and returns a TxStorage bound to it. It
	// returns ErrAlreadyInTx when called on a transactional handle; nested
	// transactions are not supported.
	Begin(ctx context.Context) (TxStorage, error)
	// WithTx begins a transaction, invokes cb with the transactional handle,
	// commits when cb returns nil and rolls back otherwise. The error of cb is
	// returned unchanged so callers can match it with errors.Is. The full
	// blacklist sync relies on this to replace a source atomically.
	WithTx(ctx context.Context, cb func(s AllStorage) error) error
	// Close releases the connections held by the backend (the pgx pool and
	// its database/sql wrapper, or the SQLite file handle). The instance must
	// not be used after Close.
	Close() error
}
