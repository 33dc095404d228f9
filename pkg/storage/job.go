package storage

import (
	"context"

	"github.com/riverqueue/river"
)

// JobStorage enqueues background jobs on the backend's river queue. The only
// job the service enqueues today is the blacklist sync (worker.JobArgs), which
// the API queues for POST /v1/blacklist/sync and the periodic schedule inserts
// on its own.
//
// args carries the job payload and its Kind; opts can override the queue,
// MaxAttempts and the uniqueness rules. Callers that need a job to be
// enqueued only if their other writes succeed call AddJob on the TxStorage of
// a WithTx callback: the job becomes visible to workers when the transaction
// commits and disappears with it on rollback.
//
// Backends without a job queue (SQLite) return ErrJobsUnsupported, and the
// serve command does not hand them to the API as its job store.
type JobStorage interface {
	// AddJob inserts a job. It returns true when a row was inserted and false,
	// with a nil error, when opts.UniqueOpts matched an existing job, so a
	// second sync request while one is queued is not an error. Any other
	// failure to insert is returned as an error.
	AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error)
}
