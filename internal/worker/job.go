package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"

	"phishguard/pkg/domain"
	"phishguard/pkg/serrors"
	"phishguard/pkg/storage"
)

const (
	// DefaultMaxAttempts is the number of attempts of a sync job.
	DefaultMaxAttempts = 5
	// uniqueJobPeriod is the window in which an equal sync job is a duplicate.
	uniqueJobPeriod = time.Hour
)

// JobArgs contains the arguments for a blacklist sync job submitted to River.
// The mode is the unique key, so at most one full and one incremental sync
// are queued at a time.
type JobArgs struct {
	Mode domain.SyncMode `json:"mode" river:"unique"`

	maxAttempts int
}

// NewJobArgs validates mode and creates the arguments of a sync job.
func NewJobArgs(mode domain.SyncMode, maxAttempts int) (JobArgs, error) {
	switch mode {
	case domain.SyncModeFull, domain.SyncModeIncremental:
	default:
		return JobArgs{}, serrors.With(serrors.ErrBadRequest, "unknown sync mode %q", mode)
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	return JobArgs{Mode: mode, maxAttempts: maxAttempts}, nil
}

// Kind returns the River job kind used to register and dispatch the sync worker.
func (args JobArgs) Kind() string { return "BlacklistSyncJob" }

// InsertOpts returns the River options that control how the job is enqueued.
// Completed jobs are not part of the unique states so the periodic schedule
// keeps working.
func (args JobArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		MaxAttempts: args.maxAttempts,
		UniqueOpts: river.UniqueOpts{
			ByArgs:   true,
			ByPeriod: uniqueJobPeriod,
			ByState: []rivertype.JobState{
				rivertype.JobStateAvailable,
				rivertype.JobStatePending,
				rivertype.JobStateRunning,
				rivertype.JobStateRetryable,
				rivertype.JobStateScheduled,
			},
		},
	}
}

// Enqueue adds a sync job. It reports false when an equal job is already queued.
func Enqueue(ctx context.Context, jobs storage.JobStorage, mode domain.SyncMode, maxAttempts int) (bool, error) {
	args, err := NewJobArgs(mode, maxAttempts)
	if err != nil {
		return false, err
	}

	opts := args.InsertOpts()
	added, err := jobs.AddJob(ctx, args, &opts)
	if err != nil {
		return false, fmt.Errorf("could not enqueue blacklist sync: %w", err)
	}

	return added, nil
}
