package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riverqueue/river"
	"go.uber.org/zap"

	"phishguard/pkg/domain"
	"phishguard/pkg/logger"
	"phishguard/pkg/serrors"
)

const (
	// DefaultJobTimeout bounds a single sync job. A full sync reads every
	// feed page with a delay in between.
	DefaultJobTimeout = 30 * time.Minute
	// RateLimitSnooze is how long a rate limited sync waits before it runs again.
	RateLimitSnooze = 10 * time.Minute
)

// SyncRunner runs a blacklist synchronization.
type SyncRunner interface {
	Sync(ctx context.Context, mode domain.SyncMode) (*SyncResult, error)
}

// BlacklistSyncWorker is a River worker that copies the phishing feed into
// blacklist storage.
//
// A rate limited feed snoozes the job for RateLimitSnooze. A rejected or
// missing service key cancels it, since retrying cannot succeed. Other errors
// are returned and retried by River.
type BlacklistSyncWorker struct {
	river.WorkerDefaults[JobArgs]

	syncer  SyncRunner
	timeout time.Duration
}

// NewBlacklistSyncWorker constructs a BlacklistSyncWorker using the provided syncer.
func NewBlacklistSyncWorker(syncer SyncRunner, timeout time.Duration) *BlacklistSyncWorker {
	if timeout <= 0 {
		timeout = DefaultJobTimeout
	}

	return &BlacklistSyncWorker{syncer: syncer, timeout: timeout}
}

// Timeout overrides the River default job timeout.
func (w *BlacklistSyncWorker) Timeout(*river.Job[JobArgs]) time.Duration { return w.timeout }

// Work executes a single sync job and maps errors to River actions.
func (w *BlacklistSyncWorker) Work(ctx context.Context, job *river.Job[JobArgs]) error {
	ctx = logger.WithFields(ctx, zap.Int64("jobID", job.ID), zap.String("mode", string(job.Args.Mode)))

	if _, err := w.syncer.Sync(ctx, job.Args.Mode); err != nil {
		switch {
		case serrors.Permanent(err), errors.Is(err, serrors.ErrUnavailable):
			logger.Warn(ctx, "blacklist sync canceled", zap.Error(err))

			return river.JobCancel(err) //nolint: wrapcheck
		case errors.Is(err, serrors.ErrRateLimited):
			logger.Warn(ctx, "blacklist feed rate limited", zap.Duration("snooze", RateLimitSnooze))

			return river.JobSnooze(RateLimitSnooze) //nolint: wrapcheck
		}

		logger.Error(ctx, "error in blacklist sync", zap.Error(err))

		return fmt.Errorf("could not sync blacklist: %w", err)
	}

	return nil
}
