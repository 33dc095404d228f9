package worker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"phishguard/internal/worker"
	"phishguard/pkg/domain"
	"phishguard/pkg/kisa"
	"phishguard/pkg/serrors"
	mockstorage "phishguard/pkg/storage/mock"
)

type syncFunc func(ctx context.Context, mode domain.SyncMode) (*worker.SyncResult, error)

func (f syncFunc) Sync(ctx context.Context, mode domain.SyncMode) (*worker.SyncResult, error) {
	return f(ctx, mode)
}

func makeJob(id int64, mode domain.SyncMode) *river.Job[worker.JobArgs] {
	return &river.Job[worker.JobArgs]{
		JobRow: &rivertype.JobRow{ID: id},
		Args:   worker.JobArgs{Mode: mode},
	}
}

func TestBlacklistSyncWorker_Work(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCancel bool
		wantSnooze bool
	}{
		{name: "success"},
		{name: "rate limited", err: serrors.With(serrors.ErrRateLimited, "429"), wantSnooze: true},
		{name: "key rejected", err: serrors.With(serrors.ErrUnauthorized, "403"), wantCancel: true},
		{name: "no key", err: kisa.ErrNoServiceKey, wantCancel: true},
		{name: "transient", err: errors.New("connection reset")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotMode domain.SyncMode
			w := worker.NewBlacklistSyncWorker(syncFunc(func(_ context.Context, mode domain.SyncMode) (*worker.SyncResult, error) {
				gotMode = mode
				if tt.err != nil {
					return nil, tt.err
				}

				return &worker.SyncResult{Mode: mode}, nil
			}), 0)

			err := w.Work(context.Background(), makeJob(7, domain.SyncModeFull))
			require.Equal(t, domain.SyncModeFull, gotMode)
			if tt.err == nil {
				require.NoError(t, err)

				return
			}
			require.Error(t, err)

			var cancelErr *river.JobCancelError
			require.Equal(t, tt.wantCancel, errors.As(err, &cancelErr))

			var snoozeErr *river.JobSnoozeError
			require.Equal(t, tt.wantSnooze, errors.As(err, &snoozeErr))
			if tt.wantSnooze {
				require.Equal(t, worker.RateLimitSnooze, snoozeErr.Duration)
			}
		})
	}
}

func TestBlacklistSyncWorker_Timeout(t *testing.T) {
	w := worker.NewBlacklistSyncWorker(nil, 0)
	require.Equal(t, worker.DefaultJobTimeout, w.Timeout(makeJob(1, domain.SyncModeFull)))

	w = worker.NewBlacklistSyncWorker(nil, time.Minute)
	require.Equal(t, time.Minute, w.Timeout(makeJob(1, domain.SyncModeFull)))
}

func TestEnqueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	jobs := mockstorage.NewMockAllStorage(ctrl)

	jobs.EXPECT().AddJob(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error) {
			require.Equal(t, "BlacklistSyncJob", args.Kind())
			require.Equal(t, domain.SyncModeIncremental, args.(worker.JobArgs).Mode)
			require.Equal(t, 3, opts.MaxAttempts)
			require.True(t, opts.UniqueOpts.ByArgs)
			require.NotContains(t, opts.UniqueOpts.ByState, rivertype.JobStateCompleted)

			return true, nil
		})

	added, err := worker.Enqueue(context.Background(), jobs, domain.SyncModeIncremental, 3)
	require.NoError(t, err)
	require.True(t, added)

	_, err = worker.Enqueue(context.Background(), jobs, "hourly", 3)
	require.ErrorIs(t, err, serrors.ErrBadRequest)
}

func TestPeriodicJobs(t *testing.T) {
	require.Empty(t, worker.PeriodicJobs(worker.Options{SyncInterval: time.Hour}))
	require.Empty(t, worker.PeriodicJobs(worker.Options{Periodic: true}))
	require.Len(t, worker.PeriodicJobs(worker.Options{Periodic: true, SyncInterval: time.Hour}), 1)
}
