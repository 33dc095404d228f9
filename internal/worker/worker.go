// Package worker runs the background jobs of the service on River: the
// blacklist feed synchronization, on demand and on a periodic schedule.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"go.uber.org/zap/exp/zapslog"

	"phishguard/internal/config"
	"phishguard/pkg/domain"
	"phishguard/pkg/logger"
)

// Options configure the job runner.
type Options struct {
	MaxWorkers   int
	MaxAttempts  int
	SyncInterval time.Duration
	// Periodic enables the incremental sync schedule.
	Periodic bool
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		MaxWorkers:   cfg.Worker.MaxWorkers,
		MaxAttempts:  cfg.Worker.MaxAttempts,
		SyncInterval: cfg.Blacklist.SyncInterval,
		Periodic:     cfg.Blacklist.KisaServiceKey != "",
	}
}

// PeriodicJobs returns the scheduled jobs of the runner.
func PeriodicJobs(options Options) []*river.PeriodicJob {
	if !options.Periodic || options.SyncInterval <= 0 {
		return nil
	}

	return []*river.PeriodicJob{
		river.NewPeriodicJob(
			river.PeriodicInterval(options.SyncInterval),
			func() (river.JobArgs, *river.InsertOpts) {
				args := JobArgs{Mode: domain.SyncModeIncremental, maxAttempts: options.MaxAttempts}
				opts := args.InsertOpts()

				return args, &opts
			},
			&river.PeriodicJobOpts{RunOnStart: true},
		),
	}
}

// Start creates and starts a River client processing sync jobs.
func Start(ctx context.Context, dbPool *pgxpool.Pool, syncer SyncRunner, options Options) (*river.Client[pgx.Tx], error) {
	maxWorkers := options.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 1
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewBlacklistSyncWorker(syncer, DefaultJobTimeout))

	riverClient, err := river.NewClient(riverpgxv5.New(dbPool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: maxWorkers},
		},
		Workers:      workers,
		PeriodicJobs: PeriodicJobs(options),
		Logger:       slog.New(zapslog.NewHandler(logger.Get(ctx).Core())),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create river queue client: %w", err)
	}

	if err := riverClient.Start(ctx); err != nil {
		return nil, fmt.Errorf("could not start river queue client: %w", err)
	}

	return riverClient, nil
}
