package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverdatabasesql"
	"github.com/riverqueue/river/rivertype"
	"go.uber.org/zap"

	"phishguard/pkg/logger"
)

// AddJob implements storage.JobStorage with an insert-only River client.
// Inside a transaction the job is inserted with it and only becomes visible,
// and workable, once the transaction commits.
func (p *PgSQL) AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error) {
	var (
		res *rivertype.JobInsertResult
		err error
	)
	switch db := p.DB.(type) {
	case *sql.Tx:
		res, err = insertJobTx(ctx, db, args, opts)
	case *sql.DB:
		res, err = insertJob(ctx, db, args, opts)
	default:
		return false, fmt.Errorf("could not insert job: unsupported executor %T", p.DB)
	}
	if err != nil {
		return false, fmt.Errorf("could not insert %s job: %w", args.Kind(), err)
	}

	if res.UniqueSkippedAsDuplicate {
		logger.Debug(ctx, "job already queued",
			zap.String("kind", args.Kind()), zap.Int64("jobID", res.Job.ID))

		return false, nil
	}

	return true, nil
}

func insertJobTx(ctx context.Context, tx *sql.Tx, args river.JobArgs, opts *river.InsertOpts) (*rivertype.JobInsertResult, error) {
	client, err := river.NewClient[*sql.Tx](riverdatabasesql.New(nil), &river.Config{})
	if err != nil {
		return nil, fmt.Errorf("could not create river queue client: %w", err)
	}

	return client.InsertTx(ctx, tx, args, opts) //nolint: wrapcheck
}

func insertJob(ctx context.Context, db *sql.DB, args river.JobArgs, opts *river.InsertOpts) (*rivertype.JobInsertResult, error) {
	client, err := river.NewClient(riverdatabasesql.New(db), &river.Config{})
	if err != nil {
		return nil, fmt.Errorf("could not create river queue client: %w", err)
	}

	return client.Insert(ctx, args, opts) //nolint: wrapcheck
}
