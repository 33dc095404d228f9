package storage

import (
	"errors"

	"phishguard/pkg/serrors"
)

var (
	// ErrAlreadyInTx is returned by Begin and Close on a transactional handle.
	ErrAlreadyInTx = errors.New("storage handle is already bound to a transaction")
	// ErrNotInTx is returned by Commit and Rollback outside a transaction.
	ErrNotInTx = errors.New("storage handle is not bound to a transaction")
	// ErrJobsUnsupported is returned by backends without a job queue. It maps
	// to 503 at the API.
	ErrJobsUnsupported = serrors.With(serrors.ErrUnavailable, "background jobs are not supported by this storage")
)
