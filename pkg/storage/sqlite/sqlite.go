// Package sqlite implements the storage ports on an embedded SQLite database.
// It serves single-node deployments and the command line tools; background
// jobs are not supported and AddJob always fails with
// storage.ErrJobsUnsupported.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/riverqueue/river"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"phishguard"
	"phishguard/pkg/logger"
	"phishguard/pkg/storage"
)

const dialect = "sqlite3"

// Options configures the SQLite storage.
type Options struct {
	// Path is the database file. ":memory:" opens a private in-memory database.
	Path string
	// EnableWAL switches the journal to write-ahead logging.
	EnableWAL bool
	// Migrate applies the embedded migrations after opening.
	Migrate bool
}

// DB is the subset of database/sql shared by *sql.DB and *sql.Tx.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Builder is the subset of goqu used to build queries bound to DB.
type Builder interface {
	From(table ...interface{}) *goqu.SelectDataset
	Insert(table interface{}) *goqu.InsertDataset
	Update(table interface{}) *goqu.UpdateDataset
	Delete(table interface{}) *goqu.DeleteDataset
}

// SQLite implements storage.Storage on a SQLite database.
type SQLite struct {
	DB      DB
	Builder Builder
}

var _ storage.Storage = (*SQLite)(nil)

// New opens (creating when needed) the database at options.Path.
func New(ctx context.Context, options Options) (*SQLite, error) {
	dsn := options.Path
	if dsn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o750); err != nil {
			return nil, fmt.Errorf("could not create database directory: %w", err)
		}
		dsn += "?mode=rwc&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open sqlite database: %w", err)
	}
	// a single connection serializes writers and keeps :memory: databases alive
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if options.EnableWAL && options.Path != ":memory:" {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()

			return nil, fmt.Errorf("could not enable wal: %w", err)
		}
	}

	if options.Migrate {
		if err := Migrate(ctx, db); err != nil {
			_ = db.Close()

			return nil, err
		}
	}

	return &SQLite{
		DB:      db,
		Builder: goqu.Dialect(dialect).DB(db),
	}, nil
}

// Migrate applies the embedded SQLite migrations to db.
func Migrate(ctx context.Context, db *sql.DB) error {
	fsys, err := fs.Sub(phishguard.Migrations, phishguard.SQLiteMigrationsDir)
	if err != nil {
		return fmt.Errorf("could not open sqlite migrations: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return fmt.Errorf("could not create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("could not run sqlite migrations: %w", err)
	}
	for _, r := range results {
		logger.Get(ctx).Debug("applied migration",
			zap.String("migration", r.Source.Path), zap.Duration("duration", r.Duration))
	}

	return nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	db, ok := s.DB.(*sql.DB)
	if !ok {
		return storage.ErrAlreadyInTx
	}

	if err := db.Close(); err != nil {
		return fmt.Errorf("could not close sqlite database: %w", err)
	}

	return nil
}

// Commit commits the current transaction.
func (s *SQLite) Commit() error {
	tx, ok := s.DB.(*sql.Tx)
	if !ok {
		return storage.ErrNotInTx
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit tx: %w", err)
	}

	return nil
}

// Rollback aborts the current transaction.
func (s *SQLite) Rollback() error {
	tx, ok := s.DB.(*sql.Tx)
	if !ok {
		return storage.ErrNotInTx
	}

	if err := tx.Rollback(); err != nil {
		return fmt.Errorf("could not rollback tx: %w", err)
	}

	return nil
}

// Begin starts a transaction.
func (s *SQLite) Begin(ctx context.Context) (storage.TxStorage, error) {
	db, ok := s.DB.(*sql.DB)
	if !ok {
		return nil, storage.ErrAlreadyInTx
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin tx: %w", err)
	}

	return &SQLite{
		DB:      tx,
		Builder: goqu.NewTx(dialect, tx),
	}, nil
}

// WithTx runs cb inside a transaction, committing when it returns nil.
func (s *SQLite) WithTx(ctx context.Context, cb func(storage storage.AllStorage) error) error {
	tx, err := s.Begin(ctx)
	if err != nil {
		return err
	}

	if err := cb(tx); err != nil {
		_ = tx.Rollback()

		return err
	}

	return tx.Commit()
}

// AddJob always fails: SQLite has no job queue driver.
func (s *SQLite) AddJob(_ context.Context, _ river.JobArgs, _ *river.InsertOpts) (bool, error) {
	return false, storage.ErrJobsUnsupported
}

func utc(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}

	return t.UTC()
}
