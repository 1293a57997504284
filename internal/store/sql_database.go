// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-bank-registry/internal/config"
	"github.com/MKhiriev/go-bank-registry/internal/logger"
	"github.com/MKhiriev/go-bank-registry/migrations"
)

// Dialect names the SQL backend behind a [DB].
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite3"
)

// MemoryDSN selects the in-process store instead of a SQL backend.
const MemoryDSN = "memory://"

// DB is the connection pool shared by all SQL repositories. It is
// constructed once at startup and passed explicitly to every repository.
type DB struct {
	*sql.DB
	dialect            Dialect
	queryTimeout       time.Duration
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewDB opens the SQL backend selected by cfg.DSN:
//   - "sqlite3://<path>" or "file:<path>" → SQLite;
//   - anything else → PostgreSQL through the pgx driver.
//
// [MemoryDSN] is rejected with [ErrUnsupportedDSN]; callers wanting the
// in-process store construct it directly.
func NewDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch {
	case IsMemoryDSN(cfg.DSN):
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDSN, cfg.DSN)
	case isSQLiteDSN(cfg.DSN):
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return NewConnectPostgres(ctx, cfg, log)
	}
}

// NewDBFromConn wraps an already opened pool. It is used by tests and by
// callers that manage the *sql.DB lifecycle themselves.
func NewDBFromConn(conn *sql.DB, dialect Dialect, queryTimeout time.Duration, log *logger.Logger) *DB {
	db := &DB{
		DB:           conn,
		dialect:      dialect,
		queryTimeout: queryTimeout,
		logger:       log,
	}

	switch dialect {
	case DialectSQLite:
		db.errorClassificator = NewSQLiteErrorClassifier()
	default:
		db.errorClassificator = NewPostgresErrorClassifier()
	}

	return db
}

// IsMemoryDSN reports whether dsn selects the in-process store.
func IsMemoryDSN(dsn string) bool {
	return strings.HasPrefix(dsn, MemoryDSN)
}

// Dialect returns the SQL backend of db.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Migrate applies the embedded schema migrations of the db dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, string(db.dialect))
}

// Ping implements [HealthChecker].
func (db *DB) Ping(ctx context.Context) error {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return nil
}

// withTimeout bounds a single store call by the configured query timeout.
func (db *DB) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if db.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, db.queryTimeout)
}

// statement returns a squirrel builder using the placeholder format of the
// db dialect.
func (db *DB) statement() sq.StatementBuilderType {
	if db.dialect == DialectSQLite {
		return sq.StatementBuilder.PlaceholderFormat(sq.Question)
	}

	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// translate maps a driver level error onto the store sentinels.
func (db *DB) translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return ErrNotFound
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	switch db.errorClassificator.Violation(err) {
	case UniqueViolation:
		return fmt.Errorf("%w: %w", ErrAlreadyExists, err)
	case ForeignKeyViolation:
		return fmt.Errorf("%w: %w", ErrParentNotFound, err)
	}

	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}

// retryable reports whether the classifier deems err transient. It only
// feeds logs: retry policy belongs to callers.
func (db *DB) retryable(err error) bool {
	return db.errorClassificator.Classify(err) == Retryable
}

// now is the timestamp written to created_at / updated_at columns.
func now() time.Time {
	return time.Now().UTC()
}
