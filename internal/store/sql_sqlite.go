package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-bank-registry/internal/config"
	"github.com/MKhiriev/go-bank-registry/internal/logger"
)

const sqliteScheme = "sqlite3://"

// sqliteDefaults are appended to a SQLite DSN unless it sets them itself.
// Writers take the database lock at BEGIN so that a transaction never has
// to upgrade a read lock, and wait for it instead of failing with SQLITE_BUSY.
var sqliteDefaults = [][2]string{
	{"_foreign_keys", "on"},
	{"_busy_timeout", "5000"},
	{"_txlock", "immediate"},
}

// NewConnectSQLite opens a SQLite database selected by "sqlite3://<path>"
// or "file:<path>" and pings it. The file is created if it does not exist.
func NewConnectSQLite(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open("sqlite3", sqliteDSN(cfg.DSN))
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)

	// ping database
	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		_ = conn.Close()
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	log.Info().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	return NewDBFromConn(conn, DialectSQLite, cfg.QueryTimeout, log), nil
}

func isSQLiteDSN(dsn string) bool {
	return strings.HasPrefix(dsn, sqliteScheme) || strings.HasPrefix(dsn, "file:")
}

// sqliteDSN turns a configured DSN into the "file:" URI understood by
// go-sqlite3 and adds the connection defaults.
func sqliteDSN(dsn string) string {
	if rest, ok := strings.CutPrefix(dsn, sqliteScheme); ok {
		dsn = "file:" + rest
	}

	path, rawQuery, _ := strings.Cut(dsn, "?")
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return dsn
	}

	for _, kv := range sqliteDefaults {
		if !query.Has(kv[0]) {
			query.Set(kv[0], kv[1])
		}
	}

	return path + "?" + query.Encode()
}
