package store

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-bank-registry/models"
)

// RowScanner is implemented by *sql.Row and *sql.Rows.
type RowScanner interface {
	Scan(dest ...any) error
}

// Table describes how a record type T maps onto a SQL table. It is all the
// generic [Repository] implementation needs to know about a resource.
type Table[T any] struct {
	// Name is the table name.
	Name string
	// Columns is the full column list read by SELECT and RETURNING, in the
	// order Scan expects them.
	Columns []string
	// Writable lists the columns written on create and update, in the
	// order Values returns them. It excludes id, the parent column and the
	// timestamps.
	Writable []string
	// ParentColumn is the foreign key used by [Scope]; empty for top-level
	// resources.
	ParentColumn string
	// Scan reads one row into a T.
	Scan func(row RowScanner) (T, error)
	// Values returns the Writable column values of a T.
	Values func(item T) []any
}

// BankTable maps [models.Bank] onto the "banks" table.
var BankTable = Table[models.Bank]{
	Name:     models.Bank{}.TableName(),
	Columns:  []string{"id", "code", "name", "created_at", "updated_at"},
	Writable: []string{"code", "name"},
	Scan: func(row RowScanner) (models.Bank, error) {
		var b models.Bank
		err := row.Scan(&b.ID, &b.Code, &b.Name, timestamp(&b.CreatedAt), timestamp(&b.UpdatedAt))
		return b, err
	},
	Values: func(b models.Bank) []any {
		return []any{b.Code, b.Name}
	},
}

// AgencyTable maps [models.Agency] onto the "agencies" table, scoped by
// bank_id.
var AgencyTable = Table[models.Agency]{
	Name:         models.Agency{}.TableName(),
	Columns:      []string{"id", "code", "name", "bank_id", "created_at", "updated_at"},
	Writable:     []string{"code", "name"},
	ParentColumn: "bank_id",
	Scan: func(row RowScanner) (models.Agency, error) {
		var a models.Agency
		err := row.Scan(&a.ID, &a.Code, &a.Name, &a.BankID, timestamp(&a.CreatedAt), timestamp(&a.UpdatedAt))
		return a, err
	},
	Values: func(a models.Agency) []any {
		return []any{a.Code, a.Name}
	},
}

// accountColumns is the column list of the "users" table.
var accountColumns = []string{"id", "username", "password_hash", "is_admin", "is_active", "created_at", "updated_at"}

func scanAccount(row RowScanner) (models.Account, error) {
	var a models.Account
	err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.IsAdmin, &a.IsActive, timestamp(&a.CreatedAt), timestamp(&a.UpdatedAt))
	return a, err
}

// timestampLayouts are the text forms SQLite hands back for timestamp
// columns it could not convert itself.
var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
}

type timestampScanner struct {
	dst *time.Time
}

// timestamp returns a sql.Scanner writing into dst that accepts both native
// time values and their text encodings.
func timestamp(dst *time.Time) *timestampScanner {
	return &timestampScanner{dst: dst}
}

func (s *timestampScanner) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*s.dst = v.UTC()
		return nil
	case string:
		return s.parse(v)
	case []byte:
		return s.parse(string(v))
	case nil:
		*s.dst = time.Time{}
		return nil
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
}

func (s *timestampScanner) parse(v string) error {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			*s.dst = t.UTC()
			return nil
		}
	}

	return fmt.Errorf("unsupported timestamp format %q", v)
}
