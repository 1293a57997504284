package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNotFound is returned when the addressed record does not exist, or
	// exists outside the requested parent scope.
	ErrNotFound = errors.New("record was not found")

	// ErrAlreadyExists is returned when an insert violates a uniqueness
	// constraint (e.g. a username that is already taken).
	ErrAlreadyExists = errors.New("record already exists")

	// ErrParentNotFound is returned when a write references a parent record
	// that does not exist (foreign-key violation).
	ErrParentNotFound = errors.New("parent record was not found")

	// ErrConflict is returned when a conditional write finds the record in a
	// state other than the one the caller expected, meaning a concurrent
	// writer changed it since it was read.
	ErrConflict = errors.New("record was modified concurrently")

	// ErrStoreUnavailable is returned for every failure of the storage
	// backend itself: timeouts, lost connections, unexpected driver errors.
	ErrStoreUnavailable = errors.New("store is unavailable")
)

// Low-level database operation errors. These are wrapped together with
// [ErrStoreUnavailable] by repository methods when a SQL-level operation
// fails before any domain logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a statement against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when multi-row iteration fails,
	// typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrUnsupportedDSN is returned by [NewDB] for a DSN no SQL backend
	// understands.
	ErrUnsupportedDSN = errors.New("unsupported database dsn")
)
