package store

import (
	"context"

	"github.com/MKhiriev/go-bank-registry/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// Scope restricts a [Repository] call to the children of one parent record.
// The zero Scope means "no parent": it is used by top-level resources and
// ignored by repositories without a parent column.
type Scope struct {
	ParentID int64
}

// InParent returns a Scope limited to the children of parentID.
func InParent(parentID int64) Scope {
	return Scope{ParentID: parentID}
}

// IsZero reports whether s carries no parent filter.
func (s Scope) IsZero() bool {
	return s.ParentID == 0
}

// Repository is the keyed CRUD contract shared by every plain resource
// (banks, agencies). T is the record type.
//
// Errors: [ErrNotFound] when the id does not exist within scope,
// [ErrParentNotFound] when a write references a missing parent,
// [ErrStoreUnavailable] for backend failures.
type Repository[T any] interface {
	List(ctx context.Context, scope Scope) ([]T, error)
	Get(ctx context.Context, scope Scope, id int64) (T, error)
	Create(ctx context.Context, scope Scope, item T) (T, error)
	Update(ctx context.Context, scope Scope, id int64, item T) (T, error)
	Delete(ctx context.Context, scope Scope, id int64) error
}

// AccountRepository persists user accounts.
type AccountRepository interface {
	// List returns every account ordered by id.
	List(ctx context.Context) ([]models.Account, error)
	// GetByID returns the account with the given id or [ErrNotFound].
	GetByID(ctx context.Context, id int64) (models.Account, error)
	// FindByUsername returns the account with the given username or
	// [ErrNotFound].
	FindByUsername(ctx context.Context, username string) (models.Account, error)
	// Insert persists a new account and returns it with the id and
	// timestamps assigned. A taken username yields [ErrAlreadyExists].
	Insert(ctx context.Context, account models.Account) (models.Account, error)
	// UpdatePasswordHash atomically replaces the password hash of username
	// with newHash, provided the stored hash still equals expectedOldHash,
	// and bumps updated_at. It returns [ErrNotFound] if the account does
	// not exist and [ErrConflict] if the stored hash differs.
	UpdatePasswordHash(ctx context.Context, username, expectedOldHash, newHash string) (models.Account, error)
}

// HealthChecker reports whether the backend is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
