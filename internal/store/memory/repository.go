// Package memory provides mutex-guarded in-process implementations of the
// store contracts. They back the "memory://" DSN and deterministic tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/MKhiriev/go-bank-registry/internal/store"
)

// Schema tells a [Repository] how to read and write the bookkeeping fields
// of a record type T.
type Schema[T any] struct {
	ID         func(item T) int64
	SetID      func(item *T, id int64)
	Parent     func(item T) int64
	SetParent  func(item *T, parentID int64)
	CreatedAt  func(item T) time.Time
	Stamp      func(item *T, createdAt, updatedAt time.Time)
	HasParent  bool
	ParentName string
}

// Repository is the in-memory implementation of [store.Repository].
type Repository[T any] struct {
	mu     sync.RWMutex
	schema Schema[T]
	items  map[int64]T
	nextID int64

	// parentExists reports whether a parent record exists; nil for
	// top-level resources.
	parentExists func(id int64) bool
	// onDelete is invoked with the id of every removed record.
	onDelete func(id int64)
}

// NewRepository constructs an empty repository for schema.
func NewRepository[T any](schema Schema[T]) *Repository[T] {
	return &Repository[T]{
		schema: schema,
		items:  make(map[int64]T),
	}
}

// List implements [store.Repository].
func (r *Repository[T]) List(ctx context.Context, scope store.Scope) ([]T, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]T, 0, len(r.items))
	for _, item := range r.items {
		if r.inScope(item, scope) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return r.schema.ID(items[i]) < r.schema.ID(items[j])
	})

	return items, nil
}

// Get implements [store.Repository].
func (r *Repository[T]) Get(ctx context.Context, scope store.Scope, id int64) (T, error) {
	var zero T
	if err := alive(ctx); err != nil {
		return zero, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok || !r.inScope(item, scope) {
		return zero, store.ErrNotFound
	}

	return item, nil
}

// Create implements [store.Repository].
func (r *Repository[T]) Create(ctx context.Context, scope store.Scope, item T) (T, error) {
	var zero T
	if err := alive(ctx); err != nil {
		return zero, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// checked under the lock so that a concurrent parent delete, which
	// removes children afterwards, also removes this record
	if r.schema.HasParent {
		if r.parentExists != nil && !r.parentExists(scope.ParentID) {
			return zero, fmt.Errorf("%w: %s %d", store.ErrParentNotFound, r.schema.ParentName, scope.ParentID)
		}
		r.schema.SetParent(&item, scope.ParentID)
	}

	r.nextID++
	ts := time.Now().UTC()
	r.schema.SetID(&item, r.nextID)
	r.schema.Stamp(&item, ts, ts)
	r.items[r.nextID] = item

	return item, nil
}

// Update implements [store.Repository].
func (r *Repository[T]) Update(ctx context.Context, scope store.Scope, id int64, item T) (T, error) {
	var zero T
	if err := alive(ctx); err != nil {
		return zero, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[id]
	if !ok || !r.inScope(current, scope) {
		return zero, store.ErrNotFound
	}

	r.schema.SetID(&item, id)
	if r.schema.HasParent {
		r.schema.SetParent(&item, r.schema.Parent(current))
	}
	r.schema.Stamp(&item, r.schema.CreatedAt(current), time.Now().UTC())
	r.items[id] = item

	return item, nil
}

// Delete implements [store.Repository].
func (r *Repository[T]) Delete(ctx context.Context, scope store.Scope, id int64) error {
	if err := alive(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	item, ok := r.items[id]
	if !ok || !r.inScope(item, scope) {
		r.mu.Unlock()
		return store.ErrNotFound
	}
	delete(r.items, id)
	r.mu.Unlock()

	if r.onDelete != nil {
		r.onDelete(id)
	}

	return nil
}

// exists reports whether a record with id is stored.
func (r *Repository[T]) exists(id int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.items[id]
	return ok
}

// deleteChildren removes every record whose parent is parentID.
func (r *Repository[T]) deleteChildren(parentID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.items {
		if r.schema.Parent(item) == parentID {
			delete(r.items, id)
		}
	}
}

func (r *Repository[T]) inScope(item T, scope store.Scope) bool {
	if !r.schema.HasParent || scope.IsZero() {
		return true
	}

	return r.schema.Parent(item) == scope.ParentID
}

// alive fails fast when the caller has already given up.
func alive(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrStoreUnavailable, err)
	}

	return nil
}
