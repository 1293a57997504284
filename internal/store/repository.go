// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-bank-registry/internal/logger"
)

// sqlRepository is the database/sql implementation of [Repository] for any
// record type described by a [Table].
//
// Every method runs under the query timeout of the shared [DB] and obtains
// a context-scoped logger via [logger.FromContext].
type sqlRepository[T any] struct {
	db    *DB
	table Table[T]
}

// NewRepository constructs a [Repository] for table on db.
func NewRepository[T any](db *DB, table Table[T]) Repository[T] {
	return &sqlRepository[T]{
		db:    db,
		table: table,
	}
}

// List returns every record within scope ordered by id.
func (r *sqlRepository[T]) List(ctx context.Context, scope Scope) ([]T, error) {
	log := logger.FromContext(ctx)

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query, args, err := r.scoped(r.db.statement().Select(r.table.Columns...).From(r.table.Name), scope).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", r.fn("List")).
			Bool("retryable", r.db.retryable(err)).
			Msg("failed to execute list query")
		return nil, r.db.translate(fmt.Errorf("%w: %w", ErrExecutingQuery, err))
	}
	defer rows.Close()

	items := make([]T, 0, 16)
	for rows.Next() {
		item, scanErr := r.table.Scan(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", r.fn("List")).Msg("failed to scan row")
			return nil, fmt.Errorf("%w: %w: %w", ErrStoreUnavailable, ErrScanningRow, scanErr)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", r.fn("List")).Msg("error occurred during rows iteration")
		return nil, r.db.translate(fmt.Errorf("%w: %w", ErrScanningRows, err))
	}

	return items, nil
}

// Get returns the record with the given id within scope.
func (r *sqlRepository[T]) Get(ctx context.Context, scope Scope, id int64) (T, error) {
	var zero T

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query, args, err := r.scoped(
		r.db.statement().Select(r.table.Columns...).From(r.table.Name).Where(sq.Eq{"id": id}),
		scope,
	).ToSql()
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	item, err := r.table.Scan(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return zero, r.fail(ctx, "Get", err)
	}

	return item, nil
}

// Create inserts item. For a table with a parent column the parent id is
// taken from scope.
func (r *sqlRepository[T]) Create(ctx context.Context, scope Scope, item T) (T, error) {
	var zero T

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	ts := now()
	columns := append(append([]string{}, r.table.Writable...), "created_at", "updated_at")
	values := append(r.table.Values(item), ts, ts)
	if r.table.ParentColumn != "" {
		columns = append(columns, r.table.ParentColumn)
		values = append(values, scope.ParentID)
	}

	query, args, err := r.db.statement().
		Insert(r.table.Name).
		Columns(columns...).
		Values(values...).
		Suffix(r.returning()).
		ToSql()
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := r.table.Scan(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return zero, r.fail(ctx, "Create", err)
	}

	return created, nil
}

// Update overwrites the writable columns of the record with the given id
// within scope and bumps updated_at.
func (r *sqlRepository[T]) Update(ctx context.Context, scope Scope, id int64, item T) (T, error) {
	var zero T

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	set := make(map[string]any, len(r.table.Writable)+1)
	for i, v := range r.table.Values(item) {
		set[r.table.Writable[i]] = v
	}
	set["updated_at"] = now()

	update := r.db.statement().Update(r.table.Name).SetMap(set).Where(sq.Eq{"id": id})
	if r.table.ParentColumn != "" && !scope.IsZero() {
		update = update.Where(sq.Eq{r.table.ParentColumn: scope.ParentID})
	}

	query, args, err := update.Suffix(r.returning()).ToSql()
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := r.table.Scan(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return zero, r.fail(ctx, "Update", err)
	}

	return updated, nil
}

// Delete removes the record with the given id within scope.
func (r *sqlRepository[T]) Delete(ctx context.Context, scope Scope, id int64) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	del := r.db.statement().Delete(r.table.Name).Where(sq.Eq{"id": id})
	if r.table.ParentColumn != "" && !scope.IsZero() {
		del = del.Where(sq.Eq{r.table.ParentColumn: scope.ParentID})
	}

	query, args, err := del.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return r.fail(ctx, "Delete", fmt.Errorf("%w: %w", ErrExecutingQuery, err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return r.fail(ctx, "Delete", fmt.Errorf("%w: %w", ErrExecutingQuery, err))
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *sqlRepository[T]) scoped(query sq.SelectBuilder, scope Scope) sq.SelectBuilder {
	if r.table.ParentColumn == "" || scope.IsZero() {
		return query
	}

	return query.Where(sq.Eq{r.table.ParentColumn: scope.ParentID})
}

func (r *sqlRepository[T]) returning() string {
	return "RETURNING " + columnList(r.table.Columns)
}

// fail logs err unless it is a plain miss and translates it.
func (r *sqlRepository[T]) fail(ctx context.Context, method string, err error) error {
	translated := r.db.translate(err)
	if errors.Is(translated, ErrNotFound) {
		return translated
	}

	logger.FromContext(ctx).Err(err).
		Str("func", r.fn(method)).
		Bool("retryable", r.db.retryable(err)).
		Msg("store call failed")

	return translated
}

func columnList(columns []string) string {
	return strings.Join(columns, ", ")
}

func (r *sqlRepository[T]) fn(method string) string {
	return "sqlRepository[" + r.table.Name + "]." + method
}
