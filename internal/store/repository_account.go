package store

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-bank-registry/internal/logger"
	"github.com/MKhiriev/go-bank-registry/models"
)

// accountRepository is the database/sql implementation of
// [AccountRepository] over the "users" table.
type accountRepository struct {
	db    *DB
	table string
}

// NewAccountRepository constructs an [AccountRepository] backed by db.
func NewAccountRepository(db *DB) AccountRepository {
	return &accountRepository{
		db:    db,
		table: models.Account{}.TableName(),
	}
}

func (r *accountRepository) List(ctx context.Context) ([]models.Account, error) {
	log := logger.FromContext(ctx)

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query, args, err := r.db.statement().Select(accountColumns...).From(r.table).OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "accountRepository.List").
			Bool("retryable", r.db.retryable(err)).
			Msg("failed to execute query for listing accounts")
		return nil, r.db.translate(fmt.Errorf("%w: %w", ErrExecutingQuery, err))
	}
	defer rows.Close()

	accounts := make([]models.Account, 0, 16)
	for rows.Next() {
		account, scanErr := scanAccount(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "accountRepository.List").Msg("failed to scan account row")
			return nil, fmt.Errorf("%w: %w: %w", ErrStoreUnavailable, ErrScanningRow, scanErr)
		}
		accounts = append(accounts, account)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "accountRepository.List").Msg("error occurred during rows iteration")
		return nil, r.db.translate(fmt.Errorf("%w: %w", ErrScanningRows, err))
	}

	return accounts, nil
}

func (r *accountRepository) GetByID(ctx context.Context, id int64) (models.Account, error) {
	return r.getOne(ctx, "accountRepository.GetByID", sq.Eq{"id": id})
}

func (r *accountRepository) FindByUsername(ctx context.Context, username string) (models.Account, error) {
	return r.getOne(ctx, "accountRepository.FindByUsername", sq.Eq{"username": username})
}

// Insert writes a new account. The username uniqueness constraint of the
// table is the only duplicate check.
func (r *accountRepository) Insert(ctx context.Context, account models.Account) (models.Account, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	ts := now()
	query, args, err := r.db.statement().
		Insert(r.table).
		Columns("username", "password_hash", "is_admin", "is_active", "created_at", "updated_at").
		Values(account.Username, account.PasswordHash, account.IsAdmin, account.IsActive, ts, ts).
		Suffix("RETURNING " + columnList(accountColumns)).
		ToSql()
	if err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanAccount(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return models.Account{}, r.fail(ctx, "accountRepository.Insert", err)
	}

	return created, nil
}

// UpdatePasswordHash performs the swap as one conditional UPDATE keyed by
// username and the expected hash. When no row matches, a read in the same
// transaction tells a missing account from a lost race.
func (r *accountRepository) UpdatePasswordHash(ctx context.Context, username, expectedOldHash, newHash string) (models.Account, error) {
	log := logger.FromContext(ctx)

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	update, updateArgs, err := r.db.statement().
		Update(r.table).
		Set("password_hash", newHash).
		Set("updated_at", now()).
		Where(sq.Eq{"username": username, "password_hash": expectedOldHash}).
		Suffix("RETURNING " + columnList(accountColumns)).
		ToSql()
	if err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	exists, existsArgs, err := r.db.statement().
		Select("1").From(r.table).Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var updated models.Account
	txErr := r.db.withTx(ctx, func(ctx context.Context, tx DBTX) error {
		var scanErr error
		updated, scanErr = scanAccount(tx.QueryRowContext(ctx, update, updateArgs...))
		if scanErr == nil {
			return nil
		}
		if !errors.Is(r.db.translate(scanErr), ErrNotFound) {
			return scanErr
		}

		var one int
		if existsErr := tx.QueryRowContext(ctx, exists, existsArgs...).Scan(&one); existsErr != nil {
			return existsErr
		}

		return ErrConflict
	})

	switch {
	case txErr == nil:
		log.Info().
			Str("func", "accountRepository.UpdatePasswordHash").
			Int64("account_id", updated.ID).
			Msg("password hash replaced")
		return updated, nil
	case errors.Is(txErr, ErrConflict):
		log.Warn().
			Str("func", "accountRepository.UpdatePasswordHash").
			Str("username", username).
			Msg("optimistic lock failed: password hash changed concurrently")
		return models.Account{}, ErrConflict
	default:
		return models.Account{}, r.fail(ctx, "accountRepository.UpdatePasswordHash", txErr)
	}
}

func (r *accountRepository) getOne(ctx context.Context, fn string, where sq.Eq) (models.Account, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query, args, err := r.db.statement().Select(accountColumns...).From(r.table).Where(where).ToSql()
	if err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return models.Account{}, r.fail(ctx, fn, err)
	}

	return account, nil
}

func (r *accountRepository) fail(ctx context.Context, fn string, err error) error {
	translated := r.db.translate(err)
	if errors.Is(translated, ErrNotFound) {
		return translated
	}

	logger.FromContext(ctx).Err(err).
		Str("func", fn).
		Bool("retryable", r.db.retryable(err)).
		Msg("store call failed")

	return translated
}
