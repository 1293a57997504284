package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-bank-registry/internal/config"
	"github.com/MKhiriev/go-bank-registry/internal/logger"
	"github.com/MKhiriev/go-bank-registry/models"
)

// newSQLiteStorages opens a migrated SQLite database in a temp dir.
func newSQLiteStorages(t *testing.T) *Storages {
	t.Helper()

	db, err := NewConnectSQLite(context.Background(), config.DB{
		DSN:          "sqlite3://" + filepath.Join(t.TempDir(), "registry.db"),
		QueryTimeout: 5 * time.Second,
		MaxOpenConns: 4,
		MaxIdleConns: 4,
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate())
	return NewStorages(db)
}

func TestSQLite_BankAndAgencyLifecycle(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := testContext()

	bank, err := s.Banks.Create(ctx, Scope{}, models.Bank{Code: "001", Name: "First"})
	require.NoError(t, err)
	assert.NotZero(t, bank.ID)
	assert.False(t, bank.CreatedAt.IsZero())

	agency, err := s.Agencies.Create(ctx, InParent(bank.ID), models.Agency{Code: "0001", Name: "Downtown"})
	require.NoError(t, err)
	assert.Equal(t, bank.ID, agency.BankID)

	// agency outside its bank scope is invisible
	_, err = s.Agencies.Get(ctx, InParent(bank.ID+1), agency.ID)
	require.ErrorIs(t, err, ErrNotFound)

	updated, err := s.Agencies.Update(ctx, InParent(bank.ID), agency.ID, models.Agency{Code: "0002", Name: "Uptown"})
	require.NoError(t, err)
	assert.Equal(t, "Uptown", updated.Name)
	assert.False(t, updated.UpdatedAt.Before(agency.UpdatedAt))

	list, err := s.Agencies.List(ctx, InParent(bank.ID))
	require.NoError(t, err)
	require.Len(t, list, 1)

	// missing parent
	_, err = s.Agencies.Create(ctx, InParent(bank.ID+100), models.Agency{Code: "x", Name: "y"})
	require.ErrorIs(t, err, ErrParentNotFound)

	// deleting the bank removes its agencies
	require.NoError(t, s.Banks.Delete(ctx, Scope{}, bank.ID))
	list, err = s.Agencies.List(ctx, InParent(bank.ID))
	require.NoError(t, err)
	assert.Empty(t, list)

	require.ErrorIs(t, s.Banks.Delete(ctx, Scope{}, bank.ID), ErrNotFound)
	require.NoError(t, s.Health.Ping(ctx))
}

func TestSQLite_Accounts(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := testContext()

	created, err := s.Accounts.Insert(ctx, models.Account{Username: "alice", PasswordHash: "h1", IsActive: true})
	require.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.False(t, created.IsAdmin)

	_, err = s.Accounts.Insert(ctx, models.Account{Username: "alice", PasswordHash: "h2", IsActive: true})
	require.ErrorIs(t, err, ErrAlreadyExists)

	found, err := s.Accounts.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = s.Accounts.UpdatePasswordHash(ctx, "alice", "stale", "h3")
	require.ErrorIs(t, err, ErrConflict)

	_, err = s.Accounts.UpdatePasswordHash(ctx, "bob", "h1", "h3")
	require.ErrorIs(t, err, ErrNotFound)

	changed, err := s.Accounts.UpdatePasswordHash(ctx, "alice", "h1", "h3")
	require.NoError(t, err)
	assert.Equal(t, "h3", changed.PasswordHash)

	byID, err := s.Accounts.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "h3", byID.PasswordHash)

	all, err := s.Accounts.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

// TestSQLite_ConcurrentPasswordSwap verifies that of several writers using
// the same expected hash exactly one succeeds and the rest see a conflict.
func TestSQLite_ConcurrentPasswordSwap(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := testContext()

	_, err := s.Accounts.Insert(ctx, models.Account{Username: "alice", PasswordHash: "h0", IsActive: true})
	require.NoError(t, err)

	const writers = 4
	errs := make([]error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.Accounts.UpdatePasswordHash(ctx, "alice", "h0", "h"+string(rune('A'+i)))
		}(i)
	}
	wg.Wait()

	var won, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case assert.ErrorIs(t, err, ErrConflict):
			conflicts++
		}
	}
	assert.Equal(t, 1, won)
	assert.Equal(t, writers-1, conflicts)
}
